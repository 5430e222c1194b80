package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/iancoleman/strcase"

	"vline/vline"
)

// builtinDescriptions documents the reference host functions
// RegisterBuiltins installs, grounded on the per-function semantics in
// builtins.go. Functions with no entry here still render, with an
// empty summary.
var builtinDescriptions = map[string]string{
	"print":  "Writes every argument's display form to stdout, then a newline.",
	"input":  "Optionally prints a prompt, then reads one line from stdin.",
	"len":    "Returns the length of a string or list.",
	"type":   "Returns the type name of a value as a string.",
	"range":  "Builds a list of numbers from start (inclusive) to end (exclusive).",
	"sleep":  "Pauses execution for the given number of milliseconds.",
	"system": "Runs a shell command and returns its exit code.",
	"exit":   "Terminates the process immediately with the given exit code.",
	"read":   "Reads an entire file's contents into a string.",
	"write":  "Overwrites a file with the given string contents.",
	"time":   "Returns the current Unix time in seconds.",
	"append": "Returns a copy of a list with a value appended.",
	"erase":  "Returns a copy of a list with the [begin, end) range removed.",
	"insert": "Returns a copy of a list with a value inserted at a position.",
	"floor":  "Truncates a number towards zero.",
	"ceil":   "Rounds a number up to the nearest integer.",
	"round":  "Rounds a number to the nearest integer, half away from zero.",
	"abs":    "Returns the absolute value of a number.",
	"pow":    "Raises a number to a power.",
	"sqrt":   "Returns the square root of a number.",
	"list":   "Converts a string, number, or null to a list.",
	"str":    "Converts a number, string, or null to a string.",
	"number": "Converts a string or null to a number.",
}

type SiteMeta struct {
	Title           string
	GeneratedAt     string
	Nav             []NavGroup
	SearchIndexJSON template.JS
}

type NavGroup struct {
	Title string
	Items []NavItem
}

type NavItem struct {
	Label string
	Link  string
}

type SearchItem struct {
	Label string `json:"l"`
	Type  string `json:"t"`
	Link  string `json:"u"`
	Desc  string `json:"d"`
}

type DocItem struct {
	ID      string
	Name    string
	Summary string
}

type PageData struct {
	Meta        SiteMeta
	Title       string
	PageTitle   string
	Description string
	Items       []DocItem
}

func main() {
	outputDir := flag.String("o", "docs", "output directory")
	flag.Parse()

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		panic(err)
	}

	meta := SiteMeta{
		Title:       "VLine Standard Library",
		GeneratedAt: time.Now().Format("Jan 02, 2006"),
		Nav: []NavGroup{
			{Title: "Reference", Items: []NavItem{
				{Label: "Built-in functions", Link: "builtins.html"},
				{Label: "Keywords", Link: "keywords.html"},
			}},
		},
	}

	builtinItems, builtinSearch := buildBuiltinItems()
	keywordItems, keywordSearch := buildKeywordItems()

	allSearch := append(builtinSearch, keywordSearch...)
	searchJSON, err := json.Marshal(allSearch)
	if err != nil {
		panic(err)
	}
	meta.SearchIndexJSON = template.JS(searchJSON)

	t, err := template.New("vlinedoc").Parse(pageTemplate)
	if err != nil {
		panic(err)
	}

	pages := []struct {
		filename string
		data     PageData
	}{
		{"builtins.html", PageData{
			Meta: meta, Title: "Built-in functions", PageTitle: "Built-in functions",
			Description: "Host functions registered by RegisterBuiltins.", Items: builtinItems,
		}},
		{"keywords.html", PageData{
			Meta: meta, Title: "Keywords", PageTitle: "Reserved words",
			Description: "Words the lexer treats as keywords rather than identifiers.", Items: keywordItems,
		}},
	}

	for _, p := range pages {
		path := filepath.Join(*outputDir, p.filename)
		f, err := os.Create(path)
		if err != nil {
			fmt.Printf("failed to create %s: %v\n", path, err)
			continue
		}
		if err := t.Execute(f, p.data); err != nil {
			fmt.Printf("failed to render %s: %v\n", path, err)
		}
		f.Close()
		fmt.Printf("generated %s\n", path)
	}
}

func buildBuiltinItems() ([]DocItem, []SearchItem) {
	names := append([]string{}, vline.BuiltinNames...)
	sort.Strings(names)

	items := make([]DocItem, 0, len(names))
	search := make([]SearchItem, 0, len(names))
	for _, name := range names {
		summary := builtinDescriptions[name]
		items = append(items, DocItem{ID: slugify(name), Name: strcase.ToSnake(name) + "()", Summary: summary})
		search = append(search, SearchItem{Label: name, Type: "func", Link: "builtins.html#" + slugify(name), Desc: summary})
	}
	return items, search
}

func buildKeywordItems() ([]DocItem, []SearchItem) {
	names := vline.Keywords()
	sort.Strings(names)

	items := make([]DocItem, 0, len(names))
	search := make([]SearchItem, 0, len(names))
	for _, name := range names {
		items = append(items, DocItem{ID: slugify(name), Name: name})
		search = append(search, SearchItem{Label: name, Type: "keyword", Link: "keywords.html#" + slugify(name)})
	}
	return items, search
}

func slugify(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, " ", "-"))
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.PageTitle}} - {{.Meta.Title}}</title>
<style>
body { font-family: sans-serif; max-width: 60rem; margin: 2rem auto; color: #222; }
nav a { margin-right: 1rem; }
.item { border-bottom: 1px solid #ddd; padding: 0.75rem 0; }
code { background: #f4f4f4; padding: 0.1rem 0.3rem; }
</style>
</head>
<body>
<header>
<h1>{{.Meta.Title}}</h1>
<p>Generated {{.Meta.GeneratedAt}}</p>
<nav>
{{range .Meta.Nav}}{{range .Items}}<a href="{{.Link}}">{{.Label}}</a>{{end}}{{end}}
</nav>
</header>
<main>
<h2>{{.PageTitle}}</h2>
<p>{{.Description}}</p>
{{range .Items}}
<div class="item" id="{{.ID}}">
<code>{{.Name}}</code>
{{if .Summary}}<p>{{.Summary}}</p>{{end}}
</div>
{{end}}
</main>
<script id="search-index" type="application/json">{{.Meta.SearchIndexJSON}}</script>
</body>
</html>
`

package main

import (
	"vline/vline"

	"github.com/sasha-s/go-deadlock"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"
)

const (
	lsName      = "vline-ls"
	CIKFunction = protocol.CompletionItemKindFunction
	CIKKeyword  = protocol.CompletionItemKindKeyword
)

var (
	version string = "0.1.0"
	handler protocol.Handler

	documentsMutex deadlock.RWMutex
	documents      = make(map[string]string)
)

func main() {
	commonlog.Configure(1, nil)

	handler = protocol.Handler{
		Initialize:             initialize,
		Initialized:            initialized,
		Shutdown:               shutdown,
		SetTrace:               setTrace,
		TextDocumentDidOpen:    textDocumentDidOpen,
		TextDocumentDidChange:  textDocumentDidChange,
		TextDocumentDidClose:   textDocumentDidClose,
		TextDocumentDidSave:    textDocumentDidSave,
		TextDocumentCompletion: textDocumentCompletion,
	}

	s := server.NewServer(&handler, lsName, false)
	s.RunStdio()
}

func initialize(context *glsp.Context, params *protocol.InitializeParams) (interface{}, error) {
	capabilities := handler.CreateServerCapabilities()
	capabilities.CompletionProvider = &protocol.CompletionOptions{
		TriggerCharacters: []string{"."},
	}
	syncKind := protocol.TextDocumentSyncKindFull
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: &[]bool{true}[0],
		Change:    &syncKind,
		Save:      &protocol.SaveOptions{IncludeText: &[]bool{false}[0]},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &version,
		},
	}, nil
}

func initialized(context *glsp.Context, params *protocol.InitializedParams) error { return nil }
func shutdown(context *glsp.Context) error                                        { return nil }

func setTrace(context *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func textDocumentDidOpen(context *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	documentsMutex.Lock()
	documents[params.TextDocument.URI] = params.TextDocument.Text
	documentsMutex.Unlock()
	go publishDiagnostics(context, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func textDocumentDidChange(context *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	content := params.ContentChanges[0].(protocol.TextDocumentContentChangeEventWhole).Text

	documentsMutex.Lock()
	documents[params.TextDocument.URI] = content
	documentsMutex.Unlock()

	go publishDiagnostics(context, params.TextDocument.URI, content)
	return nil
}

func textDocumentDidClose(context *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	documentsMutex.Lock()
	delete(documents, params.TextDocument.URI)
	documentsMutex.Unlock()
	return nil
}

func textDocumentDidSave(context *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	return nil
}

func textDocumentCompletion(context *glsp.Context, params *protocol.CompletionParams) (interface{}, error) {
	items := []protocol.CompletionItem{}
	seen := make(map[string]bool)

	kindFunc := CIKFunction
	detailFunc := "built-in function"
	for _, name := range vline.BuiltinNames {
		if seen[name] {
			continue
		}
		items = append(items, protocol.CompletionItem{Label: name, Kind: &kindFunc, Detail: &detailFunc})
		seen[name] = true
	}

	kindKeyword := CIKKeyword
	detailKeyword := "keyword"
	for _, kw := range vline.Keywords() {
		if seen[kw] {
			continue
		}
		items = append(items, protocol.CompletionItem{Label: kw, Kind: &kindKeyword, Detail: &detailKeyword})
		seen[kw] = true
	}

	return protocol.CompletionList{IsIncomplete: false, Items: items}, nil
}

func publishDiagnostics(context *glsp.Context, uri string, content string) {
	diagnostics := []protocol.Diagnostic{}
	severity := protocol.DiagnosticSeverityError

	lexer := vline.NewLexer(uri, content)
	tokens, lexErr := lexer.Tokenize()
	if lexErr != nil {
		source := "vline-ls (lexer)"
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    lspRangeFromLoc(lexErr.GetLocation()),
			Severity: &severity,
			Source:   &source,
			Message:  lexErr.Error(),
		})
	}

	if len(tokens) > 0 && len(diagnostics) == 0 {
		parser := vline.NewParser(tokens)
		parseResult := parser.Parse()
		if parseResult.IsErr() {
			source := "vline-ls (parser)"
			diagnostics = append(diagnostics, protocol.Diagnostic{
				Range:    lspRangeFromLoc(parseResult.Err.GetLocation()),
				Severity: &severity,
				Source:   &source,
				Message:  parseResult.Err.Error(),
			})
		}
	}

	context.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func lspRangeFromLoc(loc vline.Loc) protocol.Range {
	col := loc.Col - 1
	if col < 0 {
		col = 0
	}
	line := loc.Line - 1
	if line < 0 {
		line = 0
	}
	return protocol.Range{
		Start: protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(col)},
		End:   protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(col + 1)},
	}
}

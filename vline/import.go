package vline

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// FileSourceLoader resolves `import pkg` against a root directory,
// trying the four candidate paths in order: "<pkg>.vl",
// "<pkg>/__init__.vl", "lib/<pkg>.vl", "lib/<pkg>/__init__.vl".
type FileSourceLoader struct {
	Root string
}

func NewFileSourceLoader(root string) *FileSourceLoader {
	return &FileSourceLoader{Root: root}
}

func (l *FileSourceLoader) candidates(pkg string) []string {
	return []string{
		filepath.Join(l.Root, pkg+".vl"),
		filepath.Join(l.Root, pkg, "__init__.vl"),
		filepath.Join(l.Root, "lib", pkg+".vl"),
		filepath.Join(l.Root, "lib", pkg, "__init__.vl"),
	}
}

func (l *FileSourceLoader) Load(pkg string) (string, string, error) {
	var lastErr error
	for _, path := range l.candidates(pkg) {
		data, err := os.ReadFile(path)
		if err == nil {
			return string(data), path, nil
		}
		lastErr = err
	}
	return "", "", errors.Wrapf(lastErr, "package '%s' not found (tried %v)", pkg, l.candidates(pkg))
}

package core_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const modulePath = "github.com/leapstack-labs/sqlfront"

// packageImports returns the imports of the non-test files in dir, keyed by
// file name.
func packageImports(t *testing.T, dir string) map[string][]string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", dir, err)
	}

	fset := token.NewFileSet()
	imports := make(map[string][]string)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".go") {
			continue
		}
		if strings.HasSuffix(entry.Name(), "_test.go") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		f, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			t.Errorf("Failed to parse %s: %v", path, err)
			continue
		}
		for _, imp := range f.Imports {
			imports[entry.Name()] = append(imports[entry.Name()], strings.Trim(imp.Path.Value, `"`))
		}
	}
	return imports
}

// TestPackageImports verifies the layering of the front end:
// token, dialect and core are leaves; the parser sits on top of them and
// the formatter only reads the tree.
func TestPackageImports(t *testing.T) {
	tests := []struct {
		dir     string
		allowed []string
	}{
		{dir: ".", allowed: nil},
		{dir: "../token", allowed: nil},
		{dir: "../dialect", allowed: nil},
		{dir: "../parser", allowed: []string{"pkg/core", "pkg/dialect", "pkg/token"}},
		{dir: "../format", allowed: []string{"pkg/core", "pkg/token"}},
	}

	for _, tt := range tests {
		t.Run(tt.dir, func(t *testing.T) {
			allowed := make(map[string]bool, len(tt.allowed))
			for _, p := range tt.allowed {
				allowed[modulePath+"/"+p] = true
			}

			for file, imports := range packageImports(t, tt.dir) {
				for _, importPath := range imports {
					// Stdlib paths have no dot in the first element
					if !strings.Contains(strings.SplitN(importPath, "/", 2)[0], ".") {
						continue
					}
					if !allowed[importPath] {
						t.Errorf("%s/%s imports forbidden package: %s", tt.dir, file, importPath)
					}
				}
			}
		})
	}
}

// TestPkgDoesNotImportInternal verifies no public package reaches into the
// CLI's internal packages.
func TestPkgDoesNotImportInternal(t *testing.T) {
	for _, dir := range []string{".", "../token", "../dialect", "../parser", "../format"} {
		for file, imports := range packageImports(t, dir) {
			for _, importPath := range imports {
				if strings.Contains(importPath, "/internal/") {
					t.Errorf("%s/%s imports internal package: %s", dir, file, importPath)
				}
			}
		}
	}
}

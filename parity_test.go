package strutil

import (
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"testing"
)

// parseFuncs returns the exported functions and methods declared in the
// non-test Go files of dir.
func parseFuncs(t *testing.T, dir string) []string {
	files, err := filepath.Glob(filepath.Join(dir, "*.go"))
	if err != nil {
		t.Fatal(err)
	}
	fset := token.NewFileSet()
	var names []string
	for _, filename := range files {
		if strings.HasSuffix(filename, "_test.go") || filepath.Base(filename) == "gen.go" {
			continue
		}
		af, err := parser.ParseFile(fset, filename, nil, parser.AllErrors)
		if err != nil {
			t.Fatal(err)
		}
		for _, d := range af.Decls {
			if fd, _ := d.(*ast.FuncDecl); fd != nil {
				if fd.Name == nil {
					continue
				}
				name := fd.Name.Name
				if !ast.IsExported(name) {
					continue
				}
				if fd.Recv != nil && len(fd.Recv.List) == 1 {
					recv := recvName(fd.Recv.List[0].Type)
					// bytutil aliases the strutil error types
					if strings.HasSuffix(recv, "Error") {
						continue
					}
					name = recv + "." + name
				}
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}

func recvName(expr ast.Expr) string {
	switch x := expr.(type) {
	case *ast.StarExpr:
		return recvName(x.X)
	case *ast.Ident:
		return x.Name
	}
	return ""
}

// Test that the strutil and bytutil packages have the same API
func TestPackageParity(t *testing.T) {
	strnames := parseFuncs(t, ".")
	bytenames := parseFuncs(t, "bytutil")
	if len(strnames) == 0 {
		t.Fatal("no exported functions found")
	}
	if !reflect.DeepEqual(strnames, bytenames) {
		t.Fatalf("The API of the strutil and bytutil packages differs:\n"+
			"strutil: %q\n"+
			"bytutil: %q\n", strnames, bytenames)
	}
}

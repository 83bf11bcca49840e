// Package testutil holds import guards used by the architecture tests.
package testutil

import (
	"go/parser"
	"go/token"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

// storageDrivers are the client libraries only the infra backends may import.
var storageDrivers = []string{
	"database/sql",
	"github.com/aws/aws-sdk-go-v2",
	"github.com/jackc/pgx",
	"github.com/go-redis/redis",
	"modernc.org/sqlite",
}

// InternalImportForbidden matches any import path containing /internal/.
func InternalImportForbidden(path string) bool {
	return strings.Contains(path, "/internal/")
}

// InfraImportForbidden matches the concrete document backends.
func InfraImportForbidden(path string) bool {
	return strings.Contains(path, "/internal/infra/")
}

// StorageDriverImportForbidden matches database, cache and object store
// client libraries.
func StorageDriverImportForbidden(path string) bool {
	for _, d := range storageDrivers {
		if path == d || strings.HasPrefix(path, d+"/") {
			return true
		}
	}
	return false
}

// AssertNoDirectImports parses the non-test .go files directly inside dir and
// fails when an import satisfies forbidden. Build tags are ignored.
func AssertNoDirectImports(t testing.TB, dir string, forbidden func(importPath string) bool, reason string) {
	t.Helper()
	viols, err := directImportViolations(dir, forbidden)
	if err != nil {
		t.Fatalf("scan %s: %v", dir, err)
	}
	if len(viols) > 0 {
		t.Fatalf("forbidden direct imports detected (%s):\n%s", reason, strings.Join(viols, "\n"))
	}
}

// AssertNoTransitiveDependency runs `go list -deps pattern` and fails when any
// dependency satisfies forbidden.
func AssertNoTransitiveDependency(t testing.TB, pattern string, forbidden func(path string) bool, reason string) {
	t.Helper()
	out, err := goListDeps(pattern)
	if err != nil {
		t.Fatalf("go list failed: %v\n%s", err, out)
	}
	var viols []string
	for _, line := range strings.Split(string(out), "\n") {
		if line = strings.TrimSpace(line); line != "" && forbidden(line) {
			viols = append(viols, line)
		}
	}
	if len(viols) > 0 {
		t.Fatalf("forbidden transitive dependency detected (%s):\n%s", reason, strings.Join(viols, "\n"))
	}
}

// AssertImportConfined loads pattern (tests included) and fails when a
// package outside guarded and allowed imports guarded or anything below it.
func AssertImportConfined(t testing.TB, pattern, guarded string, allowed []string, reason string) {
	t.Helper()
	pkgs, err := loadPackages(pattern)
	if err != nil {
		t.Fatalf("load %s: %v", pattern, err)
	}
	if viols := confinementViolations(pkgs, guarded, allowed); len(viols) > 0 {
		t.Fatalf("import of %s outside its owners (%s):\n%s", guarded, reason, strings.Join(viols, "\n"))
	}
}

var loadPackages = func(pattern string) ([]*packages.Package, error) {
	cfg := &packages.Config{Mode: packages.NeedName | packages.NeedImports, Tests: true}
	return packages.Load(cfg, pattern)
}

func confinementViolations(pkgs []*packages.Package, guarded string, allowed []string) []string {
	owners := append([]string{guarded}, allowed...)
	seen := make(map[string]struct{})
	for _, pkg := range pkgs {
		if underAny(testBase(pkg.PkgPath), owners) {
			continue
		}
		for ip := range pkg.Imports {
			if underAny(ip, []string{guarded}) {
				seen[testBase(pkg.PkgPath)+" -> "+ip] = struct{}{}
			}
		}
	}
	viols := make([]string, 0, len(seen))
	for v := range seen {
		viols = append(viols, v)
	}
	sort.Strings(viols)
	return viols
}

// testBase maps external test and test-main package paths onto the package
// under test.
func testBase(path string) string {
	return strings.TrimSuffix(strings.TrimSuffix(path, ".test"), "_test")
}

func underAny(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

var goListDeps = func(pattern string) ([]byte, error) {
	return exec.Command("go", "list", "-deps", pattern).CombinedOutput()
}

func directImportViolations(dir string, forbidden func(importPath string) bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	fset := token.NewFileSet()
	var viols []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		f, err := parser.ParseFile(fset, filepath.Join(dir, name), nil, parser.ImportsOnly)
		if err != nil {
			return nil, err
		}
		for _, imp := range f.Imports {
			ip := strings.Trim(imp.Path.Value, `"`)
			if forbidden(ip) {
				viols = append(viols, ip+" (in "+name+")")
			}
		}
	}
	return viols, nil
}

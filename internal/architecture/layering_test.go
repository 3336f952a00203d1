package architecture_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const modulePrefix = "mindful/internal/modules/"

var knownModules = []string{"breathing", "chat", "crisis", "identity", "mood", "plugin", "resources"}

// importEdge is one non-test import of a mindful package.
type importEdge struct {
	file   string
	module string
	layer  string
	target string
}

// sourceImports parses every non-test file under root and returns its imports
// of mindful packages.
func sourceImports(t *testing.T, root string) []importEdge {
	t.Helper()
	fset := token.NewFileSet()
	var edges []importEdge
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		node, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			return err
		}
		slash := filepath.ToSlash(path)
		for _, imp := range node.Imports {
			target := strings.Trim(imp.Path.Value, `"`)
			if !strings.HasPrefix(target, "mindful/") {
				continue
			}
			edges = append(edges, importEdge{file: slash, module: moduleName(slash), layer: detectLayer(slash), target: target})
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", root, err)
	}
	return edges
}

func TestModulesAreKnown(t *testing.T) {
	t.Parallel()
	entries, err := os.ReadDir(filepath.Join("..", "modules"))
	if err != nil {
		t.Fatalf("read modules: %v", err)
	}
	var got []string
	for _, e := range entries {
		if e.IsDir() {
			got = append(got, e.Name())
		}
	}
	if diff := cmp.Diff(knownModules, got); diff != "" {
		t.Fatalf("module set changed (-want +got):\n%s", diff)
	}
}

func TestHexagonalLayerImports(t *testing.T) {
	t.Parallel()
	for _, e := range sourceImports(t, filepath.Join("..", "modules")) {
		if e.module == "" || e.layer == "" || !strings.HasPrefix(e.target, modulePrefix) {
			continue
		}
		if violatesLayerRule(e.module, e.layer, e.target) {
			t.Errorf("forbidden import in %s (%s): %s", e.file, e.layer, e.target)
		}
	}
}

// Modules talk to each other only through another module's inbound port and
// its dto. Today the one such seam is chat replies served by a plugin.
func TestCrossModuleImportsUseInboundPorts(t *testing.T) {
	t.Parallel()
	seen := map[string]bool{}
	for _, e := range sourceImports(t, filepath.Join("..", "modules")) {
		if !strings.HasPrefix(e.target, modulePrefix) {
			continue
		}
		target := moduleName(e.target)
		if target == e.module {
			continue
		}
		if !isPortIn(e.target) && !isDTO(e.target) {
			t.Errorf("%s reaches into %s", e.file, e.target)
		}
		seen[e.module+"/"+e.layer+" -> "+strings.TrimPrefix(e.target, modulePrefix)] = true
	}

	got := make([]string, 0, len(seen))
	for edge := range seen {
		got = append(got, edge)
	}
	sort.Strings(got)
	want := []string{
		"chat/adapter/out -> plugin/dto",
		"chat/adapter/out -> plugin/port/in",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("cross-module edges changed (-want +got):\n%s", diff)
	}
}

func TestPlatformStaysBelowModules(t *testing.T) {
	t.Parallel()
	for _, e := range sourceImports(t, filepath.Join("..", "platform")) {
		if !strings.HasPrefix(e.target, "mindful/internal/platform/") {
			t.Errorf("platform package %s imports %s", e.file, e.target)
		}
	}
}

func TestModulesDoNotImportSurfaces(t *testing.T) {
	t.Parallel()
	for _, e := range sourceImports(t, filepath.Join("..", "modules")) {
		for _, surface := range []string{"mindful/internal/ui", "mindful/internal/server", "mindful/internal/bootstrap", "mindful/cmd"} {
			if e.target == surface || strings.HasPrefix(e.target, surface+"/") {
				t.Errorf("%s imports outer surface %s", e.file, e.target)
			}
		}
	}
}

func moduleName(path string) string {
	parts := strings.Split(path, "/")
	for i := 0; i < len(parts)-1; i++ {
		if parts[i] == "modules" {
			return parts[i+1]
		}
	}
	return ""
}

func detectLayer(path string) string {
	for _, layer := range []string{"adapter/in", "adapter/out", "usecase", "service", "domain", "port/in", "port/out", "dto"} {
		if strings.Contains(path, "/"+layer+"/") || strings.HasSuffix(path, "/"+layer) {
			return layer
		}
	}
	return ""
}

func isPortIn(path string) bool {
	return strings.Contains(path, "/port/in/") || strings.HasSuffix(path, "/port/in")
}

func isDTO(path string) bool {
	return strings.Contains(path, "/dto/") || strings.HasSuffix(path, "/dto")
}

func violatesLayerRule(module, layer, importPath string) bool {
	if moduleName(importPath) != module {
		return !isPortIn(importPath) && !isDTO(importPath)
	}

	switch layer {
	case "adapter/in":
		return !isPortIn(importPath) && !isDTO(importPath)
	case "usecase":
		return strings.Contains(importPath, "/adapter/")
	case "service":
		return strings.Contains(importPath, "/adapter/") || strings.Contains(importPath, "/usecase/") || strings.HasSuffix(importPath, "/usecase")
	case "domain":
		return !strings.HasSuffix(importPath, "/domain")
	case "dto", "port/in":
		return strings.Contains(importPath, "/adapter/") || strings.Contains(importPath, "/service") || strings.Contains(importPath, "/usecase")
	default:
		return false
	}
}

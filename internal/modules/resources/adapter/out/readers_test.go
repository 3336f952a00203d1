package out

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestSplitFrontmatter(t *testing.T) {
	meta, body, err := splitFrontmatter("---\r\ntitle: Calm\r\n---\r\nBreathe.\r\n")
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if meta["title"] != "Calm" {
		t.Fatalf("unexpected meta: %#v", meta)
	}
	if body != "Breathe.\n" {
		t.Fatalf("unexpected body: %q", body)
	}

	_, body, err = splitFrontmatter("# No frontmatter\n")
	if err != nil || body != "# No frontmatter\n" {
		t.Fatalf("plain document changed: %q, %v", body, err)
	}

	if _, _, err := splitFrontmatter("---\ntitle: open\n"); err == nil {
		t.Fatalf("expected missing separator error")
	}
}

func TestMarkdownReaderMissingFile(t *testing.T) {
	_, err := NewLocalMarkdownReader().Read(context.Background(), filepath.Join(t.TempDir(), "nope.md"))
	if err == nil {
		t.Fatalf("expected read error")
	}
}

func TestPDFReaderRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	if err := os.WriteFile(path, []byte("not a pdf"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := NewLocalPDFReader().ReadText(context.Background(), path); err == nil {
		t.Fatalf("expected parse error")
	}
}

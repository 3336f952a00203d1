package out

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	resourcesout "mindful/internal/modules/resources/port/out"
)

const frontmatterSeparator = "---\n"

type LocalMarkdownReader struct{}

func NewLocalMarkdownReader() resourcesout.MarkdownReader {
	return &LocalMarkdownReader{}
}

// Read returns the document body with any YAML frontmatter removed.
func (r *LocalMarkdownReader) Read(_ context.Context, path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read markdown: %w", err)
	}
	_, body, err := splitFrontmatter(string(b))
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return body, nil
}

func splitFrontmatter(content string) (map[string]any, string, error) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(content, frontmatterSeparator) {
		return map[string]any{}, content, nil
	}
	rest := strings.TrimPrefix(content, frontmatterSeparator)
	idx := strings.Index(rest, "\n---\n")
	if idx < 0 {
		return nil, "", fmt.Errorf("invalid frontmatter: missing closing separator")
	}
	meta := map[string]any{}
	if err := yaml.Unmarshal([]byte(rest[:idx]), &meta); err != nil {
		return nil, "", fmt.Errorf("unmarshal frontmatter: %w", err)
	}
	return meta, rest[idx+len("\n---\n"):], nil
}

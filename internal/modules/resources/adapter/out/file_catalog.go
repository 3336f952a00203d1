package out

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"mindful/internal/modules/resources/domain"
	resourcesout "mindful/internal/modules/resources/port/out"
)

// FileCatalog reads a YAML catalog that replaces the built-in list. With no
// path configured, or when the file does not exist, the built-ins are used.
type FileCatalog struct {
	path string
}

func NewFileCatalog(path string) *FileCatalog {
	return &FileCatalog{path: path}
}

var _ resourcesout.Catalog = (*FileCatalog)(nil)

func (c *FileCatalog) Path() string {
	return c.path
}

func (c *FileCatalog) Load(_ context.Context) ([]domain.Resource, error) {
	if c.path == "" {
		return domain.BuiltIn(), nil
	}
	raw, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.BuiltIn(), nil
		}
		return nil, fmt.Errorf("read resource catalog: %w", err)
	}
	var doc struct {
		Resources []domain.Resource `yaml:"resources"`
	}
	decoder := yaml.NewDecoder(bytes.NewReader(raw))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode resource catalog: %w", err)
	}
	base := filepath.Dir(c.path)
	for i := range doc.Resources {
		if f := doc.Resources[i].File; f != "" && !filepath.IsAbs(f) {
			doc.Resources[i].File = filepath.Clean(filepath.Join(base, f))
		}
	}
	if err := domain.ValidateCatalog(doc.Resources); err != nil {
		return nil, fmt.Errorf("resource catalog %s: %w", filepath.Base(c.path), err)
	}
	return doc.Resources, nil
}

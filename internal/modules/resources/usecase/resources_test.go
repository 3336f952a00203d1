package usecase_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	resourcesout "mindful/internal/modules/resources/adapter/out"
	resourcesdto "mindful/internal/modules/resources/dto"
	"mindful/internal/modules/resources/service"
	"mindful/internal/modules/resources/usecase"
	apperrors "mindful/internal/platform/errors"
)

type recordingLauncher struct {
	targets []string
	err     error
}

func (l *recordingLauncher) Open(_ context.Context, target string) error {
	if l.err != nil {
		return l.err
	}
	l.targets = append(l.targets, target)
	return nil
}

type stubPDF struct {
	pages []string
}

func (p stubPDF) ReadText(context.Context, string) ([]string, error) {
	return p.pages, nil
}

func newInteractor(t *testing.T, catalogPath string, launcher *recordingLauncher) *usecase.Interactor {
	t.Helper()
	svc := service.NewResourceService(
		resourcesout.NewFileCatalog(catalogPath),
		resourcesout.NewLocalMarkdownReader(),
		stubPDF{pages: []string{"page one", "page two"}},
		launcher,
		nil,
	)
	return usecase.NewInteractor(svc)
}

func ids(resources []resourcesdto.ResourceOutput) []string {
	out := make([]string, 0, len(resources))
	for _, r := range resources {
		out = append(out, r.ID)
	}
	return out
}

func TestFilterBuiltInCatalog(t *testing.T) {
	t.Parallel()
	uc := newInteractor(t, "", &recordingLauncher{})
	ctx := context.Background()

	all, err := uc.Filter(ctx, resourcesdto.FilterInput{})
	require.NoError(t, err)
	require.Len(t, all, 6)

	anxiety, err := uc.Filter(ctx, resourcesdto.FilterInput{Category: "anxiety"})
	require.NoError(t, err)
	require.Equal(t, []string{"1"}, ids(anxiety))

	relief, err := uc.Filter(ctx, resourcesdto.FilterInput{Search: "Stress Relief", Category: "all"})
	require.NoError(t, err)
	require.Equal(t, []string{"2", "5"}, ids(relief))

	none, err := uc.Filter(ctx, resourcesdto.FilterInput{Search: "sleep", Category: "therapy"})
	require.NoError(t, err)
	require.Empty(t, none)

	_, err = uc.Filter(ctx, resourcesdto.FilterInput{Category: "astrology"})
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)

	require.Len(t, uc.Categories(), 7)
	require.Equal(t, "all", uc.Categories()[0].ID)
}

func TestOpenReadsLocalDocuments(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "grounding.md"), []byte("---\nauthor: team\n---\n# Grounding\n5-4-3-2-1\n"), 0o644))
	catalog := `resources:
  - id: ground
    title: Grounding
    category: anxiety
    type: exercise
    file: grounding.md
  - id: handbook
    title: Handbook
    category: wellness
    type: article
    file: docs/handbook.pdf
  - id: web
    title: Web only
    category: stress
    type: video
    url: https://example.org/video
`
	catalogPath := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(catalogPath, []byte(catalog), 0o644))
	launcher := &recordingLauncher{}
	uc := newInteractor(t, catalogPath, launcher)
	ctx := context.Background()

	doc, err := uc.Open(ctx, "ground")
	require.NoError(t, err)
	require.Equal(t, "markdown", doc.Kind)
	require.Equal(t, "# Grounding\n5-4-3-2-1\n", doc.Body)
	require.Equal(t, filepath.Join(dir, "grounding.md"), doc.Path)

	pdfDoc, err := uc.Open(ctx, "handbook")
	require.NoError(t, err)
	require.Equal(t, "pdf", pdfDoc.Kind)
	require.Equal(t, 2, pdfDoc.Pages)
	require.Equal(t, "page one\n\npage two", pdfDoc.Body)

	_, err = uc.Open(ctx, "web")
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
	_, err = uc.Open(ctx, "missing")
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, uc.Browse(ctx, "web"))
	require.NoError(t, uc.Browse(ctx, "ground"))
	require.Equal(t, []string{"https://example.org/video", filepath.Join(dir, "grounding.md")}, launcher.targets)

	out, err := uc.Get(ctx, "ground")
	require.NoError(t, err)
	require.True(t, out.HasDocument)
}

func TestBrowsePropagatesLauncherError(t *testing.T) {
	t.Parallel()
	boom := errors.New("no browser")
	uc := newInteractor(t, "", &recordingLauncher{err: boom})
	require.ErrorIs(t, uc.Browse(context.Background(), "1"), boom)
}

func TestReloadKeepsPreviousCatalogOnError(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	catalogPath := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(catalogPath, []byte("resources:\n  - {id: a, title: A, category: stress, type: audio, url: https://a.example}\n"), 0o644))
	uc := newInteractor(t, catalogPath, &recordingLauncher{})
	ctx := context.Background()

	first, err := uc.Filter(ctx, resourcesdto.FilterInput{})
	require.NoError(t, err)
	require.Equal(t, []string{"a"}, ids(first))

	require.NoError(t, os.WriteFile(catalogPath, []byte("resources:\n  - {id: a, title: A, category: nowhere, type: audio, url: x}\n"), 0o644))
	require.Error(t, uc.Reload(ctx))

	after, err := uc.Filter(ctx, resourcesdto.FilterInput{})
	require.NoError(t, err)
	require.Equal(t, []string{"a"}, ids(after))
}

package service_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	pluginout "mindful/internal/modules/plugin/adapter/out"
	"mindful/internal/modules/plugin/domain"
	"mindful/internal/modules/plugin/dto"
	"mindful/internal/modules/plugin/service"
)

type fakeStore struct {
	manifests []domain.Manifest
}

func (s fakeStore) Load(context.Context) ([]domain.Manifest, error) {
	return s.manifests, nil
}

type fakeHost struct {
	result       domain.RespondResult
	err          error
	lifecycleErr error
	got          *domain.RespondRequest
}

func (h fakeHost) CheckLifecycle(context.Context, domain.Manifest) error { return h.lifecycleErr }
func (fakeHost) GetMetadata(context.Context, domain.Manifest) (domain.Metadata, error) {
	return domain.Metadata{Name: "fake", Version: "1"}, nil
}
func (h fakeHost) Respond(_ context.Context, _ domain.Manifest, in domain.RespondRequest) (domain.RespondResult, error) {
	if h.got != nil {
		*h.got = in
	}
	return h.result, h.err
}

func TestDoctorDetectsChecksumMismatch(t *testing.T) {
	t.Parallel()
	tmp := t.TempDir()
	binPath := filepath.Join(tmp, "dummy-plugin")
	if err := os.WriteFile(binPath, []byte("not-a-real-plugin"), 0o755); err != nil {
		t.Fatalf("write plugin binary: %v", err)
	}
	raw := "- name: demo\n  version: 1.0.0\n  binary: dummy-plugin\n  sha256: " + strings.Repeat("0", 64) + "\n  enabled: true\n  capabilities: [respond]\n"
	manifestPath := filepath.Join(tmp, "plugins.yaml")
	if err := os.WriteFile(manifestPath, []byte(raw), 0o644); err != nil {
		t.Fatalf("write plugins.yaml: %v", err)
	}

	svc := service.NewPluginService(pluginout.NewFileManifestStore(manifestPath), nil)
	results, err := svc.Doctor(context.Background())
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected one result, got %d", len(results))
	}
	if !results[0].BinaryReachable || results[0].ChecksumValid || results[0].Error != "checksum mismatch" {
		t.Fatalf("expected checksum mismatch, got %+v", results[0])
	}
}

func TestDoctorReportsLifecycle(t *testing.T) {
	t.Parallel()
	good := manifestWithBinary(t, "good", true)
	broken := manifestWithBinary(t, "broken", true)
	missing := good
	missing.Name = "missing"
	missing.Binary = filepath.Join(t.TempDir(), "nope")

	svc := service.NewPluginService(fakeStore{manifests: []domain.Manifest{good, missing}}, fakeHost{})
	results, err := svc.Doctor(context.Background())
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if !results[0].LifecycleOK || results[1].BinaryReachable {
		t.Fatalf("unexpected doctor results: %+v", results)
	}

	svc = service.NewPluginService(fakeStore{manifests: []domain.Manifest{broken}}, fakeHost{lifecycleErr: errors.New("handshake failed")})
	results, err = svc.Doctor(context.Background())
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if results[0].LifecycleOK || results[0].Error != "handshake failed" {
		t.Fatalf("expected lifecycle failure, got %+v", results[0])
	}
}

func TestRespondRejectsDisabledAndUnknownPlugins(t *testing.T) {
	t.Parallel()
	manifest := manifestWithBinary(t, "demo", false)
	svc := service.NewPluginService(fakeStore{manifests: []domain.Manifest{manifest}}, fakeHost{})
	_, err := svc.Respond(context.Background(), dto.RespondInput{PluginName: "demo", Message: "hi"})
	if !errors.Is(err, domain.ErrPluginDisabled) {
		t.Fatalf("expected ErrPluginDisabled, got %v", err)
	}
	_, err = svc.Respond(context.Background(), dto.RespondInput{PluginName: "other", Message: "hi"})
	if !errors.Is(err, domain.ErrPluginNotFound) {
		t.Fatalf("expected ErrPluginNotFound, got %v", err)
	}
}

func TestRespondMapsTimeoutAndTrimsReply(t *testing.T) {
	t.Parallel()
	manifest := manifestWithBinary(t, "demo", true)
	var got domain.RespondRequest
	svc := service.NewPluginService(fakeStore{manifests: []domain.Manifest{manifest}}, fakeHost{
		result: domain.RespondResult{Reply: "  I hear you.  ", Category: "general", Handled: true},
		got:    &got,
	})
	out, err := svc.Respond(context.Background(), dto.RespondInput{PluginName: "demo", UserID: "u1", Message: "hello"})
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if out.Reply != "I hear you." || !out.Handled || got.UserID != "u1" || got.Message != "hello" {
		t.Fatalf("unexpected respond output %+v for request %+v", out, got)
	}

	svc = service.NewPluginService(fakeStore{manifests: []domain.Manifest{manifest}}, fakeHost{result: domain.RespondResult{Reply: " ", Handled: true}})
	out, err = svc.Respond(context.Background(), dto.RespondInput{PluginName: "demo", Message: "hello"})
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if out.Handled {
		t.Fatalf("blank reply must not count as handled")
	}

	svc = service.NewPluginService(fakeStore{manifests: []domain.Manifest{manifest}}, fakeHost{err: context.DeadlineExceeded})
	_, err = svc.Respond(context.Background(), dto.RespondInput{PluginName: "demo", Message: "hello"})
	if !errors.Is(err, domain.ErrPluginTimeout) {
		t.Fatalf("expected ErrPluginTimeout, got %v", err)
	}
}

func TestListRejectsDuplicateNames(t *testing.T) {
	t.Parallel()
	manifest := manifestWithBinary(t, "demo", true)
	svc := service.NewPluginService(fakeStore{manifests: []domain.Manifest{manifest, manifest}}, nil)
	if _, err := svc.List(context.Background()); err == nil {
		t.Fatalf("expected duplicate name error")
	}
}

func manifestWithBinary(t *testing.T, name string, enabled bool) domain.Manifest {
	t.Helper()
	binPath := filepath.Join(t.TempDir(), "plugin-bin")
	if err := os.WriteFile(binPath, []byte("binary"), 0o755); err != nil {
		t.Fatalf("write binary: %v", err)
	}
	hash := sha256.Sum256([]byte("binary"))
	return domain.Manifest{
		Name:         name,
		Version:      "1.0.0",
		Binary:       binPath,
		SHA256:       hex.EncodeToString(hash[:]),
		Enabled:      enabled,
		Capabilities: []domain.Capability{domain.CapabilityRespond},
	}
}

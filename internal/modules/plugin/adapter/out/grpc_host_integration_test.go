package out_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	pluginout "mindful/internal/modules/plugin/adapter/out"
	"mindful/internal/modules/plugin/domain"
)

func TestGRPCHostIntegrationEchoPlugin(t *testing.T) {
	if testing.Short() {
		t.Skip("builds a plugin binary")
	}
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go toolchain not on PATH")
	}
	binPath, checksum := buildEchoPlugin(t)
	manifest := domain.Manifest{
		Name:         "echo",
		Version:      "1.0.0",
		Binary:       binPath,
		SHA256:       checksum,
		Enabled:      true,
		Capabilities: []domain.Capability{domain.CapabilityRespond},
	}

	host := pluginout.NewGRPCHost()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := host.CheckLifecycle(ctx, manifest); err != nil {
		t.Fatalf("check lifecycle: %v", err)
	}
	metadata, err := host.GetMetadata(ctx, manifest)
	if err != nil {
		t.Fatalf("get metadata: %v", err)
	}
	if metadata.Name != "echo" || len(metadata.Capabilities) != 1 {
		t.Fatalf("unexpected metadata: %+v", metadata)
	}

	out, err := host.Respond(ctx, manifest, domain.RespondRequest{UserID: "u1", Message: "I had a long day"})
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if !out.Handled || out.Reply == "" {
		t.Fatalf("expected a handled reply, got %+v", out)
	}

	out, err = host.Respond(ctx, manifest, domain.RespondRequest{UserID: "u1", Message: "I feel anxious"})
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if out.Handled {
		t.Fatalf("echo plugin must defer keyword topics, got %+v", out)
	}
}

func buildEchoPlugin(t *testing.T) (string, string) {
	t.Helper()
	binPath := filepath.Join(t.TempDir(), "echo-plugin")
	cmd := exec.Command("go", "build", "-o", binPath, "./plugins/echo")
	cmd.Dir = repositoryRoot(t)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build echo plugin: %v\n%s", err, string(out))
	}
	payload, err := os.ReadFile(binPath)
	if err != nil {
		t.Fatalf("read built plugin: %v", err)
	}
	hash := sha256.Sum256(payload)
	return binPath, hex.EncodeToString(hash[:])
}

func repositoryRoot(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime caller failed")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "../../../../../"))
}

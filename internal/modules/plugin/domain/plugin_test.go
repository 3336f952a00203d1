package domain_test

import (
	"testing"

	"mindful/internal/modules/plugin/domain"
)

const sum = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"

func TestManifestValidate(t *testing.T) {
	t.Parallel()
	respond := []domain.Capability{domain.CapabilityRespond}
	cases := []struct {
		name      string
		manifest  domain.Manifest
		shouldErr bool
	}{
		{name: "valid", manifest: domain.Manifest{Name: "echo", Version: "1", Binary: "/tmp/p", SHA256: sum, Enabled: true, Capabilities: respond}},
		{name: "missing name", manifest: domain.Manifest{Version: "1", Binary: "/tmp/p", SHA256: sum, Capabilities: respond}, shouldErr: true},
		{name: "bad name", manifest: domain.Manifest{Name: "Echo Bot", Version: "1", Binary: "/tmp/p", SHA256: sum, Capabilities: respond}, shouldErr: true},
		{name: "missing version", manifest: domain.Manifest{Name: "echo", Binary: "/tmp/p", SHA256: sum, Capabilities: respond}, shouldErr: true},
		{name: "missing binary", manifest: domain.Manifest{Name: "echo", Version: "1", SHA256: sum, Capabilities: respond}, shouldErr: true},
		{name: "missing sha", manifest: domain.Manifest{Name: "echo", Version: "1", Binary: "/tmp/p", Capabilities: respond}, shouldErr: true},
		{name: "no capabilities", manifest: domain.Manifest{Name: "echo", Version: "1", Binary: "/tmp/p", SHA256: sum}, shouldErr: true},
		{name: "duplicate capability", manifest: domain.Manifest{Name: "echo", Version: "1", Binary: "/tmp/p", SHA256: sum, Capabilities: []domain.Capability{"respond", "respond"}}, shouldErr: true},
		{name: "invalid capability", manifest: domain.Manifest{Name: "echo", Version: "1", Binary: "/tmp/p", SHA256: sum, Capabilities: []domain.Capability{"command"}}, shouldErr: true},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := tc.manifest.Validate()
			if tc.shouldErr && err == nil {
				t.Fatalf("expected error")
			}
			if !tc.shouldErr && err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	}
}

func TestRespondRequestValidate(t *testing.T) {
	t.Parallel()
	if err := (domain.RespondRequest{Message: "hi"}).Validate(); err != nil {
		t.Fatalf("validate request: %v", err)
	}
	if err := (domain.RespondRequest{Message: "   "}).Validate(); err == nil {
		t.Fatalf("expected blank message error")
	}
	m := domain.Manifest{Capabilities: []domain.Capability{domain.CapabilityRespond}}
	if !m.HasCapability(domain.CapabilityRespond) || m.HasCapability("other") {
		t.Fatalf("unexpected capability lookup result")
	}
}

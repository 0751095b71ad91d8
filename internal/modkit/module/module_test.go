package module

import (
	"testing"

	phttp "slidesift/internal/platform/net/http"
)

// stubModule is a minimal test double that satisfies Module
type stubModule struct {
	mounted *bool
	ports   any
	name    string
}

func (s *stubModule) MountRoutes(_ phttp.Router) {
	if s.mounted != nil {
		*s.mounted = true
	}
}
func (s *stubModule) Ports() any   { return s.ports }
func (s *stubModule) Name() string { return s.name }

var _ Module = (*stubModule)(nil)

type fakeDetectPort interface{ Threshold() float64 }

type fakePort struct{}

func (fakePort) Threshold() float64 { return 0.7 }

type portBundle struct {
	Detect fakeDetectPort
}

func TestPortsOf(t *testing.T) {
	m := &stubModule{name: "detection", ports: portBundle{Detect: fakePort{}}}

	p, ok := PortsOf[fakeDetectPort](m)
	if !ok {
		t.Fatalf("expected port to be found")
	}
	if p.Threshold() != 0.7 {
		t.Fatalf("wrong port value")
	}

	if _, ok := PortsOf[interface{ Missing() }](m); ok {
		t.Fatalf("should not find absent port")
	}
}

func TestMustPortsOfPanics(t *testing.T) {
	m := &stubModule{name: "empty"}
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for missing port")
		}
	}()
	_ = MustPortsOf[fakeDetectPort](m)
}

func TestRegistry(t *testing.T) {
	Reset()
	Register("detection", portBundle{Detect: fakePort{}})

	got, ok := PortsAs[portBundle]("detection")
	if !ok || got.Detect == nil {
		t.Fatalf("registry lookup failed")
	}
	Reset()
	if _, ok := PortsAs[portBundle]("detection"); ok {
		t.Fatalf("reset should clear the registry")
	}
}

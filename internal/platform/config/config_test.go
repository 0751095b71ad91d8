package config

import (
	"testing"
	"time"

	"slidesift/internal/platform/testkit"
)

func TestPrefixComposition(t *testing.T) {
	t.Setenv("CORE_API_PORT", "4000")

	root := New()
	api := root.Prefix("CORE_").Prefix("API_")
	if got := api.MayString("PORT", ""); got != "4000" {
		t.Fatalf("prefixed read = %q, want 4000", got)
	}
}

func TestMustStringPanicsOnMissing(t *testing.T) {
	c := New().Prefix("SLIDESIFT_TEST_")
	testkit.MustPanic(t, func() { c.MustString("DEFINITELY_MISSING") })
}

func TestMayHelpersFallBack(t *testing.T) {
	t.Setenv("X_THRESH", "not-a-float")
	t.Setenv("X_TIMEOUT", "250ms")

	c := New().Prefix("X_")
	if got := c.MayFloat64("THRESH", 0.7); got != 0.7 {
		t.Fatalf("invalid float should use default, got %v", got)
	}
	if got := c.MayDuration("TIMEOUT", time.Second); got != 250*time.Millisecond {
		t.Fatalf("duration = %v, want 250ms", got)
	}
	if got := c.MayBool("MISSING", true); !got {
		t.Fatalf("missing bool should use default true")
	}
}

func TestMustPort(t *testing.T) {
	t.Setenv("P_GOOD", "8080")
	t.Setenv("P_BAD", "70000")

	c := New().Prefix("P_")
	if got := c.MustPort("GOOD"); got != ":8080" {
		t.Fatalf("MustPort = %q, want :8080", got)
	}
	testkit.MustPanic(t, func() { c.MustPort("BAD") })
}

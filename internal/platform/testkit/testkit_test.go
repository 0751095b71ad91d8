package testkit

import "testing"

func TestMustPanic(t *testing.T) {
	MustPanic(t, func() { panic("boom") })
}

func TestMustNotPanic(t *testing.T) {
	MustNotPanic(t, func() {})
}

func TestSwapRestores(t *testing.T) {
	v := 1
	seam := &v
	t.Run("inner", func(t *testing.T) {
		Swap(t, seam, 2)
		if *seam != 2 {
			t.Fatalf("swap did not take effect")
		}
	})
	if *seam != 1 {
		t.Fatalf("swap was not restored, got %d", *seam)
	}
}

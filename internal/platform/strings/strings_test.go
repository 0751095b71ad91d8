package strings

import "testing"

func TestMustPrefix(t *testing.T) {
	cases := map[string]string{
		"/detection/":   "/detection",
		" detection  ":  "/detection",
		"//detection//": "/detection",
	}
	for in, want := range cases {
		if got := MustPrefix(in); got != want {
			t.Fatalf("MustPrefix(%q) = %q, want %q", in, got, want)
		}
	}

	for _, in := range []string{"/", "", "   "} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("want panic for %q", in)
				}
			}()
			_ = MustPrefix(in)
		}()
	}
}

func TestMustString(t *testing.T) {
	if got := MustString("ok", "name"); got != "ok" {
		t.Fatalf("want ok got %q", got)
	}
	defer func() {
		if recover() == nil {
			t.Fatal("want panic for blank value")
		}
	}()
	_ = MustString("   ", "name")
}

func TestIfEmpty(t *testing.T) {
	def := []string{"a"}
	if got := IfEmpty(nil, def); len(got) != 1 || got[0] != "a" {
		t.Fatalf("IfEmpty(nil) should return default")
	}
	in := []string{"b"}
	if got := IfEmpty(in, def); got[0] != "b" {
		t.Fatalf("IfEmpty(non-empty) should return input")
	}
}

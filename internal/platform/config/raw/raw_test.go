package raw

import "testing"

func TestConfGet(t *testing.T) {
	t.Setenv("APP_NAME", " slidesift ")
	t.Setenv("API_PORT", " 8080 ")

	root := New()
	api := root.Prefix("API_")

	tests := []struct {
		name string
		conf Conf
		key  string
		def  string
		want string
	}{
		{name: "root trims", conf: root, key: "APP_NAME", def: "x", want: "slidesift"},
		{name: "prefixed hit", conf: api, key: "PORT", def: "x", want: "8080"},
		{name: "missing returns default", conf: api, key: "MISSING", def: "defv", want: "defv"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.conf.Get(tt.key, tt.def); got != tt.want {
				t.Fatalf("Get(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestConfGetBool(t *testing.T) {
	t.Setenv("FEATURE_ON", "yes")
	t.Setenv("FEATURE_OFF", "0")

	c := New().Prefix("FEATURE_")
	if !c.GetBool("ON", false) {
		t.Fatalf("expected yes to parse true")
	}
	if c.GetBool("OFF", true) {
		t.Fatalf("expected 0 to parse false")
	}
	if !c.GetBool("MISSING", true) {
		t.Fatalf("expected default true")
	}
}

func TestConfGetInt(t *testing.T) {
	t.Setenv("N_GOOD", "512")
	t.Setenv("N_BAD", "12x")

	c := New().Prefix("N_")
	if got := c.GetInt("GOOD", 1); got != 512 {
		t.Fatalf("GetInt = %d, want 512", got)
	}
	if got := c.GetInt("BAD", 7); got != 7 {
		t.Fatalf("non-numeric should fall back to default, got %d", got)
	}
}

package validators

import "testing"

func TestIsEmail(t *testing.T) {
	cases := map[string]bool{
		"joao@example.com":        true,
		" joao@example.com ":      true,
		"":                        false,
		"joao":                    false,
		"joao@localhost":          false,
		"joao@example.":           false,
		"Joao <joao@example.com>": false,
		"joao@@example.com":       false,
	}
	for in, want := range cases {
		if got := IsEmail(in); got != want {
			t.Errorf("IsEmail(%q) = %v, want %v", in, got, want)
		}
	}
}

package language

import "testing"

func TestMatch(t *testing.T) {
	t.Run("exact name", func(t *testing.T) {
		lang, ok := Match("French")
		if !ok || lang != "French" {
			t.Errorf("expected French, got %q (ok=%v)", lang, ok)
		}
	})

	t.Run("case insensitive", func(t *testing.T) {
		lang, ok := Match("SPANISH")
		if !ok || lang != "Spanish" {
			t.Errorf("expected Spanish, got %q (ok=%v)", lang, ok)
		}
	})

	t.Run("embedded in sentence", func(t *testing.T) {
		lang, ok := Match("I want German please")
		if !ok || lang != "German" {
			t.Errorf("expected German, got %q (ok=%v)", lang, ok)
		}
	})

	t.Run("catalog order breaks ties", func(t *testing.T) {
		// Both English and Spanish appear; English is earlier in the catalog.
		lang, ok := Match("spanish or english, whichever")
		if !ok || lang != "English" {
			t.Errorf("expected English by catalog order, got %q (ok=%v)", lang, ok)
		}
	})

	t.Run("substring match is intentional", func(t *testing.T) {
		lang, ok := Match("I love North Korean food")
		if !ok || lang != "Korean" {
			t.Errorf("expected Korean, got %q (ok=%v)", lang, ok)
		}
	})

	t.Run("no match", func(t *testing.T) {
		if lang, ok := Match("Klingon"); ok {
			t.Errorf("expected no match, got %q", lang)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if lang, ok := Match(""); ok {
			t.Errorf("expected no match for empty input, got %q", lang)
		}
	})
}

func TestComplement(t *testing.T) {
	cases := []struct {
		lang string
		want string
	}{
		{"English", "Spanish"},
		{"Spanish", "English"},
		{"German", "English"},
		{"Korean", "English"},
	}

	for _, tc := range cases {
		if got := Complement(tc.lang); got != tc.want {
			t.Errorf("Complement(%q) = %q, want %q", tc.lang, got, tc.want)
		}
	}
}

func TestIsSupported(t *testing.T) {
	if !IsSupported("Greek") {
		t.Error("Greek should be supported")
	}
	if IsSupported("greek") {
		t.Error("IsSupported is exact, lowercase should not match")
	}
	if IsSupported("Esperanto") {
		t.Error("Esperanto should not be supported")
	}
}

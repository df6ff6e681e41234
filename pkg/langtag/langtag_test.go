package langtag

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "PT-BR", want: "pt-br"},
		{in: "  en ", want: "en"},
		{in: "", want: ""},
		{in: "   ", want: ""},
	}

	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSame(t *testing.T) {
	if !Same("PT-BR", " pt-br ") {
		t.Fatal("expected PT-BR and pt-br to match")
	}
	if Same("pt-BR", "pt") {
		t.Fatal("pt-BR and pt are distinct categories")
	}
	if !Same("", "   ") {
		t.Fatal("blank tags share the unknown category")
	}
}

func TestCanonical(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{in: "pt-br", want: "pt-BR", ok: true},
		{in: "EN", want: "en", ok: true},
		{in: "AUTO", want: "auto", ok: true},
		{in: "not a tag", ok: false},
		{in: "", ok: false},
	}

	for _, tc := range cases {
		got, ok := Canonical(tc.in)
		if ok != tc.ok {
			t.Fatalf("Canonical(%q) ok = %v, want %v", tc.in, ok, tc.ok)
		}
		if ok && got != tc.want {
			t.Fatalf("Canonical(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestLanguageForCountry(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "BR", want: "pt-BR"},
		{in: "br", want: "pt-BR"},
		{in: " us ", want: "en-US"},
		{in: "ZZ", want: ""},
		{in: "", want: ""},
	}

	for _, tc := range cases {
		if got := LanguageForCountry(tc.in); got != tc.want {
			t.Fatalf("LanguageForCountry(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

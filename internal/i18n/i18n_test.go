package i18n

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", LocaleEN},
		{"en", LocaleEN},
		{"en-US", LocaleEN},
		{"EN-GB", LocaleEN},
		{"ar", LocaleAR},
		{"ar-EG", LocaleAR},
		{"fr-FR", LocaleEN},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTFallsBack(t *testing.T) {
	if got := T(LocaleAR, "error.not_found"); got == "" || got == "error.not_found" {
		t.Fatalf("expected arabic message for error.not_found, got %q", got)
	}
	// 未知 key 回退为 key 本身
	if got := T(LocaleAR, "error.__missing__"); got != "error.__missing__" {
		t.Fatalf("expected key fallback, got %q", got)
	}
	// 未知语言回退默认语言
	if got := T("fr-FR", "error.not_found"); got != T(LocaleEN, "error.not_found") {
		t.Fatalf("expected default-locale fallback, got %q", got)
	}
}

func TestSprintfFormatsArgs(t *testing.T) {
	got := Sprintf(LocaleEN, "error.password_min_length", 8)
	if got == "error.password_min_length" {
		t.Fatalf("expected formatted message, got key fallback")
	}
}

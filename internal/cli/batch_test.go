package cli

import "testing"

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"essay.txt":                         "essay",
		"/home/user/drafts/chapter one.md":  "chapter-one",
		"https://example.com/posts/my-post": "example.com_posts_my-post",
		"https://example.com/":              "example.com",
		"http://example.com/a?b=c":          "example.com_a",
		"weird\\name*with?chars.txt":        "weird_name_with_chars",
	}
	for input, want := range cases {
		if got := sanitizeFilename(input); got != want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", input, got, want)
		}
	}

	long := make([]byte, 150)
	for i := range long {
		long[i] = 'a'
	}
	if got := sanitizeFilename(string(long)); len(got) > 100 {
		t.Errorf("expected sanitized name capped at 100 chars, got %d", len(got))
	}
}

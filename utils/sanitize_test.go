package utils

import "testing"

func TestSanitizeText(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  plain  ", "plain"},
		{"<b>bold</b> title", "bold title"},
		{"multi\nline\r\ntitle", "multi line title"},
		{"<script>alert(1)</script>safe", "safe"},
		{"tab\tseparated", "tab separated"},
	}
	for _, tc := range cases {
		if got := SanitizeText(tc.in); got != tc.want {
			t.Fatalf("SanitizeText(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSanitizeMultiline(t *testing.T) {
	in := "Learn <b>Go</b>\r\nBuild APIs\rShip"
	want := "Learn Go\nBuild APIs\nShip"
	if got := SanitizeMultiline(in); got != want {
		t.Fatalf("SanitizeMultiline = %q, want %q", got, want)
	}
}

func TestSanitizeHTML(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"<p>keep</p>", "<p>keep</p>"},
		{`<p class="x" onclick="evil()">attrs dropped</p>`, "<p>attrs dropped</p>"},
		{"<script>alert(1)</script><em>fine</em>", "<em>fine</em>"},
		{"<iframe src='x'></iframe>text", "text"},
		{`<a href="https://example.com" target="_blank">link</a>`, `<a href="https://example.com">link</a>`},
		{`<a href="javascript:evil()">link</a>`, "<a>link</a>"},
		{"line<br>break", "line<br/>break"},
		{"<ul><li>one</li></ul>", "<ul><li>one</li></ul>"},
	}
	for _, tc := range cases {
		if got := SanitizeHTML(tc.in); got != tc.want {
			t.Fatalf("SanitizeHTML(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

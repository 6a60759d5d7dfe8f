package handlers

import "testing"

func TestFormatPrice(t *testing.T) {
	cases := []struct {
		name      string
		priceType string
		regular   string
		sale      string
		want      string
	}{
		{"free type wins", "free", "20", "10", "Free"},
		{"regular only", "paid", "20", "0", "$20.00"},
		{"sale strikes regular", "paid", "20", "10", "<del>$20.00</del> $10.00"},
		{"no positive price", "paid", "0", "", "Free"},
		{"empty meta", "", "", "", "Free"},
		{"unparseable regular", "paid", "twenty", "", "Free"},
		{"sale without regular", "paid", "", "5", "$5.00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatPrice(tc.priceType, tc.regular, tc.sale); got != tc.want {
				t.Fatalf("FormatPrice(%q, %q, %q) = %q, want %q", tc.priceType, tc.regular, tc.sale, got, tc.want)
			}
		})
	}
}

func TestCoerceBenefits(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"plain text", "plain text"},
		{"line one\nline two", "line one\nline two"},
		{`["serialized","array"]`, ""},
		{`{"serialized":"object"}`, ""},
		{"[not actually json", "[not actually json"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := coerceBenefits(tc.raw); got != tc.want {
			t.Fatalf("coerceBenefits(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

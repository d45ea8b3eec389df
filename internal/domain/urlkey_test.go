package domain

import "testing"

func TestCanonicalURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "lowercases scheme and host",
			in:   "HTTPS://Example.COM/Data",
			want: "https://example.com/Data",
		},
		{
			name: "strips trailing slash",
			in:   "https://example.com/data/",
			want: "https://example.com/data",
		},
		{
			name: "keeps root slash",
			in:   "https://example.com/",
			want: "https://example.com/",
		},
		{
			name: "drops utm parameters",
			in:   "https://example.com/data?utm_source=x&id=3&utm_campaign=y",
			want: "https://example.com/data?id=3",
		},
		{
			name: "keeps parameter order",
			in:   "https://example.com/data?b=2&a=1",
			want: "https://example.com/data?b=2&a=1",
		},
		{
			name: "drops fragment",
			in:   "https://example.com/data#section",
			want: "https://example.com/data",
		},
		{
			name: "assumes https when scheme missing",
			in:   "example.com/data",
			want: "https://example.com/data",
		},
		{
			name: "trims whitespace",
			in:   "  https://example.com/data  ",
			want: "https://example.com/data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CanonicalURL(tt.in)
			if err != nil {
				t.Fatalf("CanonicalURL(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("CanonicalURL(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCanonicalURLErrors(t *testing.T) {
	for _, in := range []string{"", "   ", "https://"} {
		if _, err := CanonicalURL(in); err == nil {
			t.Errorf("CanonicalURL(%q) should return error", in)
		}
	}
}

func TestCanonicalURLIsStable(t *testing.T) {
	once, err := CanonicalURL("HTTP://Example.com/data/?utm_x=1&id=2")
	if err != nil {
		t.Fatalf("CanonicalURL() error = %v", err)
	}
	twice, err := CanonicalURL(once)
	if err != nil {
		t.Fatalf("CanonicalURL() second pass error = %v", err)
	}
	if once != twice {
		t.Errorf("canonical form is not a fixed point: %q -> %q", once, twice)
	}
}

package search

import "testing"

func TestDetectDialect(t *testing.T) {
	cases := []struct {
		name    string
		baseURL string
		want    Dialect
	}{
		{"plain rest", "https://api.example.com", DialectREST},
		{"rest with path", "https://api.example.com/v2", DialectREST},
		{"meili port", "http://10.0.0.5:7700", DialectIndex},
		{"meili indexes path", "https://search.example.com/indexes/order_details", DialectIndex},
		{"rest on other port", "http://10.0.0.5:8080", DialectREST},
		{"bare host with meili port", "10.0.0.5:7700", DialectIndex},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DetectDialect(tc.baseURL); got != tc.want {
				t.Fatalf("DetectDialect(%q) = %q, want %q", tc.baseURL, got, tc.want)
			}
		})
	}
}

func TestNormalizeToken(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"abc123", "abc123"},
		{"Bearer abc123", "abc123"},
		{"  Bearer abc123  ", "abc123"},
		{"", ""},
		{"bearer-like-token", "bearer-like-token"},
	}
	for _, tc := range cases {
		if got := normalizeToken(tc.in); got != tc.want {
			t.Fatalf("normalizeToken(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

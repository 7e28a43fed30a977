package service

import "testing"

func TestNormalizeWebsiteURL(t *testing.T) {
	cases := map[string]struct {
		in      string
		want    string
		wantErr bool
	}{
		"bare domain":        {in: "example.com", want: "https://example.com"},
		"strips www":         {in: "http://www.Example.com/menu", want: "https://example.com/menu"},
		"forces https":       {in: "http://example.com", want: "https://example.com"},
		"strips utm params":  {in: "https://example.com/?utm_source=ig&utm_medium=bio&ref=abc", want: "https://example.com/?ref=abc"},
		"idn to punycode":    {in: "https://bücher.example", want: "https://xn--bcher-kva.example"},
		"trailing dot":       {in: "example.com.", want: "https://example.com"},
		"empty":              {in: "   ", wantErr: true},
		"no domain":          {in: "https://localhost", wantErr: true},
		"garbage":            {in: "ht!tp://%", wantErr: true},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := NormalizeWebsiteURL(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %q", tc.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestStripCodeFences(t *testing.T) {
	cases := map[string]struct {
		in   string
		want string
	}{
		"no fences":        {in: `{"a": 1}`, want: `{"a": 1}`},
		"plain fence":      {in: "```\n{\"a\": 1}\n```", want: `{"a": 1}`},
		"language tag":     {in: "```json\n{\"a\": 1}\n```", want: `{"a": 1}`},
		"surrounding text": {in: "Result:\n```json\n{\"a\": 1}\n```\nDone.", want: `{"a": 1}`},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if got := StripCodeFences(tc.in); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	if got := Summarize("short text", 100); got != "short text" {
		t.Fatalf("short input must pass through, got %q", got)
	}

	long := "The quick brown fox jumps over the lazy dog near the riverbank every single morning"
	got := Summarize(long, 40)
	if len([]rune(got)) > 41 {
		t.Fatalf("summary exceeds limit: %q", got)
	}
	if got[len(got)-len("…"):] != "…" {
		t.Fatalf("expected ellipsis suffix, got %q", got)
	}

	collapsed := Summarize("a  b\n\nc\t d", 100)
	if collapsed != "a b c d" {
		t.Fatalf("expected whitespace collapsed, got %q", collapsed)
	}
}

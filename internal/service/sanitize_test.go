package service

import "testing"

func TestSanitizeResponse(t *testing.T) {
	clean := `{"planName": "Test Plan", "duration": "4 weeks"}`

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "already clean text is unchanged",
			raw:  clean,
			want: clean,
		},
		{
			name: "json fence",
			raw:  "```json\n" + clean + "\n```",
			want: clean,
		},
		{
			name: "bare fence",
			raw:  "```\n" + clean + "\n```",
			want: clean,
		},
		{
			name: "fences without trailing newlines",
			raw:  "```json" + clean + "```",
			want: clean,
		},
		{
			name: "surrounding whitespace",
			raw:  "\n\n  " + clean + "  \n",
			want: clean,
		},
		{
			name: "empty input",
			raw:  "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeResponse(tt.raw)
			if got != tt.want {
				t.Errorf("SanitizeResponse() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSanitizeResponseIdempotent(t *testing.T) {
	raw := "```json\n{\"planName\": \"Plan\"}\n```"
	once := SanitizeResponse(raw)
	twice := SanitizeResponse(once)
	if once != twice {
		t.Errorf("sanitizer is not idempotent: %q vs %q", once, twice)
	}
}

package sanitize

import "testing"

func TestText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "server returns 500 on login", "server returns 500 on login"},
		{"trims whitespace", "  needs triage  ", "needs triage"},
		{"strips tags", "<script>alert(1)</script>hi", "hi"},
		{"strips markup keeps text", "<b>urgent</b> fix", "urgent fix"},
		{"empty", "", ""},
		{"only markup", "<img src=x onerror=alert(1)>", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Text(tt.input)
			if got != tt.want {
				t.Errorf("Text(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

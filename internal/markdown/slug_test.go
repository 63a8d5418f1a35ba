package markdown

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"Getting Started", "getting-started"},
		{"My Post! (Draft)", "my-post-draft"},
		{"2024-01-01 Release", "2024-01-01-release"},
		{"", ""},
		{"already-slugged", "already-slugged"},
		{"  Spaces   Everywhere  ", "spaces-everywhere"},
		{"한글 제목", "한글-제목"},
		{"Go 1.22 릴리스 노트", "go-1-22-릴리스-노트"},
		{"!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Slugify(tt.input)
			if got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	inputs := []string{"Hello World", "Getting Started!", "한글 제목", "a--b__c"}
	for _, in := range inputs {
		once := Slugify(in)
		twice := Slugify(once)
		if once != twice {
			t.Errorf("Slugify not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestStripEmoji(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"🚀 Getting Started", "Getting Started"},
		{"Plain text", "Plain text"},
		{"💡 Tips ⚡", "Tips"},
		{"🚀💡⚡", ""},
		{"☀ Weather ✈", "Weather"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := StripEmoji(tt.input); got != tt.want {
			t.Errorf("StripEmoji(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

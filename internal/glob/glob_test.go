package glob

import "testing"

func TestMatch(t *testing.T) {
	tests := []struct {
		pattern string
		name    string
		want    bool
	}{
		// Basic patterns
		{"*", "home.htm", true},
		{"home*", "home.htm", true},
		{"*.md", "intro.md", true},
		{"*.md", "intro.htm", false},
		{"home.htm", "home.htm", true},
		{"home.htm", "about.htm", false},

		// Nested names
		{"nav/*", "nav/menu.htm", true},
		{"nav/*", "footer/menu.htm", false},
		{"menu*", "nav/menu.htm", true},
		{"nav/menu*", "blog/nav/menu.htm", false},

		// Double star, prefix only
		{"blog/**", "blog/post.htm", true},
		{"blog/**", "blog/2024/post.htm", true},
		{"blog/**", "blogroll.htm", false},

		// Double star, suffix only
		{"**/menu.htm", "nav/menu.htm", true},
		{"**/menu.htm", "a/b/menu.htm", true},
		{"**/menu.htm", "menu.htm", true},
		{"**/menu.htm", "nav/footer.htm", false},

		// Double star, both
		{"blog/**/post*", "blog/2024/post-1.htm", true},
		{"blog/**/post*", "blog/post-1.htm", true},
		{"blog/**/post*", "news/post-1.htm", false},

		// Question mark
		{"page?.htm", "page1.htm", true},
		{"page?.htm", "page10.htm", false},
	}

	for _, tc := range tests {
		t.Run(tc.pattern+"_"+tc.name, func(t *testing.T) {
			got, err := Match(tc.pattern, tc.name)
			if err != nil {
				t.Fatalf("Match(%q, %q) unexpected error: %v", tc.pattern, tc.name, err)
			}
			if got != tc.want {
				t.Errorf("Match(%q, %q) = %v, want %v", tc.pattern, tc.name, got, tc.want)
			}
		})
	}
}

func TestMatch_InvalidPattern(t *testing.T) {
	if _, err := Match("[a-", "home.htm"); err == nil {
		t.Error("Match with invalid pattern should return error")
	}
}

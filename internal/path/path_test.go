package path

import "testing"

func TestNormalise(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"pages/home.htm", "pages/home.htm", false},
		{"partials/blog/card.htm", "partials/blog/card.htm", false},
		{"/pages/home.htm/", "pages/home.htm", false},
		{"pages//./home.htm", "pages/home.htm", false},
		{`pages\home.htm`, "pages/home.htm", false},

		{"", "", true},
		{".", "", true},
		{"/", "", true},
		{"..", "", true},
		{"pages/../secret", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Normalise(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("Normalise(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("Normalise(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		input          string
		dir, name, ext string
		wantErr        bool
	}{
		{"pages/home.htm", "pages", "home", "htm", false},
		{"partials/blog/card.htm", "partials", "blog/card", "htm", false},
		{"content/welcome.md", "content", "welcome", "md", false},
		{"layouts/default", "layouts", "default", DefaultExtension, false},
		{"pages/v1.2/index.htm", "pages", "v1.2/index", "htm", false},
		{"pages/.htaccess", "pages", ".htaccess", DefaultExtension, false},
		{"pages", "", "", "", true},
		{"pages/", "", "", "", true},
		{"pages/home.", "", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			dir, name, ext, err := Split(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Split(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if dir != tt.dir || name != tt.name || ext != tt.ext {
				t.Errorf("Split(%q) = (%q, %q, %q), want (%q, %q, %q)",
					tt.input, dir, name, ext, tt.dir, tt.name, tt.ext)
			}
			if !tt.wantErr && tt.ext != DefaultExtension {
				if got := Join(dir, name, ext); got != tt.input {
					t.Errorf("Join(Split(%q)) = %q", tt.input, got)
				}
			}
		})
	}
}

func TestDirect(t *testing.T) {
	tests := []struct {
		path, prefix string
		want         bool
	}{
		{"partials/nav.htm", "partials", true},
		{"partials/blog/card.htm", "partials", false},
		{"partials/nav.htm", `partials\`, true},
		{"pages/home.htm", "partials", false},
		{"home.htm", "", true},
	}
	for _, tt := range tests {
		if got := Direct(tt.path, tt.prefix); got != tt.want {
			t.Errorf("Direct(%q, %q) = %v, want %v", tt.path, tt.prefix, got, tt.want)
		}
	}
}

package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPath(t *testing.T) {
	got, err := Path("/pages/home.htm", 0)
	require.NoError(t, err)
	assert.Equal(t, "pages/home.htm", got)

	_, err = Path("", 0)
	assert.ErrorIs(t, err, ErrInvalidPath)

	_, err = Path("pages/\x00.htm", 0)
	assert.ErrorIs(t, err, ErrInvalidPath)

	_, err = Path("pages/../../etc/passwd", 0)
	assert.ErrorIs(t, err, ErrInvalidPath)

	_, err = Path("pages/"+strings.Repeat("a", 300)+".htm", 255)
	assert.ErrorIs(t, err, ErrPathTooLong)
}

func TestTemplate(t *testing.T) {
	tests := []struct {
		in      string
		want    TemplatePath
		wantErr error
	}{
		{"pages/home.htm", TemplatePath{"pages", "home", "htm"}, nil},
		{"partials/blog/card.htm", TemplatePath{"partials", "blog/card", "htm"}, nil},
		{"layouts/default", TemplatePath{"layouts", "default", "htm"}, nil},
		{"content/intro.md", TemplatePath{"content", "intro", "md"}, nil},
		{"assets/site.css", TemplatePath{}, ErrUnknownDir},
		{"pages", TemplatePath{}, ErrInvalidPath},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Template(tt.in, 0)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	tp, err := Template("layouts/default", 0)
	require.NoError(t, err)
	assert.Equal(t, "layouts/default.htm", tp.String())
}

func TestContent(t *testing.T) {
	assert.NoError(t, Content("abc", 3))
	assert.NoError(t, Content(strings.Repeat("x", 1000), 0))
	assert.ErrorIs(t, Content("abcd", 3), ErrContentTooLarge)
}

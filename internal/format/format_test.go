package format

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHumanSize(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0B"},
		{512, "512B"},
		{1024, "1.0K"},
		{1536, "1.5K"},
		{5 << 20, "5.0M"},
		{3 << 30, "3.0G"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, HumanSize(tc.in), "HumanSize(%d)", tc.in)
	}
}

func TestPaths(t *testing.T) {
	var b strings.Builder
	require.NoError(t, Paths(&b, []Row{{Path: "pages/home.htm"}, {Path: "layouts/default.htm"}}))
	assert.Equal(t, "pages/home.htm\nlayouts/default.htm\n", b.String())
}

func TestLong(t *testing.T) {
	var b strings.Builder
	require.NoError(t, Long(&b, nil))
	assert.Empty(t, b.String())

	mtime := time.Date(2024, 3, 1, 9, 30, 0, 0, time.Local)
	rows := []Row{
		{Path: "pages/home.htm", Size: 2048, MTime: mtime, Source: "file"},
		{Path: "pages/about.htm", Size: 10},
	}
	require.NoError(t, Long(&b, rows))

	lines := strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "  SIZE  UPDATED           SOURCE  PATH", lines[0])
	assert.Equal(t, "  2.0K  2024-03-01 09:30  file    pages/home.htm", lines[1])
	assert.Equal(t, "   10B  -                 -       pages/about.htm", lines[2])
}

func TestTree(t *testing.T) {
	var b strings.Builder
	rows := []Row{
		{Path: "pages/home.htm"},
		{Path: "partials/nav/menu.htm"},
		{Path: "pages/about.htm"},
	}
	require.NoError(t, Tree(&b, rows))

	want := `├── pages/
│   ├── about.htm
│   └── home.htm
└── partials/
    └── nav/
        └── menu.htm
`
	assert.Equal(t, want, b.String())
}

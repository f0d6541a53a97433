package halcyon

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSettings(t *testing.T) {
	src := `
title = "Blog"
url = "/blog/:page?"
description = plain value

[blogPosts]
pageNumber = "{{ :page }}"
postsPerPage = 10
categories[] = "news"
categories[] = "go"
categories[] = "news"

[viewBag]
`
	want := Settings{
		Global: []Entry{
			{Key: "title", Values: []string{"Blog"}},
			{Key: "url", Values: []string{"/blog/:page?"}},
			{Key: "description", Values: []string{"plain value"}},
		},
		Groups: []Group{
			{Name: "blogPosts", Entries: []Entry{
				{Key: "pageNumber", Values: []string{"{{ :page }}"}},
				{Key: "postsPerPage", Values: []string{"10"}},
				{Key: "categories", Values: []string{"news", "go", "news"}, List: true},
			}},
			{Name: "viewBag"},
		},
	}

	got := ParseSettings(src)
	if diff := cmp.Diff(want, got, ignoreErr); diff != "" {
		t.Errorf("ParseSettings() mismatch (-want +got):\n%s", diff)
	}
	assert.NoError(t, got.Err)
}

func TestParseSettings_Empty(t *testing.T) {
	s := ParseSettings("  \n ")
	assert.True(t, s.IsZero())
	assert.Equal(t, "", s.Render())
}

func TestSettings_GetSet(t *testing.T) {
	s := ParseSettings(`title = "Old"`)

	v, ok := s.Get("title")
	assert.True(t, ok)
	assert.Equal(t, "Old", v)

	require.NoError(t, s.Set("title", "New"))
	require.NoError(t, s.Set("layout", "default"))
	_, ok = s.Get("missing")
	assert.False(t, ok)

	assert.Equal(t, "title = \"New\"\nlayout = \"default\"", s.Render())

	for _, key := range []string{"", " ", "a\nb", "a=b", "[menu]"} {
		assert.ErrorIs(t, s.Set(key, "x"), ErrInvalidSetting, "key %q", key)
	}
	assert.ErrorIs(t, s.Set("title", "x\n==\ny"), ErrInvalidSetting)
	v, _ = s.Get("title")
	assert.Equal(t, "New", v)
}

func TestParseSettings_RepeatedKey(t *testing.T) {
	s := ParseSettings("a = 1\na = 2\nlayout = \"x\"\nlayout = \"y\"")

	v, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, "2", v)
	v, _ = s.Get("layout")
	assert.Equal(t, "y", v)
	assert.Equal(t, "a = 2\nlayout = \"y\"", s.Render())
}

func TestSettings_RenderFoldsLineBreaks(t *testing.T) {
	s := Settings{Global: []Entry{{Key: "title", Values: []string{"x\n==\ny"}}}}
	assert.Equal(t, `title = "x == y"`, s.Render())

	sec := Sections{Settings: s, Code: "echo 1;", Markup: "<p></p>"}
	got := Parse(Render(sec, RenderOptions{}))
	v, ok := got.Settings.Get("title")
	require.True(t, ok)
	assert.Equal(t, "x == y", v)
	assert.Equal(t, "echo 1;", got.Code)
	assert.Equal(t, "<p></p>", got.Markup)
}

func TestSettings_Map(t *testing.T) {
	s := ParseSettings("title = \"Home\"\n[menu]\nitems[] = a\nitems[] = b\ndepth = 2")

	assert.Equal(t, map[string]any{
		"title": "Home",
		"menu": map[string]any{
			"items": []string{"a", "b"},
			"depth": "2",
		},
	}, s.Map())
}

func TestSettings_Render(t *testing.T) {
	s := Settings{
		Global: []Entry{
			{Key: "title", Values: []string{`A "quoted" title`}},
			{Key: "hidden", Values: []string{"true"}},
			{Key: "ratio", Values: []string{"-1.5"}},
			{Key: "version", Values: []string{"1.2.3"}},
		},
		Groups: []Group{{Name: "nav", Entries: []Entry{
			{Key: "links", Values: []string{"home", "about"}, List: true},
		}}},
	}

	want := `title = "A \"quoted\" title"
hidden = true
ratio = -1.5
version = "1.2.3"

[nav]
links[] = "home"
links[] = "about"`
	assert.Equal(t, want, s.Render())
}

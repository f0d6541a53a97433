package halcyon

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
)

var ignoreErr = cmpopts.IgnoreFields(Settings{}, "Err")

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Sections
	}{
		{
			name: "empty",
			want: Sections{},
		},
		{
			name:    "markup only",
			content: "<h1>Hello</h1>\n",
			want:    Sections{Markup: "<h1>Hello</h1>"},
		},
		{
			name:    "settings and markup",
			content: "title = \"Home\"\nurl = \"/\"\n==\n<h1>Hello</h1>",
			want: Sections{
				Settings: Settings{Global: []Entry{
					{Key: "title", Values: []string{"Home"}},
					{Key: "url", Values: []string{"/"}},
				}},
				Markup: "<h1>Hello</h1>",
			},
		},
		{
			name:    "settings code and markup",
			content: "layout = \"default\"\n==\n<?php\nfunction onStart()\n{\n}\n?>\n==\n<p>{{ page.title }}</p>",
			want: Sections{
				Settings: Settings{Global: []Entry{{Key: "layout", Values: []string{"default"}}}},
				Code:     "function onStart()\n{\n}",
				Markup:   "<p>{{ page.title }}</p>",
			},
		},
		{
			name:    "short open tag",
			content: "a = 1\n==\n<?\n$x = 1;\n?>\n==\nbody",
			want: Sections{
				Settings: Settings{Global: []Entry{{Key: "a", Values: []string{"1"}}}},
				Code:     "$x = 1;",
				Markup:   "body",
			},
		},
		{
			name:    "code without tags",
			content: "a = 1\n==\n$x = 1;\n==\nbody",
			want: Sections{
				Settings: Settings{Global: []Entry{{Key: "a", Values: []string{"1"}}}},
				Code:     "$x = 1;",
				Markup:   "body",
			},
		},
		{
			name:    "long separator with trailing space",
			content: "a = 1\n=====   \n\nbody",
			want: Sections{
				Settings: Settings{Global: []Entry{{Key: "a", Values: []string{"1"}}}},
				Markup:   "body",
			},
		},
		{
			name:    "extra sections dropped",
			content: "a = 1\n==\ncode\n==\nmarkup\n==\nextra",
			want: Sections{
				Settings: Settings{Global: []Entry{{Key: "a", Values: []string{"1"}}}},
				Code:     "code",
				Markup:   "markup",
			},
		},
		{
			name:    "separator not at line start",
			content: "<p>a == b</p>",
			want:    Sections{Markup: "<p>a == b</p>"},
		},
		{
			name:    "empty settings section",
			content: "==\n<?php\n$x = 1;\n?>\n==\nbody",
			want:    Sections{Code: "$x = 1;", Markup: "body"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.content)
			if diff := cmp.Diff(tt.want, got, ignoreErr); diff != "" {
				t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_InvalidSettings(t *testing.T) {
	s := Parse("this is not ini\n==\n<p>x</p>")

	assert.Equal(t, "this is not ini", s.Settings.Invalid)
	assert.Error(t, s.Settings.Err)
	assert.Equal(t, "<p>x</p>", s.Markup)
	assert.Equal(t, "this is not ini\n==\n<p>x</p>", Render(s, RenderOptions{}))
}

func TestSectionCount(t *testing.T) {
	assert.Equal(t, 1, SectionCount("body"))
	assert.Equal(t, 2, SectionCount("a = 1\n==\nbody"))
	assert.Equal(t, 4, SectionCount("a\n==\nb\n==\nc\n==\nd"))
}

func TestRender(t *testing.T) {
	settings := Settings{Global: []Entry{
		{Key: "title", Values: []string{"Home"}},
		{Key: "count", Values: []string{"5"}},
	}}

	tests := []struct {
		name string
		in   Sections
		opts RenderOptions
		want string
	}{
		{
			name: "markup only",
			in:   Sections{Markup: "<p>x</p>"},
			want: "<p>x</p>",
		},
		{
			name: "settings and markup",
			in:   Sections{Settings: settings, Markup: "<p>x</p>"},
			want: "title = \"Home\"\ncount = 5\n==\n<p>x</p>",
		},
		{
			name: "code is wrapped",
			in:   Sections{Settings: settings, Code: "$x = 1;", Markup: "<p>x</p>"},
			want: "title = \"Home\"\ncount = 5\n==\n<?php\n$x = 1;\n?>\n==\n<p>x</p>",
		},
		{
			name: "existing tags are not doubled",
			in:   Sections{Settings: settings, Code: "<?php $x = 1; ?>", Markup: "<p>x</p>"},
			want: "title = \"Home\"\ncount = 5\n==\n<?php\n$x = 1;\n?>\n==\n<p>x</p>",
		},
		{
			name: "bare code",
			in:   Sections{Settings: settings, Code: "$x = 1;", Markup: "<p>x</p>"},
			opts: RenderOptions{BareCode: true},
			want: "title = \"Home\"\ncount = 5\n==\n$x = 1;\n==\n<p>x</p>",
		},
		{
			name: "code without settings keeps an empty settings section",
			in:   Sections{Code: "$x = 1;", Markup: "<p>x</p>"},
			want: "==\n<?php\n$x = 1;\n?>\n==\n<p>x</p>",
		},
		{
			name: "empty",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.in, tt.opts))
		})
	}
}

func TestRender_RoundTrip(t *testing.T) {
	cases := []Sections{
		{Markup: "<p>only markup</p>"},
		{
			Settings: Settings{Global: []Entry{{Key: "url", Values: []string{"/blog/:slug"}}}},
			Markup:   "<h1>{{ post.title }}</h1>",
		},
		{
			Settings: Settings{
				Global: []Entry{
					{Key: "title", Values: []string{`Say "hi"`}},
					{Key: "hidden", Values: []string{"false"}},
				},
				Groups: []Group{{Name: "blogPosts", Entries: []Entry{
					{Key: "perPage", Values: []string{"10"}},
					{Key: "tags", Values: []string{"go", "ini"}, List: true},
				}}},
			},
			Code:   "function onStart()\n{\n    $this['x'] = 1;\n}",
			Markup: "<div>{{ x }}</div>",
		},
		{Code: "$x = 1;", Markup: "<p>x</p>"},
	}

	for _, want := range cases {
		got := Parse(Render(want, RenderOptions{}))
		if diff := cmp.Diff(want, got, ignoreErr); diff != "" {
			t.Errorf("Parse(Render()) mismatch (-want +got):\n%s", diff)
		}
	}
}

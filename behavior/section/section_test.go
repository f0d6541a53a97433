package section

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/rain/extension"
	"github.com/jpl-au/rain/halcyon"
)

const page = `title = "Home"
url = "/"
==
<?php
function onStart() {}
?>
==
<h1>Home</h1>`

// newHost attaches a section behavior to a fresh host.
func newHost(t *testing.T) *extension.Host {
	t.Helper()
	reg := extension.NewRegistry()
	reg.RegisterBehavior(extension.BehaviorClass{
		Name: Name,
		New:  func(_ *extension.Host) (any, error) { return New(), nil },
	})
	reg.RegisterClass(&extension.Class{Name: "Test.App", Implement: []string{Name}})
	h, err := reg.New("Test.App", nil)
	require.NoError(t, err)
	return h
}

func TestMethods(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	h := newHost(t)

	v, err := h.Call("parseSections", page)
	require.NoError(t, err)
	s := v.(halcyon.Sections)
	assert.Equal(t, "function onStart() {}", s.Code)
	assert.Equal(t, "<h1>Home</h1>", s.Markup)

	v, err = h.Call("renderSections", s)
	require.NoError(t, err)
	assert.Equal(t, page, v)

	v, err = h.Call("sectionOffsets", page)
	require.NoError(t, err)
	assert.Equal(t, halcyon.Offsets{Settings: 1, Code: 4, Markup: 8}, v)

	v, err = h.Call("sectionCount", "a\n==\nb\n==\nc\n==\nd")
	require.NoError(t, err)
	assert.Equal(t, 4, v)

	owner, ok := h.MethodOwner("parseSections")
	assert.True(t, ok)
	assert.Equal(t, extension.NormalizeName(Name), owner)
}

func TestMethods_BadArguments(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	h := newHost(t)

	_, err := h.Call("parseSections")
	assert.ErrorContains(t, err, "missing content")
	_, err = h.Call("parseSections", 42)
	assert.ErrorContains(t, err, "must be a string")
	_, err = h.Call("renderSections", 42)
	assert.ErrorContains(t, err, "unsupported argument")
	_, err = h.Call("renderSections", (*halcyon.Sections)(nil))
	assert.ErrorContains(t, err, "nil sections")
}

func TestBareCodeProperty(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	h := newHost(t)

	s := halcyon.Sections{Code: "echo 1;", Markup: "<p></p>"}
	v, err := h.Call("renderSections", s)
	require.NoError(t, err)
	assert.Equal(t, "==\n<?php\necho 1;\n?>\n==\n<p></p>", v)

	require.True(t, h.Set("bareCode", true), "property write reaches the behavior")
	v, err = h.Call("renderSections", s)
	require.NoError(t, err)
	assert.Equal(t, "==\necho 1;\n==\n<p></p>", v)
}

func TestDecodeSections(t *testing.T) {
	bare := `{"code":"echo 1;","markup":"<p></p>"}`
	s, err := decodeSections([]byte(bare))
	require.NoError(t, err)
	assert.Equal(t, "echo 1;", s.Code)

	envelope := `{"path":"-","sections":{"markup":"<p>x</p>"},"count":1}`
	s, err = decodeSections([]byte(envelope))
	require.NoError(t, err)
	assert.Equal(t, "<p>x</p>", s.Markup)

	_, err = decodeSections([]byte("title = x"))
	assert.Error(t, err)
}

func TestParseResult(t *testing.T) {
	r := parse("pages/home.htm", "this is not ini\n==\n<p></p>\n==\nx\n==\ny")
	assert.Equal(t, 4, r.Count)
	assert.NotEmpty(t, r.Invalid)

	text, err := pick(r.Sections, "markup")
	require.NoError(t, err)
	assert.Equal(t, "x", text)
	_, err = pick(r.Sections, "header")
	assert.Error(t, err)
}

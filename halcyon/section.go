package halcyon

import (
	"regexp"
	"strings"
)

// Separator divides template sections.
const Separator = "=="

// separatorRe matches a line starting with two or more "=" and the
// whitespace after it, including the line break.
var separatorRe = regexp.MustCompile(`(?m)^={2,}\s*`)

// Sections is a parsed compound template.
type Sections struct {
	Settings Settings `json:"settings"`
	Code     string   `json:"code"`
	Markup   string   `json:"markup"`
}

// IsZero reports whether all sections are empty.
func (s Sections) IsZero() bool {
	return s.Settings.IsZero() && s.Code == "" && s.Markup == ""
}

// RenderOptions controls Render.
type RenderOptions struct {
	// BareCode writes the code section as is, without wrapping it in
	// <?php ... ?> tags.
	BareCode bool
}

// split divides content at separator lines and trims every section.
func split(content string) []string {
	parts := separatorRe.Split(content, -1)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// Parse splits content into sections.
//
// One section is markup only, two are settings and markup, three are
// settings, code and markup. Sections after the third are dropped.
func Parse(content string) Sections {
	var s Sections
	parts := split(content)
	switch {
	case len(parts) >= 3:
		s.Settings = ParseSettings(parts[0])
		s.Code = stripTags(parts[1])
		s.Markup = parts[2]
	case len(parts) == 2:
		s.Settings = ParseSettings(parts[0])
		s.Markup = parts[1]
	default:
		s.Markup = parts[0]
	}
	return s
}

// SectionCount returns how many sections content splits into, including
// any that Parse drops.
func SectionCount(content string) int {
	return len(separatorRe.Split(content, -1))
}

// stripTags removes an opening <?php or <? tag and a closing ?> tag.
func stripTags(code string) string {
	code = strings.TrimSpace(code)
	if rest, ok := strings.CutPrefix(code, "<?php"); ok {
		code = rest
	} else if rest, ok := strings.CutPrefix(code, "<?"); ok {
		code = rest
	}
	code = strings.TrimSuffix(strings.TrimSpace(code), "?>")
	return strings.TrimSpace(code)
}

// Render assembles sections into template content, the inverse of Parse.
//
// Empty settings and code are omitted, except that an empty settings
// section is kept when there is code so that the result parses back into
// the same three sections.
func Render(s Sections, opts RenderOptions) string {
	var parts []string

	settings := s.Settings.Render()
	code := strings.TrimSpace(s.Code)
	if settings != "" || code != "" {
		parts = append(parts, settings)
	}
	if code != "" {
		if !opts.BareCode {
			code = "<?php\n" + stripTags(code) + "\n?>"
		}
		parts = append(parts, code)
	}
	parts = append(parts, strings.TrimSpace(s.Markup))

	return strings.TrimSpace(strings.Join(parts, "\n"+Separator+"\n"))
}

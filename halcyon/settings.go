package halcyon

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/ini.v1"
)

// ErrInvalidSetting is returned by Settings.Set for keys or values that
// cannot be written as a single INI line.
var ErrInvalidSetting = errors.New("invalid setting")

// Entry is one settings key. List keys are written "key[] = value", once
// per value.
type Entry struct {
	Key    string   `json:"key"`
	Values []string `json:"values"`
	List   bool     `json:"list,omitempty"`
}

// Value returns the first value, or "" for an empty list.
func (e Entry) Value() string {
	if len(e.Values) == 0 {
		return ""
	}
	return e.Values[0]
}

// Group is a named INI section.
type Group struct {
	Name    string  `json:"name"`
	Entries []Entry `json:"entries"`
}

// Settings is the INI section of a template, in source order.
type Settings struct {
	Global []Entry `json:"global,omitempty"`
	Groups []Group `json:"groups,omitempty"`

	// Invalid holds the raw section when it could not be parsed. It is
	// rendered back unchanged.
	Invalid string `json:"invalid,omitempty"`
	Err     error  `json:"-"`
}

// IsZero reports whether there are no settings.
func (s Settings) IsZero() bool {
	return len(s.Global) == 0 && len(s.Groups) == 0 && s.Invalid == ""
}

var iniOptions = ini.LoadOptions{
	AllowShadows:               true,
	AllowDuplicateShadowValues: true,
	UnescapeValueDoubleQuotes:  true,
	SpaceBeforeInlineComment:   true,
}

// ParseSettings parses an INI settings section. Input that is not valid INI
// is kept in Settings.Invalid with the parse error in Settings.Err.
func ParseSettings(src string) Settings {
	src = strings.TrimSpace(src)
	if src == "" {
		return Settings{}
	}

	f, err := ini.LoadSources(iniOptions, []byte(src))
	if err != nil {
		return Settings{Invalid: src, Err: err}
	}

	var s Settings
	for _, sec := range f.Sections() {
		entries := entriesOf(sec)
		if sec.Name() == ini.DefaultSection {
			s.Global = entries
			continue
		}
		s.Groups = append(s.Groups, Group{Name: sec.Name(), Entries: entries})
	}
	return s
}

func entriesOf(sec *ini.Section) []Entry {
	keys := sec.Keys()
	if len(keys) == 0 {
		return nil
	}
	out := make([]Entry, 0, len(keys))
	for _, k := range keys {
		if name, ok := strings.CutSuffix(k.Name(), "[]"); ok {
			out = append(out, Entry{Key: name, Values: k.ValueWithShadows(), List: true})
			continue
		}
		// A repeated key takes its last value.
		v := k.Value()
		if vals := k.ValueWithShadows(); len(vals) > 0 {
			v = vals[len(vals)-1]
		}
		out = append(out, Entry{Key: k.Name(), Values: []string{v}})
	}
	return out
}

// Get returns the value of a global key.
func (s Settings) Get(key string) (string, bool) {
	for _, e := range s.Global {
		if e.Key == key {
			return e.Value(), true
		}
	}
	return "", false
}

// Set assigns a global key, appending it when absent. Keys must be non-empty
// and neither may contain a line break.
func (s *Settings) Set(key, value string) error {
	if strings.TrimSpace(key) == "" || strings.ContainsAny(key, "\r\n=[]") {
		return fmt.Errorf("%w: key %q", ErrInvalidSetting, key)
	}
	if strings.ContainsAny(value, "\r\n") {
		return fmt.Errorf("%w: value of %s spans lines", ErrInvalidSetting, key)
	}
	for i := range s.Global {
		if s.Global[i].Key == key {
			s.Global[i] = Entry{Key: key, Values: []string{value}}
			return nil
		}
	}
	s.Global = append(s.Global, Entry{Key: key, Values: []string{value}})
	return nil
}

// Map returns the settings as nested maps: list keys map to []string,
// groups to map[string]any.
func (s Settings) Map() map[string]any {
	out := make(map[string]any, len(s.Global)+len(s.Groups))
	put := func(m map[string]any, entries []Entry) {
		for _, e := range entries {
			if e.List {
				m[e.Key] = append([]string(nil), e.Values...)
			} else {
				m[e.Key] = e.Value()
			}
		}
	}
	put(out, s.Global)
	for _, g := range s.Groups {
		m := make(map[string]any, len(g.Entries))
		put(m, g.Entries)
		out[g.Name] = m
	}
	return out
}

// Render writes the settings as INI. Numbers and booleans are written bare,
// every other value is double quoted.
func (s Settings) Render() string {
	if s.Invalid != "" {
		return s.Invalid
	}

	var b strings.Builder
	writeEntries(&b, s.Global)
	for _, g := range s.Groups {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString("[" + g.Name + "]\n")
		writeEntries(&b, g.Entries)
	}
	return strings.TrimSpace(b.String())
}

func writeEntries(b *strings.Builder, entries []Entry) {
	for _, e := range entries {
		if e.List {
			for _, v := range e.Values {
				b.WriteString(e.Key + "[] = " + iniValue(v) + "\n")
			}
			continue
		}
		b.WriteString(e.Key + " = " + iniValue(e.Value()) + "\n")
	}
}

var bareValue = regexp.MustCompile(`^(-?[0-9]+(\.[0-9]+)?|true|false)$`)

// lineBreaks folds line breaks into spaces so that a value never starts a
// new line, which could otherwise be read as a section separator.
var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

func iniValue(v string) string {
	if bareValue.MatchString(v) {
		return v
	}
	v = lineBreaks.Replace(v)
	return `"` + strings.ReplaceAll(v, `"`, `\"`) + `"`
}

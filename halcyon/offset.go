package halcyon

import "strings"

// Offsets holds the 1-based line on which each section's content starts.
// A section the template does not have is 0.
type Offsets struct {
	Settings int `json:"settings"`
	Code     int `json:"code"`
	Markup   int `json:"markup"`
}

// ParseOffset locates the sections Parse would return. Lines are counted
// after normalising CRLF line endings; leading blank lines of a section are
// skipped.
func ParseOffset(content string) Offsets {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	matches := separatorRe.FindAllStringIndex(content, -1)

	// starts[i] is the byte offset where section i begins.
	starts := make([]int, 0, len(matches)+1)
	starts = append(starts, 0)
	for _, m := range matches {
		starts = append(starts, m[1])
	}

	line := func(i int) int {
		end := len(content)
		if i < len(matches) {
			end = matches[i][0]
		}
		pos := starts[i]
		body := content[pos:end]
		if trimmed := strings.TrimLeft(body, " \t\r\n"); trimmed != "" {
			pos += len(body) - len(trimmed)
		}
		return strings.Count(content[:pos], "\n") + 1
	}

	var o Offsets
	switch {
	case len(starts) >= 3:
		o.Settings, o.Code, o.Markup = line(0), line(1), line(2)
	case len(starts) == 2:
		o.Settings, o.Markup = line(0), line(1)
	default:
		o.Markup = 1
	}
	return o
}

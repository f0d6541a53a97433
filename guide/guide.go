// Package guide embeds the pages shown by "rain guide" and the rain_guide
// MCP tool.
package guide

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"runtime"
	"sort"
	"strings"
)

//go:embed *.md
var files embed.FS

// ErrUnknownTopic is returned by Get for a page that does not exist.
var ErrUnknownTopic = errors.New("unknown guide topic")

// Get returns a guide page by name. An empty name returns the index page
// and "install" resolves to the page for the running OS.
func Get(name string) (string, error) {
	name = strings.TrimSuffix(strings.TrimSpace(name), ".md")
	switch name {
	case "":
		name = "guide"
	case "install":
		name = "install-" + runtime.GOOS
	}
	data, err := files.ReadFile(name + ".md")
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrUnknownTopic, name)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// List returns the topics Get accepts, sorted. The per-OS install pages are
// listed once as "install".
func List() ([]string, error) {
	entries, err := files.ReadDir(".")
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	var names []string
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), ".md")
		if strings.HasPrefix(name, "install-") {
			name = "install"
		}
		if name == "guide" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Package format renders template listings for CLI display.
//
// Commands collect their rows and hand them here so that column alignment
// and tree drawing live in one place.
package format

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
)

// Row is one listed template.
type Row struct {
	Path   string
	Size   int64
	MTime  time.Time
	Source string
}

// HumanSize formats a byte count as human-readable (e.g., "1.2K", "3.4M").
func HumanSize(bytes int64) string {
	const (
		_        = iota
		KB int64 = 1 << (10 * iota)
		MB
		GB
	)
	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.1fG", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.1fM", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1fK", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%dB", bytes)
	}
}

// Paths prints just template paths, one per line.
func Paths(w io.Writer, rows []Row) error {
	for _, r := range rows {
		if _, err := fmt.Fprintln(w, r.Path); err != nil {
			return err
		}
	}
	return nil
}

// Long prints rows with a header. Column order is SIZE, UPDATED, SOURCE,
// PATH so the fixed-width columns stay aligned.
func Long(w io.Writer, rows []Row) error {
	if len(rows) == 0 {
		return nil
	}

	src := 6 // "SOURCE"
	for _, r := range rows {
		if len(r.Source) > src {
			src = len(r.Source)
		}
	}

	fmt.Fprintf(w, "%6s  %-16s  %-*s  %s\n", "SIZE", "UPDATED", src, "SOURCE", "PATH")
	for _, r := range rows {
		updated := "-"
		if !r.MTime.IsZero() {
			updated = r.MTime.Local().Format("2006-01-02 15:04")
		}
		source := r.Source
		if source == "" {
			source = "-"
		}
		if _, err := fmt.Fprintf(w, "%6s  %-16s  %-*s  %s\n", HumanSize(r.Size), updated, src, source, r.Path); err != nil {
			return err
		}
	}
	return nil
}

// Tree prints rows as a directory tree.
func Tree(w io.Writer, rows []Row) error {
	if len(rows) == 0 {
		return nil
	}

	type node struct {
		children map[string]*node
		leaf     bool
	}

	root := &node{children: make(map[string]*node)}
	for _, r := range rows {
		parts := strings.Split(r.Path, "/")
		current := root
		for i, part := range parts {
			if current.children[part] == nil {
				current.children[part] = &node{children: make(map[string]*node)}
			}
			current = current.children[part]
			if i == len(parts)-1 {
				current.leaf = true
			}
		}
	}

	var printNode func(n *node, prefix string)
	printNode = func(n *node, prefix string) {
		names := make([]string, 0, len(n.children))
		for name := range n.children {
			names = append(names, name)
		}
		sort.Strings(names)

		for i, name := range names {
			child := n.children[name]
			last := i == len(names)-1

			connector := "├── "
			if last {
				connector = "└── "
			}
			suffix := ""
			if !child.leaf && len(child.children) > 0 {
				suffix = "/"
			}
			fmt.Fprintf(w, "%s%s%s%s\n", prefix, connector, name, suffix)

			pfx := prefix
			if last {
				pfx += "    "
			} else {
				pfx += "│   "
			}
			if len(child.children) > 0 {
				printNode(child, pfx)
			}
		}
	}

	printNode(root, "")
	return nil
}

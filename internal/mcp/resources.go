// resources.go implements the rain://templates/{path} resource, giving
// clients read-only template content without a tool call.

package mcp

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

var (
	// ErrInvalidURI indicates a malformed resource URI.
	ErrInvalidURI = errors.New("invalid URI")
	// ErrEmptyPath indicates a missing template path in a resource URI.
	ErrEmptyPath = errors.New("empty template path")
)

const templatePrefix = "rain://templates/"

func (h *handlers) readTemplate(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	p, err := parseTemplateURI(req.Params.URI)
	if err != nil {
		return nil, err
	}
	t, err := h.svc().Get(ctx, p)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: mimeType(t.Ext),
			Text:     t.Content,
		},
	}, nil
}

// parseTemplateURI extracts the template path from rain://templates/{path}.
func parseTemplateURI(uri string) (string, error) {
	if !strings.HasPrefix(uri, templatePrefix) {
		return "", fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}
	p := strings.Trim(strings.TrimPrefix(uri, templatePrefix), "/")
	if p == "" {
		return "", ErrEmptyPath
	}
	return path.Clean(p), nil
}

func mimeType(ext string) string {
	switch ext {
	case "md":
		return "text/markdown"
	case "htm", "html":
		return "text/html"
	}
	return "text/plain"
}

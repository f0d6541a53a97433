package diff

import (
	"bytes"
	"strings"
	"testing"
)

func TestCompute(t *testing.T) {
	oldContent := "title = \"Home\"\n==\n<h1>Home</h1>\n"
	newContent := "title = \"Start\"\n==\n<h1>Home</h1>\n"

	r := Compute(oldContent, newContent, "db:pages/home.htm", "file:pages/home.htm")
	if !r.Changed() {
		t.Fatalf("Compute() reported no change:\n%s", r.Diff)
	}
	if !strings.Contains(r.Diff, "- title = \"Home\"") {
		t.Errorf("diff missing removed line:\n%s", r.Diff)
	}
	if !strings.Contains(r.Diff, "+ title = \"Start\"") {
		t.Errorf("diff missing added line:\n%s", r.Diff)
	}
	if !strings.Contains(r.Diff, "  <h1>Home</h1>") {
		t.Errorf("diff missing context line:\n%s", r.Diff)
	}

	header := r.Format(false)
	if !strings.HasPrefix(header, "--- db:pages/home.htm\n+++ file:pages/home.htm\n") {
		t.Errorf("Format() header = %q", header)
	}
}

func TestCompute_Unchanged(t *testing.T) {
	r := Compute("same\n", "same\n", "a", "b")
	if r.Changed() {
		t.Errorf("Changed() = true for identical input, diff:\n%s", r.Diff)
	}
}

func TestCompute_CollapsesLongContext(t *testing.T) {
	var lines []string
	for i := 0; i < 20; i++ {
		lines = append(lines, "line")
	}
	body := strings.Join(lines, "\n")

	r := Compute("a\n"+body+"\nz\n", "b\n"+body+"\nz\n", "old", "new")
	if !strings.Contains(r.Diff, "  ...\n") {
		t.Errorf("long equal run not collapsed:\n%s", r.Diff)
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	Write(&buf, "a\n", "b\n", "old", "new", true)
	out := buf.String()
	if !strings.Contains(out, "\033[31m- a\033[0m") {
		t.Errorf("missing coloured deletion: %q", out)
	}
	if !strings.Contains(out, "\033[32m+ b\033[0m") {
		t.Errorf("missing coloured insertion: %q", out)
	}
}

func TestParseLayers(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		a, b    string
		wantErr string
	}{
		{name: "valid", input: "db:file", a: "db", b: "file"},
		{name: "spaces", input: " db : file ", a: "db", b: "file"},
		{name: "no colon", input: "db", wantErr: "expected a:b"},
		{name: "too many", input: "a:b:c", wantErr: "expected a:b"},
		{name: "missing side", input: "db:", wantErr: "both layers required"},
		{name: "same layer", input: "db:db", wantErr: "must differ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b, err := ParseLayers(tt.input)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("ParseLayers(%q) error = %v, want containing %q", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLayers(%q) = error %v", tt.input, err)
			}
			if a != tt.a || b != tt.b {
				t.Errorf("ParseLayers(%q) = (%q, %q), want (%q, %q)", tt.input, a, b, tt.a, tt.b)
			}
		})
	}
}

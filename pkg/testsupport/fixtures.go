package testsupport

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/dom"
)

//go:embed testdata/*.html
var fixtures embed.FS

// Fixture names bundled with the package.
const (
	RegistrationPage = "registration.html"
	EventPage        = "event.html"
)

// LoadDocument parses a bundled fixture. Testing helpers fail the test on error
// to keep contract tests concise.
func LoadDocument(t *testing.T, name string) *dom.Document {
	t.Helper()

	data, err := fixtures.ReadFile("testdata/" + name)
	if err != nil {
		t.Fatalf("load fixture %s: %v", name, err)
	}
	doc, err := dom.Parse(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("parse fixture %s: %v", name, err)
	}
	return doc
}

// LoadDocumentFromPath parses an HTML file without requiring testing.T.
func LoadDocumentFromPath(path string) (*dom.Document, error) {
	if path == "" {
		return nil, errors.New("testsupport: document path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read document: %w", err)
	}
	doc, err := dom.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("testsupport: parse document: %w", err)
	}
	return doc, nil
}

// Form returns the form with the given id.
func Form(t *testing.T, doc *dom.Document, id string) dom.Element {
	t.Helper()

	form, ok := doc.Query(dom.All(dom.Tag("form"), func(e dom.Element) bool {
		return e.AttrOr("id", "") == id
	}))
	if !ok {
		t.Fatalf("form %q not found", id)
	}
	return form
}

// Field returns the first control named name inside form.
func Field(t *testing.T, form dom.Element, name string) dom.Element {
	t.Helper()

	field, ok := form.Query(dom.Name(name))
	if !ok {
		t.Fatalf("field %q not found", name)
	}
	return field
}

// ErrorTexts returns the text of every error node under root, in document
// order.
func ErrorTexts(root dom.Element) []string {
	var out []string
	for _, node := range root.QueryAll(dom.Class("form-error")) {
		out = append(out, node.Text())
	}
	return out
}

// AssertGolden compares got with the golden file at path, line by line and
// ignoring surrounding whitespace. With UPDATE_GOLDENS set the file is
// rewritten instead.
func AssertGolden(t *testing.T, path string, got []byte) {
	t.Helper()

	path = filepath.Clean(path)
	if os.Getenv("UPDATE_GOLDENS") != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir golden dir: %v", err)
		}
		if err := os.WriteFile(path, append(bytes.TrimSpace(got), '\n'), 0o644); err != nil {
			t.Fatalf("write golden: %v", err)
		}
		return
	}

	want, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden %s: %v", path, err)
	}
	if diff := cmp.Diff(goldenLines(want), goldenLines(got)); diff != "" {
		t.Fatalf("golden %s mismatch (-want +got):\n%s", path, diff)
	}
}

func goldenLines(data []byte) []string {
	return strings.Split(strings.ReplaceAll(string(bytes.TrimSpace(data)), "\r\n", "\n"), "\n")
}

package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// File describes a file selected on an <input type="file"> control. Type is
// the declared content type, as a browser derives it from the file name.
type File struct {
	Name string
	Type string
	Size int64
}

// ScrollOptions mirrors the options accepted by Element.scrollIntoView.
type ScrollOptions struct {
	Behavior string
	Block    string
}

// Scroll records a ScrollIntoView request.
type Scroll struct {
	Target  Element
	Options ScrollOptions
}

// Document is an HTML tree plus the live state formkit components read and
// mutate.
type Document struct {
	root      *html.Node
	listeners map[*html.Node][]*listener
	files     map[*html.Node][]File
	active    *html.Node
	scrolls   []Scroll
}

// Parse reads an HTML document from r.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("dom: parse: %w", err)
	}
	return newDocument(root), nil
}

// ParseString parses an HTML document held in memory.
func ParseString(markup string) (*Document, error) {
	return Parse(strings.NewReader(markup))
}

// MustParseString is like ParseString but panics on error. Intended for tests
// and fixtures.
func MustParseString(markup string) *Document {
	doc, err := ParseString(markup)
	if err != nil {
		panic(err)
	}
	return doc
}

func newDocument(root *html.Node) *Document {
	return &Document{
		root:      root,
		listeners: make(map[*html.Node][]*listener),
		files:     make(map[*html.Node][]File),
	}
}

func (d *Document) wrap(n *html.Node) Element {
	if n == nil || n.Type != html.ElementNode {
		return Element{}
	}
	return Element{doc: d, node: n}
}

// QueryAll returns every element matching m, in document order.
func (d *Document) QueryAll(m Matcher) []Element {
	if d == nil || d.root == nil {
		return nil
	}
	return collect(d, d.root, m)
}

// Query returns the first element matching m.
func (d *Document) Query(m Matcher) (Element, bool) {
	if d == nil || d.root == nil {
		return Element{}, false
	}
	return first(d, d.root, m)
}

// Forms returns every <form> element in document order.
func (d *Document) Forms() []Element {
	return d.QueryAll(Tag("form"))
}

// Body returns the <body> element created by the parser.
func (d *Document) Body() (Element, bool) {
	return d.Query(Tag("body"))
}

// CreateElement returns a detached element owned by the document.
func (d *Document) CreateElement(tag string) Element {
	tag = strings.ToLower(strings.TrimSpace(tag))
	node := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	return Element{doc: d, node: node}
}

// SetFiles replaces the files selected on a file input.
func (d *Document) SetFiles(el Element, files ...File) {
	if d == nil || el.node == nil {
		return
	}
	if len(files) == 0 {
		delete(d.files, el.node)
		return
	}
	d.files[el.node] = append([]File(nil), files...)
}

// ActiveElement reports the element that last received focus.
func (d *Document) ActiveElement() (Element, bool) {
	if d == nil || d.active == nil {
		return Element{}, false
	}
	return d.wrap(d.active), true
}

// Scrolls returns the ScrollIntoView requests recorded so far.
func (d *Document) Scrolls() []Scroll {
	if d == nil || len(d.scrolls) == 0 {
		return nil
	}
	return append([]Scroll(nil), d.scrolls...)
}

// Render writes the current tree as HTML.
func (d *Document) Render(w io.Writer) error {
	if d == nil || d.root == nil {
		return nil
	}
	return html.Render(w, d.root)
}

// String renders the document, returning an empty string on failure.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

func collect(d *Document, parent *html.Node, m Matcher) []Element {
	var out []Element
	walk(parent, func(n *html.Node) bool {
		el := d.wrap(n)
		if m == nil || m(el) {
			out = append(out, el)
		}
		return true
	})
	return out
}

func first(d *Document, parent *html.Node, m Matcher) (Element, bool) {
	var found Element
	walk(parent, func(n *html.Node) bool {
		el := d.wrap(n)
		if m == nil || m(el) {
			found = el
			return false
		}
		return true
	})
	return found, found.node != nil
}

// walk visits the element descendants of parent in document order until fn
// returns false.
func walk(parent *html.Node, fn func(*html.Node) bool) bool {
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			if !fn(c) {
				return false
			}
		}
		if !walk(c, fn) {
			return false
		}
	}
	return true
}

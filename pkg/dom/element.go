package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Element is a comparable handle to an element node. The zero value refers to
// no element; handles to the same node compare equal, so Element can be used
// as a map key.
type Element struct {
	doc  *Document
	node *html.Node
}

// IsZero reports whether the handle refers to no element.
func (e Element) IsZero() bool {
	return e.node == nil
}

// Document returns the owning document.
func (e Element) Document() *Document {
	return e.doc
}

// Tag returns the lower-case tag name.
func (e Element) Tag() string {
	if e.node == nil {
		return ""
	}
	return e.node.Data
}

// Attr returns the value of the named attribute.
func (e Element) Attr(name string) (string, bool) {
	if e.node == nil {
		return "", false
	}
	name = strings.ToLower(name)
	for _, attr := range e.node.Attr {
		if attr.Namespace == "" && attr.Key == name {
			return attr.Val, true
		}
	}
	return "", false
}

// AttrOr returns the named attribute or fallback when absent.
func (e Element) AttrOr(name, fallback string) string {
	if val, ok := e.Attr(name); ok {
		return val
	}
	return fallback
}

// HasAttr reports whether the named attribute is present.
func (e Element) HasAttr(name string) bool {
	_, ok := e.Attr(name)
	return ok
}

// SetAttr adds or replaces an attribute.
func (e Element) SetAttr(name, value string) {
	if e.node == nil {
		return
	}
	name = strings.ToLower(name)
	for i := range e.node.Attr {
		if e.node.Attr[i].Namespace == "" && e.node.Attr[i].Key == name {
			e.node.Attr[i].Val = value
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: name, Val: value})
}

// RemoveAttr deletes an attribute if present.
func (e Element) RemoveAttr(name string) {
	if e.node == nil {
		return
	}
	name = strings.ToLower(name)
	kept := e.node.Attr[:0]
	for _, attr := range e.node.Attr {
		if attr.Namespace == "" && attr.Key == name {
			continue
		}
		kept = append(kept, attr)
	}
	e.node.Attr = kept
}

// Name returns the name attribute.
func (e Element) Name() string {
	return e.AttrOr("name", "")
}

// Type returns the lower-cased type attribute. Inputs without one are "text".
func (e Element) Type() string {
	typ := strings.ToLower(strings.TrimSpace(e.AttrOr("type", "")))
	if typ == "" && e.Tag() == "input" {
		return "text"
	}
	return typ
}

// Placeholder returns the placeholder attribute.
func (e Element) Placeholder() string {
	return e.AttrOr("placeholder", "")
}

// SetPlaceholder sets the placeholder attribute.
func (e Element) SetPlaceholder(value string) {
	e.SetAttr("placeholder", value)
}

// Value returns the current control value: the value attribute for inputs,
// the text of a textarea and the selected option of a select. Checkboxes and
// radios without a value attribute report "on".
func (e Element) Value() string {
	switch e.Tag() {
	case "textarea":
		return e.Text()
	case "select":
		opt, ok := e.selectedOption()
		if !ok {
			return ""
		}
		return optionValue(opt)
	default:
		if val, ok := e.Attr("value"); ok {
			return val
		}
		if e.Tag() == "input" && (e.Type() == "checkbox" || e.Type() == "radio") {
			return "on"
		}
		return ""
	}
}

// SetValue overwrites the control value.
func (e Element) SetValue(value string) {
	switch e.Tag() {
	case "textarea":
		e.SetText(value)
	case "select":
		for _, opt := range e.QueryAll(Tag("option")) {
			if optionValue(opt) == value {
				opt.SetAttr("selected", "")
			} else {
				opt.RemoveAttr("selected")
			}
		}
	default:
		e.SetAttr("value", value)
	}
}

func (e Element) selectedOption() (Element, bool) {
	options := e.QueryAll(Tag("option"))
	if len(options) == 0 {
		return Element{}, false
	}
	for _, opt := range options {
		if opt.HasAttr("selected") {
			return opt, true
		}
	}
	return options[0], true
}

func optionValue(opt Element) string {
	if val, ok := opt.Attr("value"); ok {
		return val
	}
	return strings.Join(strings.Fields(opt.Text()), " ")
}

// Classes returns the class list.
func (e Element) Classes() []string {
	return strings.Fields(e.AttrOr("class", ""))
}

// HasClass reports whether the class list contains class.
func (e Element) HasClass(class string) bool {
	for _, c := range e.Classes() {
		if c == class {
			return true
		}
	}
	return false
}

// AddClass appends class to the class list unless already present.
func (e Element) AddClass(class string) {
	class = strings.TrimSpace(class)
	if class == "" || e.node == nil || e.HasClass(class) {
		return
	}
	e.SetAttr("class", strings.Join(append(e.Classes(), class), " "))
}

// RemoveClass drops class from the class list. The attribute is removed once
// the list is empty.
func (e Element) RemoveClass(class string) {
	if e.node == nil || !e.HasClass(class) {
		return
	}
	var kept []string
	for _, c := range e.Classes() {
		if c != class {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		e.RemoveAttr("class")
		return
	}
	e.SetAttr("class", strings.Join(kept, " "))
}

// Parent returns the parent element.
func (e Element) Parent() (Element, bool) {
	if e.node == nil || e.node.Parent == nil || e.node.Parent.Type != html.ElementNode {
		return Element{}, false
	}
	return Element{doc: e.doc, node: e.node.Parent}, true
}

// AppendChild moves child to the end of e's children.
func (e Element) AppendChild(child Element) {
	if e.node == nil || child.node == nil {
		return
	}
	detach(child.node)
	e.node.AppendChild(child.node)
}

// PrependChild moves child to the start of e's children.
func (e Element) PrependChild(child Element) {
	if e.node == nil || child.node == nil {
		return
	}
	detach(child.node)
	if e.node.FirstChild == nil {
		e.node.AppendChild(child.node)
		return
	}
	e.node.InsertBefore(child.node, e.node.FirstChild)
}

// Remove detaches the element from the tree and drops its listeners.
func (e Element) Remove() {
	if e.node == nil {
		return
	}
	detach(e.node)
	if e.doc != nil {
		delete(e.doc.listeners, e.node)
	}
}

func detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// Text returns the concatenated text of all descendant text nodes.
func (e Element) Text() string {
	if e.node == nil {
		return ""
	}
	var b strings.Builder
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				b.WriteString(c.Data)
				continue
			}
			visit(c)
		}
	}
	visit(e.node)
	return b.String()
}

// SetText replaces every child with a single text node.
func (e Element) SetText(text string) {
	if e.node == nil {
		return
	}
	for c := e.node.FirstChild; c != nil; {
		next := c.NextSibling
		e.node.RemoveChild(c)
		c = next
	}
	if text != "" {
		e.node.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
}

// QueryAll returns the descendants matching m, in document order.
func (e Element) QueryAll(m Matcher) []Element {
	if e.node == nil {
		return nil
	}
	return collect(e.doc, e.node, m)
}

// Query returns the first descendant matching m.
func (e Element) Query(m Matcher) (Element, bool) {
	if e.node == nil {
		return Element{}, false
	}
	return first(e.doc, e.node, m)
}

// Files returns the files selected on a file input.
func (e Element) Files() []File {
	if e.node == nil || e.doc == nil {
		return nil
	}
	files := e.doc.files[e.node]
	if len(files) == 0 {
		return nil
	}
	return append([]File(nil), files...)
}

// Focus makes e the document's active element.
func (e Element) Focus() {
	if e.node == nil || e.doc == nil {
		return
	}
	e.doc.active = e.node
}

// ScrollIntoView records a scroll request for e.
func (e Element) ScrollIntoView(opts ScrollOptions) {
	if e.node == nil || e.doc == nil {
		return
	}
	e.doc.scrolls = append(e.doc.scrolls, Scroll{Target: e, Options: opts})
}

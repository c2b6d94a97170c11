package dom

import (
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
)

// Style returns the inline value of a CSS property.
func (e Element) Style(property string) string {
	property = strings.ToLower(strings.TrimSpace(property))
	for _, decl := range e.declarations() {
		if decl.Property == property {
			return decl.Value
		}
	}
	return ""
}

// SetStyle sets an inline CSS property, keeping the other declarations in
// place. An empty value removes the property.
func (e Element) SetStyle(property, value string) {
	if e.node == nil {
		return
	}
	property = strings.ToLower(strings.TrimSpace(property))
	value = strings.TrimSpace(value)
	if property == "" {
		return
	}

	decls := e.declarations()
	out := make([]*css.Declaration, 0, len(decls)+1)
	replaced := false
	for _, decl := range decls {
		if decl.Property != property {
			out = append(out, decl)
			continue
		}
		if value != "" && !replaced {
			out = append(out, &css.Declaration{Property: property, Value: value})
		}
		replaced = true
	}
	if !replaced && value != "" {
		out = append(out, &css.Declaration{Property: property, Value: value})
	}

	if len(out) == 0 {
		e.RemoveAttr("style")
		return
	}
	e.SetAttr("style", formatDeclarations(out))
}

// declarations parses the style attribute. Unparsable styles are treated as
// empty so a broken attribute never blocks a component.
func (e Element) declarations() []*css.Declaration {
	raw := strings.TrimSpace(e.AttrOr("style", ""))
	if raw == "" {
		return nil
	}
	decls, err := parser.ParseDeclarations(raw)
	if err != nil {
		return nil
	}
	for _, decl := range decls {
		decl.Property = strings.ToLower(decl.Property)
	}
	return decls
}

func formatDeclarations(decls []*css.Declaration) string {
	parts := make([]string, 0, len(decls))
	for _, decl := range decls {
		part := decl.Property + ": " + decl.Value
		if decl.Important {
			part += " !important"
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, "; ")
}

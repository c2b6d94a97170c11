package dom

import "strings"

// Matcher selects elements. Matchers compose the way CSS selector lists do:
// All for compound selectors, Any for comma-separated lists.
type Matcher func(Element) bool

// Tag matches elements by tag name.
func Tag(name string) Matcher {
	name = strings.ToLower(name)
	return func(e Element) bool {
		return e.Tag() == name
	}
}

// Type matches an explicit type attribute, case-insensitively.
func Type(typ string) Matcher {
	return func(e Element) bool {
		val, ok := e.Attr("type")
		return ok && strings.EqualFold(strings.TrimSpace(val), typ)
	}
}

// Input matches <input> elements of the given type.
func Input(typ string) Matcher {
	return All(Tag("input"), Type(typ))
}

// Name matches the name attribute exactly.
func Name(name string) Matcher {
	return func(e Element) bool {
		val, ok := e.Attr("name")
		return ok && val == name
	}
}

// NameContains matches names holding substr.
func NameContains(substr string) Matcher {
	return func(e Element) bool {
		return strings.Contains(e.Name(), substr)
	}
}

// Class matches elements carrying class.
func Class(class string) Matcher {
	return func(e Element) bool {
		return e.HasClass(class)
	}
}

// HasAttr matches elements declaring the attribute, whatever its value.
func HasAttr(name string) Matcher {
	return func(e Element) bool {
		return e.HasAttr(name)
	}
}

// AttrContains matches attributes whose value contains substr ([attr*=substr]).
func AttrContains(name, substr string) Matcher {
	return func(e Element) bool {
		val, ok := e.Attr(name)
		return ok && substr != "" && strings.Contains(val, substr)
	}
}

// Any matches when at least one matcher does.
func Any(matchers ...Matcher) Matcher {
	return func(e Element) bool {
		for _, m := range matchers {
			if m != nil && m(e) {
				return true
			}
		}
		return false
	}
}

// All matches when every matcher does.
func All(matchers ...Matcher) Matcher {
	return func(e Element) bool {
		for _, m := range matchers {
			if m != nil && !m(e) {
				return false
			}
		}
		return true
	}
}

package render

// voidElements have no closing tag.
var voidElements = set("area", "base", "br", "col", "embed", "hr", "img",
	"input", "link", "meta", "param", "source", "track", "wbr")

// inlineElements keep their content on one line in pretty output.
var inlineElements = set("a", "abbr", "b", "button", "cite", "code", "em",
	"h1", "h2", "h3", "i", "label", "p", "small", "span", "strong", "sub", "sup")

// booleanAttrs are printed as a bare name when true and omitted when false.
var booleanAttrs = set("autofocus", "checked", "disabled", "hidden",
	"multiple", "readonly", "required", "selected")

func set(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

package composer

import (
	"strings"

	"golang.org/x/net/html"
)

// inline tags the editor is allowed to keep; everything else is stripped
// down to its text content.
var keepInline = map[string]string{
	"b":      "b",
	"strong": "b",
	"i":      "i",
	"em":     "i",
	"u":      "u",
}

// Sanitize reduces posted contentEditable markup to plain text plus b/i/u
// runs and line breaks. The parser is tolerant, so arbitrary browser output
// (nested divs, spans, style attributes) degrades to its text.
func Sanitize(markup string) (string, error) {
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return "", err
	}
	var out strings.Builder
	walk(root, &out)
	return strings.TrimSpace(out.String()), nil
}

func walk(n *html.Node, out *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		out.WriteString(n.Data)
		return
	case html.ElementNode:
		switch n.Data {
		case "script", "style":
			return
		case "br":
			out.WriteString("\n")
			return
		}
		if tag, ok := keepInline[n.Data]; ok {
			out.WriteString("<" + tag + ">")
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c, out)
			}
			out.WriteString("</" + tag + ">")
			return
		}
		// Block-ish containers produced by contentEditable become line breaks.
		if n.Data == "div" || n.Data == "p" {
			if out.Len() > 0 {
				out.WriteString("\n")
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, out)
	}
}

// IsBlank reports whether sanitized reply content has no text, mirroring the
// editor's placeholder check. Inline tags alone do not count as content.
func IsBlank(sanitized string) bool {
	s := sanitized
	for _, tag := range []string{"<b>", "</b>", "<i>", "</i>", "<u>", "</u>"} {
		s = strings.ReplaceAll(s, tag, "")
	}
	return strings.TrimSpace(s) == ""
}

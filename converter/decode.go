package converter

import (
	"strings"

	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var entityReplacer = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
)

// DecodeHTMLContent undoes the escaping legacy packages apply to rich text.
//
// Literal \r is only unescaped when the next character is not a letter, so
// LaTeX commands such as \right or \rho survive.
func DecodeHTMLContent(text string) string {
	if text == "" {
		return ""
	}

	text = entityReplacer.Replace(text)
	text = strings.ReplaceAll(text, "&amp;", "&")

	if !strings.Contains(text, `\`) {
		return text
	}

	var sb strings.Builder
	sb.Grow(len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c != '\\' || i+1 >= len(text) {
			sb.WriteByte(c)
			continue
		}
		switch text[i+1] {
		case 'n':
			sb.WriteByte('\n')
			i++
		case 't':
			sb.WriteByte('\t')
			i++
		case 'r':
			if i+2 < len(text) && isASCIILetter(text[i+2]) {
				sb.WriteByte(c)
				continue
			}
			sb.WriteByte('\r')
			i++
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// StripHTMLTags returns the trimmed text content of an HTML fragment. Entities
// are decoded by the parser.
func StripHTMLTags(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}

	nodes, err := parseHTMLFragment(fragment)
	if err != nil {
		return strings.TrimSpace(fragment)
	}

	var sb strings.Builder
	for _, n := range nodes {
		collectHTMLText(&sb, n)
	}
	return strings.TrimSpace(sb.String())
}

// parseHTMLFragment parses fragment as the body of a div.
func parseHTMLFragment(fragment string) ([]*xhtml.Node, error) {
	context := &xhtml.Node{Type: xhtml.ElementNode, Data: "div", DataAtom: atom.Div}
	return xhtml.ParseFragment(strings.NewReader(fragment), context)
}

func collectHTMLText(sb *strings.Builder, n *xhtml.Node) {
	if n.Type == xhtml.ElementNode {
		switch n.DataAtom {
		case atom.Script, atom.Style:
			return
		}
	}
	if n.Type == xhtml.TextNode {
		sb.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectHTMLText(sb, c)
	}
}

package render

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

type declaration struct {
	name  string
	value string
}

// inlineStyle is the parsed value of a style attribute, keeping declaration order.
type inlineStyle []declaration

func parseInlineStyle(raw string) inlineStyle {
	var out inlineStyle
	for _, part := range splitDeclarations(raw) {
		name, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		name = strings.ToLower(strings.TrimSpace(name))
		value = strings.TrimSpace(value)
		if name == "" {
			continue
		}
		out = out.set(name, value)
	}
	return out
}

// splitDeclarations 按分号切分声明，括号和引号内的分号不算，
// 例如 url(data:image/png;base64,...)。
func splitDeclarations(raw string) []string {
	var (
		parts []string
		depth int
		quote rune
		start int
	)
	for i, r := range raw {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == '(':
			depth++
		case r == ')':
			if depth > 0 {
				depth--
			}
		case r == ';' && depth == 0:
			parts = append(parts, raw[start:i])
			start = i + 1
		}
	}
	return append(parts, raw[start:])
}

func (s inlineStyle) set(name, value string) inlineStyle {
	for i := range s {
		if s[i].name == name {
			s[i].value = value
			return s
		}
	}
	return append(s, declaration{name: name, value: value})
}

func (s inlineStyle) remove(names ...string) inlineStyle {
	out := s[:0]
	for _, d := range s {
		drop := false
		for _, n := range names {
			if d.name == n {
				drop = true
				break
			}
		}
		if !drop {
			out = append(out, d)
		}
	}
	return out
}

func (s inlineStyle) get(name string) (string, bool) {
	for _, d := range s {
		if d.name == name {
			return d.value, true
		}
	}
	return "", false
}

func (s inlineStyle) String() string {
	parts := make([]string, 0, len(s))
	for _, d := range s {
		parts = append(parts, d.name+": "+d.value)
	}
	return strings.Join(parts, "; ")
}

// setStyle overrides the given properties (name, value pairs) on every element of sel.
func setStyle(sel *goquery.Selection, pairs ...string) {
	sel.Each(func(_ int, el *goquery.Selection) {
		style := parseInlineStyle(el.AttrOr("style", ""))
		for i := 0; i+1 < len(pairs); i += 2 {
			style = style.set(pairs[i], pairs[i+1])
		}
		el.SetAttr("style", style.String())
	})
}

// clearStyle removes properties from the inline style of every element of sel.
func clearStyle(sel *goquery.Selection, names ...string) {
	sel.Each(func(_ int, el *goquery.Selection) {
		raw, ok := el.Attr("style")
		if !ok {
			return
		}
		style := parseInlineStyle(raw).remove(names...)
		if len(style) == 0 {
			el.RemoveAttr("style")
			return
		}
		el.SetAttr("style", style.String())
	})
}

// StyleOf returns one inline style property of the first element of sel.
func StyleOf(sel *goquery.Selection, name string) (string, bool) {
	return parseInlineStyle(sel.AttrOr("style", "")).get(name)
}

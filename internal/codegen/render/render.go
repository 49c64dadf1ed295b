// Package render substitutes named placeholders in template text.
//
// Templates use the $NAME / ${NAME} syntax, so existing thing-model
// template directories keep working. "$$" yields a
// literal "$"; a "$" that does not start a placeholder is copied as is.
//
// Rendering rendered output again is a no-op only when the template has no
// "$$" escapes: the escape is consumed by the first pass.
package render

import (
	"strings"

	"github.com/ticos/tmgen/internal/codegen/generr"
)

// Context maps placeholder names to replacement text.
type Context map[string]string

// Render replaces every placeholder of text with its value in ctx. Placeholders
// missing from ctx fail with a TemplatePlaceholder error naming all of them;
// nothing is passed through unresolved. Extra keys in ctx are ignored.
func Render(text string, ctx Context) (string, error) {
	var b strings.Builder
	b.Grow(len(text))

	var missing []string
	seen := make(map[string]bool)

	walk(text,
		func(lit string) { b.WriteString(lit) },
		func(name string) {
			if v, ok := ctx[name]; ok {
				b.WriteString(v)
				return
			}
			if !seen[name] {
				seen[name] = true
				missing = append(missing, name)
			}
		})

	if len(missing) > 0 {
		return "", generr.TemplatePlaceholder(strings.Join(missing, ", "))
	}
	return b.String(), nil
}

// Placeholders returns the distinct placeholder names of text in order of
// first appearance.
func Placeholders(text string) []string {
	var names []string
	seen := make(map[string]bool)
	walk(text, func(string) {}, func(name string) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	})
	return names
}

// walk splits text into literal runs and placeholder names.
func walk(text string, literal func(string), placeholder func(string)) {
	for len(text) > 0 {
		i := strings.IndexByte(text, '$')
		if i < 0 {
			literal(text)
			return
		}
		if i > 0 {
			literal(text[:i])
		}
		text = text[i:]

		switch {
		case strings.HasPrefix(text, "$$"):
			literal("$")
			text = text[2:]
		case strings.HasPrefix(text, "${"):
			end := strings.IndexByte(text, '}')
			if end > 2 && isIdent(text[2:end]) {
				placeholder(text[2:end])
				text = text[end+1:]
				continue
			}
			literal("$")
			text = text[1:]
		default:
			n := identLen(text[1:])
			if n == 0 {
				literal("$")
				text = text[1:]
				continue
			}
			placeholder(text[1 : 1+n])
			text = text[1+n:]
		}
	}
}

func identLen(s string) int {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_', c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return i
		}
	}
	return len(s)
}

func isIdent(s string) bool {
	return s != "" && identLen(s) == len(s)
}

// Package sanitize cleans author-supplied rich text before it is embedded in
// a rendered page. It is an allowlist filter, not an HTML parser: anything
// that looks like a tag is either normalized or removed, and all text between
// tags is kept.
package sanitize

import (
	"html"
	"regexp"
	"strings"
)

var (
	// A token needs its closing '>'. An unterminated "<img src=x onerror=..."
	// is plain text here and passes through, so templates must never append
	// a '>' directly after rendered HTML.
	tagPattern  = regexp.MustCompile(`</?([a-zA-Z][a-zA-Z0-9]*)\b([^>]*)?/?>`)
	attrPattern = regexp.MustCompile(`([a-zA-Z-]+)\s*=\s*(?:"([^"]*)"|'([^']*)'|(\S+))`)
	htmlPattern = regexp.MustCompile(`</?[a-zA-Z][^>]*>`)
)

var allowedTags = map[string]bool{
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"p": true, "br": true, "hr": true,
	"ul": true, "ol": true, "li": true,
	"strong": true, "em": true, "b": true, "i": true, "u": true,
	"a":   true,
	"div": true, "span": true,
	"table": true, "thead": true, "tbody": true, "tr": true, "td": true, "th": true,
	"blockquote": true, "pre": true, "code": true,
}

var allowedAttrs = map[string]map[string]bool{
	"a": {"href": true},
}

// Link attributes appended to every anchor that keeps its href.
const linkSafetyAttrs = ` rel="nofollow noopener" target="_blank"`

var blockedSchemes = []string{"javascript:", "data:"}

// maxPasses bounds the work per call to a constant number of linear scans.
const maxPasses = 4

// Sanitize strips every tag outside the allowlist, drops every attribute
// outside the per-tag allowlist and rewrites surviving links so they open
// in a new context without referrer or opener. Text content is never removed.
//
// Removing a tag can join the text around it into a new tag-like token
// ("<<b>script>"), so the pass is repeated until the output is stable, at
// most maxPasses times. Tokens still unstable after that are escaped.
func Sanitize(input string) string {
	for i := 0; i < maxPasses; i++ {
		out := sanitizePass(input)
		if out == input {
			return out
		}
		input = out
	}
	return escapeUnstable(input)
}

// escapeUnstable keeps every token that a further pass would leave unchanged
// and neutralizes the '<' characters of all others.
func escapeUnstable(input string) string {
	matches := tagPattern.FindAllStringSubmatchIndex(input, -1)
	if len(matches) == 0 {
		return input
	}

	var b strings.Builder
	b.Grow(len(input) + 3*len(matches))

	last := 0
	for _, m := range matches {
		b.WriteString(input[last:m[0]])
		last = m[1]

		token := input[m[0]:m[1]]
		name := strings.ToLower(input[m[2]:m[3]])
		var attrs string
		if m[4] >= 0 {
			attrs = input[m[4]:m[5]]
		}
		if rewriteTag(token, name, attrs) == token {
			b.WriteString(token)
			continue
		}
		b.WriteString(strings.ReplaceAll(token, "<", "&lt;"))
	}
	b.WriteString(input[last:])

	return b.String()
}

func sanitizePass(input string) string {
	matches := tagPattern.FindAllStringSubmatchIndex(input, -1)
	if len(matches) == 0 {
		return input
	}

	var b strings.Builder
	b.Grow(len(input))

	last := 0
	for _, m := range matches {
		b.WriteString(input[last:m[0]])
		last = m[1]

		token := input[m[0]:m[1]]
		name := strings.ToLower(input[m[2]:m[3]])
		var attrs string
		if m[4] >= 0 {
			attrs = input[m[4]:m[5]]
		}
		b.WriteString(rewriteTag(token, name, attrs))
	}
	b.WriteString(input[last:])

	return b.String()
}

func rewriteTag(token, name, attrs string) string {
	if !allowedTags[name] {
		return ""
	}

	if strings.HasPrefix(token, "</") {
		return "</" + name + ">"
	}

	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(name)
	b.WriteString(filterAttrs(name, attrs))
	if strings.HasSuffix(token, "/>") {
		b.WriteString(" /")
	}
	b.WriteByte('>')

	return b.String()
}

func filterAttrs(tag, attrs string) string {
	allowed := allowedAttrs[tag]
	if allowed == nil || attrs == "" {
		return ""
	}

	var b strings.Builder
	hasHref := false
	for _, m := range attrPattern.FindAllStringSubmatch(attrs, -1) {
		name := strings.ToLower(m[1])
		if !allowed[name] {
			continue
		}
		value := firstNonEmpty(m[2], m[3], m[4])

		if name == "href" {
			// Only the first safe href survives so the safety attributes
			// are emitted once per anchor.
			if hasHref || isBlockedURL(value) {
				continue
			}
			hasHref = true
			b.WriteString(` href="` + escapeQuotes(value) + `"` + linkSafetyAttrs)
			continue
		}

		b.WriteString(" " + name + `="` + escapeQuotes(value) + `"`)
	}

	return b.String()
}

// isBlockedURL reports whether a link value would execute script or smuggle
// inline content. Entities are decoded and whitespace/control characters
// removed first, as browsers do before resolving the scheme.
func isBlockedURL(value string) bool {
	v := html.UnescapeString(value)
	v = strings.Map(func(r rune) rune {
		if r <= ' ' || r == 0x7f {
			return -1
		}
		return r
	}, v)
	v = strings.ToLower(v)

	for _, scheme := range blockedSchemes {
		if strings.HasPrefix(v, scheme) {
			return true
		}
	}
	return false
}

// Values from single-quoted or bare attributes are re-emitted double-quoted.
func escapeQuotes(v string) string {
	return strings.ReplaceAll(v, `"`, "&quot;")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// ContainsHTML reports whether text holds at least one tag-like token.
// A bare "<" or ">" that is not followed by a tag name does not count.
func ContainsHTML(text string) bool {
	return htmlPattern.MatchString(text)
}

// Description is a job description prepared for display. Exactly one of
// Text and HTML is set. Text must be rendered literally, never as markup.
type Description struct {
	Text   string `json:"text,omitempty"`
	HTML   string `json:"html,omitempty"`
	IsHTML bool   `json:"is_html"`
}

// Render classifies text and sanitizes it when it carries markup.
func Render(text string) Description {
	if !ContainsHTML(text) {
		return Description{Text: text}
	}
	return Description{HTML: Sanitize(text), IsHTML: true}
}

package sanitize

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain text is untouched",
			input: "Senior Go engineer, 5+ years",
			want:  "Senior Go engineer, 5+ years",
		},
		{
			name:  "allowed tags pass through",
			input: "<h2>Role</h2><p>Build <strong>things</strong></p>",
			want:  "<h2>Role</h2><p>Build <strong>things</strong></p>",
		},
		{
			name:  "tag names are lower-cased",
			input: "<P>Hello</P><UL><LI>one</LI></UL>",
			want:  "<p>Hello</p><ul><li>one</li></ul>",
		},
		{
			name:  "script removed but text kept",
			input: "<script>evil()</script>hello",
			want:  "evil()hello",
		},
		{
			name:  "disallowed wrapper keeps inner allowed markup",
			input: "<section><p>inside</p></section>",
			want:  "<p>inside</p>",
		},
		{
			name:  "attributes dropped on non-anchor tags",
			input: `<p class="x" style="color:red" onclick="steal()">hi</p>`,
			want:  "<p>hi</p>",
		},
		{
			name:  "closing tag attributes dropped",
			input: `<em>a</em foo="bar">`,
			want:  "<em>a</em>",
		},
		{
			name:  "anchor gets safety attributes",
			input: `<a href="https://example.com/jobs">apply</a>`,
			want:  `<a href="https://example.com/jobs" rel="nofollow noopener" target="_blank">apply</a>`,
		},
		{
			name:  "single quoted and bare href values",
			input: `<a href='https://a.io'>a</a><a href=https://b.io>b</a>`,
			want: `<a href="https://a.io" rel="nofollow noopener" target="_blank">a</a>` +
				`<a href="https://b.io" rel="nofollow noopener" target="_blank">b</a>`,
		},
		{
			name:  "input rel and target are replaced",
			input: `<a target="_self" rel="opener" href="https://x.io">x</a>`,
			want:  `<a href="https://x.io" rel="nofollow noopener" target="_blank">x</a>`,
		},
		{
			name:  "javascript href dropped",
			input: `<a href="javascript:alert(1)">x</a>`,
			want:  `<a>x</a>`,
		},
		{
			name:  "javascript href with padding and case dropped",
			input: `<a href="  JavaScript:alert(1)">x</a>`,
			want:  `<a>x</a>`,
		},
		{
			name:  "javascript href split by control characters dropped",
			input: "<a href=\"java\tscript:alert(1)\">x</a>",
			want:  `<a>x</a>`,
		},
		{
			name:  "entity encoded javascript href dropped",
			input: `<a href="&#106;avascript:alert(1)">x</a>`,
			want:  `<a>x</a>`,
		},
		{
			name:  "data href dropped",
			input: `<a href="data:text/html;base64,PHNjcmlwdD4=">x</a>`,
			want:  `<a>x</a>`,
		},
		{
			name:  "only first safe href kept",
			input: `<a href="https://one.io" href="https://two.io">x</a>`,
			want:  `<a href="https://one.io" rel="nofollow noopener" target="_blank">x</a>`,
		},
		{
			name:  "quote in single quoted href cannot break out",
			input: `<a href='x" onclick="alert(1)'>x</a>`,
			want:  `<a href="x&quot; onclick=&quot;alert(1)" rel="nofollow noopener" target="_blank">x</a>`,
		},
		{
			name:  "self closing void tags preserved",
			input: "line<br/>rule<hr />",
			want:  "line<br />rule<hr />",
		},
		{
			name:  "disallowed self closing tag removed",
			input: `a<img src="x.png" onerror="alert(1)"/>b`,
			want:  "ab",
		},
		{
			name:  "bare angle brackets pass through",
			input: "salary < 100k > 50k",
			want:  "salary < 100k > 50k",
		},
		{
			name:  "malformed fragment passes through",
			input: "<p unterminated",
			want:  "<p unterminated",
		},
		{
			name:  "allowed tag between stray brackets kept",
			input: "<<b>script>alert(1)<</b>/script>",
			want:  "<<b>script>alert(1)<</b>/script>",
		},
		{
			name:  "disallowed tag reassembled by removal is removed too",
			input: "<<x>script>alert(1)<</x>/script>",
			want:  "alert(1)",
		},
		{
			name:  "anchor reassembled by removal is sanitized",
			input: "<<x>a href='javascript:alert(1)'>go</a>",
			want:  "<a>go</a>",
		},
		{
			name:  "tag nesting beyond the pass limit is escaped",
			input: "<<<<<<x>x>x>x>x>x>",
			want:  "<&lt;x>x>",
		},
		{
			name:  "unterminated disallowed tag after markup passes through",
			input: "<p>x</p><img src=x onerror=alert(1)//",
			want:  "<p>x</p><img src=x onerror=alert(1)//",
		},
		{
			name:  "table markup kept",
			input: "<table><thead><tr><th>A</th></tr></thead><tbody><tr><td>1</td></tr></tbody></table>",
			want:  "<table><thead><tr><th>A</th></tr></thead><tbody><tr><td>1</td></tr></tbody></table>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.input))
		})
	}
}

func TestSanitize_OutputOnlyAllowlisted(t *testing.T) {
	inputs := []string{
		`<script>x</script><style>p{}</style><iframe src="//evil"></iframe>`,
		`<DIV onmouseover="x()"><SPAN style="a">t</SPAN></DIV>`,
		`<a href="https://ok.io" onclick="x()" title="t">l</a><a href="javascript:x">m</a>`,
		`<<<x>>img src=x onerror=alert(1)>`,
		`<form action="/x"><input type="text" name="q"/></form>`,
		`<table border="1"><tr><td colspan="2">c</td></tr></table>`,
	}

	tag := regexp.MustCompile(`</?([a-zA-Z][a-zA-Z0-9]*)\b([^>]*)?/?>`)

	for _, in := range inputs {
		out := Sanitize(in)
		for _, m := range tag.FindAllStringSubmatch(out, -1) {
			name := strings.ToLower(m[1])
			assert.True(t, allowedTags[name], "tag %q leaked from %q", name, in)

			attrs := strings.TrimSuffix(strings.TrimSpace(m[2]), "/")
			if name != "a" || strings.HasPrefix(m[0], "</") {
				assert.Empty(t, strings.TrimSpace(attrs), "attributes leaked on %q", m[0])
				continue
			}
			for _, a := range attrPattern.FindAllStringSubmatch(attrs, -1) {
				assert.Contains(t, []string{"href", "rel", "target"}, strings.ToLower(a[1]))
			}
		}
	}
}

func TestSanitize_SafetyAttributesOncePerLink(t *testing.T) {
	in := `<a href="https://a.io" rel="x" target="y" href="https://b.io">a</a> <a href='/c'>c</a>`
	out := Sanitize(in)

	assert.Equal(t, 2, strings.Count(out, `rel="nofollow noopener" target="_blank"`))
	assert.Equal(t, 2, strings.Count(out, "rel="))
	assert.Equal(t, 2, strings.Count(out, "target="))
}

func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{
		`<a href=https://x.io/>x</a>`,
		`<p>a<br/>b</p><a href='q"r'>z</a>`,
		`<<x>script>`,
	}
	for _, in := range inputs {
		once := Sanitize(in)
		assert.Equal(t, once, Sanitize(once), "input %q", in)
	}
}

func TestSanitize_DeepNestingIsBounded(t *testing.T) {
	depth := 6666
	in := strings.Repeat("<", depth) + strings.Repeat("x>", depth)
	assert.Len(t, in, 19998)

	start := time.Now()
	out := Sanitize(in)
	elapsed := time.Since(start)

	assert.Less(t, elapsed, 250*time.Millisecond)
	assert.Equal(t, out, Sanitize(out))
	assert.NotRegexp(t, `<[a-zA-Z]`, out)
}

func TestContainsHTML(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{name: "plain text", text: "plain text", want: false},
		{name: "paragraph", text: "<p>hi</p>", want: true},
		{name: "bare comparison", text: "a < b and c > d", want: false},
		{name: "arrow", text: "growth -> impact <- you", want: false},
		{name: "closing tag only", text: "text</script>", want: true},
		{name: "self closing", text: "x<br/>y", want: true},
		{name: "unterminated tag", text: "<p never closed", want: false},
		{name: "empty", text: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContainsHTML(tt.text))
		})
	}
}

func TestContainsHTML_NoFalseNegatives(t *testing.T) {
	inputs := []string{
		"</script>",
		"<x>",
		"a<B class=1>b",
		"text <img/> more",
		"<<x>a>",
	}
	for _, in := range inputs {
		if Sanitize(in) != in {
			assert.True(t, ContainsHTML(in), "sanitizer altered %q but it was not classified as html", in)
		}
	}
}

func TestRender(t *testing.T) {
	angled := Render("We pay <well> 100k")
	assert.True(t, angled.IsHTML)
	assert.Equal(t, "We pay  100k", angled.HTML)

	text := Render("Remote-first, CHF 120k")
	assert.False(t, text.IsHTML)
	assert.Empty(t, text.HTML)
	assert.Equal(t, "Remote-first, CHF 120k", text.Text)

	rich := Render(`<p>Hi</p><script>x()</script>`)
	assert.True(t, rich.IsHTML)
	assert.Equal(t, "<p>Hi</p>x()", rich.HTML)
	assert.Empty(t, rich.Text)
}

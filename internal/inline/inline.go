// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package inline turns raw record-book prose into LaTeX-safe text. It
// escapes LaTeX control characters, resolves [label](target) links into
// cross-reference or hyperlink commands, and inserts soft line-break
// hints after a fixed set of words.
//
// Nothing here fails: link syntax that does not resolve degrades to the
// literal escaped text.
package inline

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/pdiddy/genealogy-tex/pkg/types"
)

// linkPattern matches inline links: [label](target).
var linkPattern = regexp.MustCompile(`\[(.*?)\]\((.*?)\)`)

// personTarget matches person references: #i42 or i42.
var personTarget = regexp.MustCompile(`^#?i(\d+)$`)

var latexReplacer = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`#`, `\#`,
	`$`, `\$`,
	`%`, `\%`,
	`&`, `\&`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
)

var urlReplacer = strings.NewReplacer(
	`_`, `\_`,
	`#`, `\#`,
	`$`, `\$`,
	`%`, `\%`,
	`&`, `\&`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\~{}`,
	`^`, `\^{}`,
)

// Escape replaces every LaTeX control character in text.
func Escape(text string) string {
	if text == "" {
		return ""
	}
	return latexReplacer.Replace(text)
}

// EscapeURL escapes the characters that break a URL inside an \href
// argument: _ # $ % & { } ~ ^.
func EscapeURL(url string) string {
	return urlReplacer.Replace(url)
}

// ParseLink classifies a link target.
func ParseLink(label, target string) types.InlineLink {
	link := types.InlineLink{
		Label:  label,
		Target: target,
		Raw:    "[" + label + "](" + target + ")",
		Kind:   types.LinkUnrecognized,
	}
	lower := strings.ToLower(target)
	switch {
	case personTarget.MatchString(target):
		link.Kind = types.LinkPerson
		link.PersonID = personTarget.FindStringSubmatch(target)[1]
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		link.Kind = types.LinkURL
	}
	return link
}

// Links returns every inline link in text, in order of appearance.
func Links(text string) []types.InlineLink {
	var links []types.InlineLink
	for _, m := range linkPattern.FindAllStringSubmatchIndex(text, -1) {
		link := ParseLink(text[m[2]:m[3]], text[m[4]:m[5]])
		link.Raw = text[m[0]:m[1]]
		links = append(links, link)
	}
	return links
}

// HasLink reports whether text contains an inline link.
func HasLink(text string) bool {
	return linkPattern.MatchString(text)
}

// RenderLink returns the LaTeX for a single link.
func RenderLink(link types.InlineLink) string {
	switch link.Kind {
	case types.LinkPerson:
		return `\textcolor{accent}{\textbf{\underline{\hyperlink{person` + link.PersonID +
			`}{\breakablename{` + Escape(link.Label) + `}}}}}`
	case types.LinkURL:
		return `\textcolor{accent}{\href{` + EscapeURL(link.Target) + `}{` + Escape(link.Label) + `}}`
	default:
		return Escape(link.Raw)
	}
}

// URL renders a bare URL line as a small accented hyperlink.
func URL(url string) string {
	return `\href{` + url + `}{\small\textcolor{accent}{` + EscapeURL(url) + `}}`
}

// Format escapes text, renders its links and adds soft-break hints.
func Format(text string) string {
	var b strings.Builder
	last := 0
	for _, m := range linkPattern.FindAllStringSubmatchIndex(text, -1) {
		b.WriteString(Escape(text[last:m[0]]))
		link := ParseLink(text[m[2]:m[3]], text[m[4]:m[5]])
		link.Raw = text[m[0]:m[1]]
		b.WriteString(RenderLink(link))
		last = m[1]
	}
	b.WriteString(Escape(text[last:]))
	return insertBreaks(b.String())
}

// softBreak is a phrase after which a break hint is inserted. A phrase
// only matches when at least one more rune follows it, and scanning
// resumes advance runes past the match.
type softBreak struct {
	phrase  []rune
	with    []rune
	advance int
}

// softBreaks are tried in order at each position.
var softBreaks = []softBreak{
	{[]rune(" and"), []rune(` and \allowbreak `), 14},
	{[]rune(" of"), []rune(` of \allowbreak `), 13},
	{[]rune(" son of"), []rune(` son of \penalty10\hspace{0pt} `), 24},
	{[]rune(" son"), []rune(` son \allowbreak `), 14},
	{[]rune(" daughter"), []rune(` daughter \allowbreak `), 19},
}

// insertBreaks walks formatted text and adds break hints outside of
// LaTeX commands. A command name and all of its braced arguments are
// skipped whole so hints never land inside an argument.
func insertBreaks(s string) string {
	r := []rune(s)
	i := 0
	for i < len(r)-3 {
		if r[i] == '\\' && i+1 < len(r) && unicode.IsLetter(r[i+1]) {
			i = skipCommand(r, i)
			continue
		}
		hit := false
		for _, sb := range softBreaks {
			if i+len(sb.phrase)+1 < len(r) && hasPrefix(r[i:], sb.phrase) {
				r = splice(r, i, len(sb.phrase), sb.with)
				i += sb.advance
				hit = true
				break
			}
		}
		if !hit {
			i++
		}
	}
	return string(r)
}

// skipCommand returns the index just past the command starting at
// r[i] == '\\' and every braced argument directly following it.
func skipCommand(r []rune, i int) int {
	i++
	for i < len(r) && unicode.IsLetter(r[i]) {
		i++
	}
	for i < len(r) && r[i] == '{' {
		depth := 1
		i++
		for i < len(r) && depth > 0 {
			switch r[i] {
			case '{':
				depth++
			case '}':
				depth--
			}
			i++
		}
	}
	return i
}

func hasPrefix(r, prefix []rune) bool {
	if len(r) < len(prefix) {
		return false
	}
	for i, c := range prefix {
		if r[i] != c {
			return false
		}
	}
	return true
}

// splice replaces r[at:at+n] with repl.
func splice(r []rune, at, n int, repl []rune) []rune {
	out := make([]rune, 0, len(r)-n+len(repl))
	out = append(out, r[:at]...)
	out = append(out, repl...)
	return append(out, r[at+n:]...)
}

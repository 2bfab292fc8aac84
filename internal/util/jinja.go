package util

import "regexp"

// TemplatePlaceholder replaces every Jinja2 expression.
const TemplatePlaceholder = "PLACEHOLDER"

var (
	jinjaExprPattern    = regexp.MustCompile(`\{\{[^}]*\}\}`)
	jinjaCommentPattern = regexp.MustCompile(`\{#[\s\S]*?#\}`)
	jinjaStmtLine       = regexp.MustCompile(`(?m)^[ \t]*\{%[^%]*%\}[ \t]*(\r?\n|$)`)
)

// StripJinja2 makes a Jinja2-templated compose file parseable: comments and
// statement-only lines ({% if %}, {% endfor %}, ...) are removed and
// {{ expr }} becomes PLACEHOLDER. Both branches of a conditional survive.
func StripJinja2(content string) string {
	content = jinjaCommentPattern.ReplaceAllString(content, "")
	content = jinjaStmtLine.ReplaceAllString(content, "")
	return jinjaExprPattern.ReplaceAllString(content, TemplatePlaceholder)
}

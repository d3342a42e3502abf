// Package markdown renders user-authored post and comment bodies to
// sanitized HTML, and carries the small display formatters the feed uses for
// timestamps and deadlines.
package markdown

import (
	"bytes"
	"fmt"
	stdhtml "html"
	"html/template"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	mdParser = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
		),
	)
	policy = bluemonday.UGCPolicy()
)

func init() {
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	policy.RequireNoReferrerOnLinks(true)
}

// Render converts markdown to sanitized HTML. Content that fails to parse is
// returned escaped rather than dropped.
func Render(source string) template.HTML {
	var buf bytes.Buffer
	if err := mdParser.Convert([]byte(source), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(source))
	}
	return template.HTML(policy.SanitizeBytes(buf.Bytes()))
}

// RenderText runs a body through the same parse and sanitize pipeline as
// Render, then flattens the sanitized HTML to plain text for terminal output.
func RenderText(source string) string {
	var buf bytes.Buffer
	if err := mdParser.Convert([]byte(source), &buf); err != nil {
		return strings.TrimSpace(source)
	}
	return flatten(string(policy.SanitizeBytes(buf.Bytes())))
}

// Tags that end a block of text when flattened.
var blockEnders = map[string]bool{
	"p": true, "br": true, "li": true, "ul": true, "ol": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "pre": true, "tr": true, "table": true, "hr": true,
}

func flatten(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '<' {
			b.WriteByte(s[i])
			continue
		}
		end := strings.IndexByte(s[i:], '>')
		if end < 0 {
			b.WriteString(s[i:])
			break
		}
		tag := strings.ToLower(strings.TrimSpace(strings.Trim(s[i+1:i+end], "/")))
		if name, _, ok := strings.Cut(tag, " "); ok {
			tag = name
		}
		if blockEnders[tag] {
			b.WriteByte('\n')
		}
		i += end
	}
	out := stdhtml.UnescapeString(b.String())
	for strings.Contains(out, "\n\n\n") {
		out = strings.ReplaceAll(out, "\n\n\n", "\n\n")
	}
	return strings.TrimSpace(out)
}

// RelativeTime renders a timestamp the way the feed shows it: "just now",
// "5m ago", "3h ago", "2d ago", falling back to the date beyond a month.
func RelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}

// Deadline renders a scholarship deadline with its days-remaining hint.
func Deadline(deadline, now time.Time) string {
	days := int(deadline.Sub(now).Hours() / 24)
	date := deadline.Format("Jan 2, 2006")
	switch {
	case deadline.Before(now):
		return date + " (expired)"
	case days == 0:
		return date + " (due today)"
	case days == 1:
		return date + " (1 day left)"
	default:
		return fmt.Sprintf("%s (%d days left)", date, days)
	}
}

package listing

import (
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/net/html"
)

// blockTags break text when markup is stripped.
var blockTags = map[string]bool{
	"br": true, "p": true, "div": true, "li": true, "ul": true, "ol": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "tr": true,
}

// PlainText strips markup from a description and collapses whitespace.
// Dealers paste HTML into the description field; meta tags and card excerpts
// need text.
func PlainText(description string) string {
	if !strings.ContainsAny(description, "<&") {
		return strings.Join(strings.Fields(description), " ")
	}

	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(description))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.TextToken:
			b.Write(z.Text())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			if blockTags[string(name)] {
				b.WriteByte(' ')
			}
		}
	}
}

// Excerpt returns the plain text of description cut to at most n runes.
func Excerpt(description string, n int) string {
	text := PlainText(description)
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return strings.TrimSpace(string(runes[:n])) + "…"
}

// Markdown converts an HTML description to Markdown for terminal output.
func Markdown(description string) (string, error) {
	if !strings.Contains(description, "<") {
		return description, nil
	}
	md, err := htmltomarkdown.ConvertString(description)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(md), nil
}

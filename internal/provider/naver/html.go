package naver

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// CleanHTML drops tags from s and unescapes entities. Naver wraps matched
// terms in <b> and escapes quotes.
func CleanHTML(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			if z.Err() == io.EOF {
				return strings.Join(strings.Fields(b.String()), " ")
			}
			return strings.TrimSpace(b.String())
		case html.TextToken:
			b.Write(z.Text())
		}
	}
}

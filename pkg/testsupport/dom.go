package testsupport

import (
	"bytes"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

// ParseHTML parses the provided HTML payload into a goquery document for assertions.
func ParseHTML(t testing.TB, body []byte) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

// ParseHTMLString is ParseHTML for string payloads.
func ParseHTMLString(t testing.TB, body string) *goquery.Document {
	t.Helper()
	return ParseHTML(t, []byte(body))
}

// Texts returns the trimmed text of every node matched by selector.
func Texts(doc *goquery.Document, selector string) []string {
	var out []string
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		out = append(out, strings.Join(strings.Fields(s.Text()), " "))
	})
	return out
}

// Attr returns the attribute of the first node matched by selector.
func Attr(doc *goquery.Document, selector, name string) (string, bool) {
	return doc.Find(selector).First().Attr(name)
}

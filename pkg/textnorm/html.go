package textnorm

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// LooksLikeHTML reports whether pasted text still carries markup, e.g. a
// fragment copied from a browser profile page instead of plain text.
func LooksLikeHTML(text string) (ok bool) {
	lower := strings.ToLower(text)
	if strings.Contains(lower, "<html") || strings.Contains(lower, "<body") || strings.Contains(lower, "<div") {
		return true
	}
	ok = strings.Count(lower, "</") >= 2
	return ok
}

// CleanHTML extracts readable block text from an HTML fragment. Chrome junk
// (scripts, navigation, cookie banners) is dropped; paragraph, list and heading
// elements become lines. Falls back to tag stripping when parsing fails.
func CleanHTML(html string) (text string) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return stripTags(html)
	}

	doc.Find("script, style, nav, header, footer, iframe, noscript").Remove()
	doc.Find(".menu, .navigation, .social, .banner, .ads, .cookie, .popup").Remove()

	var blocks []string
	doc.Find("p, li, h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		block := strings.TrimSpace(s.Text())
		if block != "" {
			blocks = append(blocks, block)
		}
	})
	if len(blocks) > 0 {
		return strings.Join(blocks, "\n")
	}

	body := strings.TrimSpace(doc.Find("body").Text())
	if body != "" {
		return body
	}

	text = stripTags(html)
	return text
}

var tagRe = regexp.MustCompile(`<[^>]*>`)

func stripTags(html string) (text string) {
	text = tagRe.ReplaceAllString(html, " ")
	text = strings.TrimSpace(text)
	return text
}

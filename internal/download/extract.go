package download

import (
	"io"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jerald6111/video-quality-checker/internal/vqcerr"
)

// downloadSelectors match elements that commonly carry a direct download
// link on share pages, in preference order.
var downloadSelectors = []string{
	`a[href*="download"]`,
	`a[href*=".mp4"]`,
	`a[href*=".mov"]`,
	`a[href*=".avi"]`,
	`button[data-url]`,
	`[data-download-url]`,
}

var scriptURLPattern = regexp.MustCompile(`https?://[^\s"'>]+`)

// ExtractVideoURL scrapes a share page for the direct video URL. Three
// strategies run in order: download links and data attributes, video/source
// tags, then URLs embedded in inline scripts.
func ExtractVideoURL(page io.Reader, baseURL string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(page)
	if err != nil {
		return "", vqcerr.NewDownloadError("failed to parse share page", err)
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", vqcerr.NewDownloadError("invalid share page URL", err)
	}

	if found := fromDownloadLinks(doc, base); found != "" {
		return found, nil
	}
	if found := fromVideoTags(doc, base); found != "" {
		return found, nil
	}
	if found := fromScripts(doc); found != "" {
		return found, nil
	}
	return "", vqcerr.NewDownloadError("could not find video download URL in share page", nil)
}

func fromDownloadLinks(doc *goquery.Document, base *url.URL) string {
	for _, selector := range downloadSelectors {
		found := ""
		doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			href := firstAttr(s, "href", "data-url", "data-download-url")
			if href == "" {
				return true
			}
			if full := resolve(base, href); IsVideoURL(full) {
				found = full
				return false
			}
			return true
		})
		if found != "" {
			return found
		}
	}
	return ""
}

func fromVideoTags(doc *goquery.Document, base *url.URL) string {
	found := ""
	doc.Find("video, video source").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		src, ok := s.Attr("src")
		if !ok || src == "" {
			return true
		}
		if full := resolve(base, src); IsVideoURL(full) {
			found = full
			return false
		}
		return true
	})
	return found
}

func fromScripts(doc *goquery.Document) string {
	found := ""
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		for _, line := range strings.Split(s.Text(), "\n") {
			if !strings.Contains(line, ".mp4") && !strings.Contains(line, ".mov") &&
				!strings.Contains(line, ".avi") && !strings.Contains(line, "download") {
				continue
			}
			for _, candidate := range scriptURLPattern.FindAllString(line, -1) {
				if IsVideoURL(candidate) {
					found = candidate
					return false
				}
			}
		}
		return true
	})
	return found
}

func firstAttr(s *goquery.Selection, names ...string) string {
	for _, name := range names {
		if v, ok := s.Attr(name); ok && v != "" {
			return v
		}
	}
	return ""
}

func resolve(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

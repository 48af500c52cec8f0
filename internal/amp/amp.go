// Package amp rewrites article HTML into AMP-compatible markup.
package amp

import (
	"fmt"
	"html"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Script is an AMP custom-element script the page must include.
type Script struct {
	CustomElement string `json:"custom_element"`
	Src           string `json:"src"`
}

const (
	elementFacebook  = "amp-facebook"
	elementInstagram = "amp-instagram"
	elementTikTok    = "amp-tiktok"
	elementTwitter   = "amp-twitter"
	elementYouTube   = "amp-youtube"
)

// script order in the page head
var scriptOrder = []string{elementFacebook, elementInstagram, elementTikTok, elementTwitter, elementYouTube}

var (
	youtubeID   = regexp.MustCompile(`youtube(?:-nocookie)?\.com/embed/([a-zA-Z0-9_-]+)`)
	instagramID = regexp.MustCompile(`instagram\.com/[^/"]+/([^/?#"]+)`)
	tweetID     = regexp.MustCompile(`(?:twitter|x)\.com/[^"\s]*?/status(?:es)?/(\d+)`)
	facebookRef = regexp.MustCompile(`href=([^&;"]+)`)
)

// stripped entirely, content included
const dropSelector = "script, style, hr, iframe, object, h1, meta, title, link, noscript, form"

// Convert rewrites content for an AMP page and reports which AMP scripts
// the result needs. Embeds that cannot be mapped are removed.
func Convert(content string) (string, []Script) {
	content = unescape(content)
	content = strings.ReplaceAll(content, "\n", "")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return "", nil
	}
	body := doc.Find("body")
	used := make(map[string]bool)

	body.Find("iframe").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		switch {
		case strings.Contains(src, "facebook.com"):
			if href := facebookHref(src); href != "" {
				s.ReplaceWithHtml(fmt.Sprintf(`<amp-facebook width="1" height="1" layout="responsive" data-href="%s"></amp-facebook>`, html.EscapeString(href)))
				used[elementFacebook] = true
			}
		case youtubeID.MatchString(src):
			id := youtubeID.FindStringSubmatch(src)[1]
			s.ReplaceWithHtml(fmt.Sprintf(`<amp-youtube data-videoid="%s" layout="responsive" width="480" height="270"></amp-youtube>`, id))
			used[elementYouTube] = true
		}
	})

	body.Find("blockquote.instagram-media, iframe.instagram-media").Each(func(_ int, s *goquery.Selection) {
		outer, _ := goquery.OuterHtml(s)
		m := instagramID.FindStringSubmatch(outer)
		if m == nil {
			return
		}
		s.ReplaceWithHtml(fmt.Sprintf(`<amp-instagram data-shortcode="%s" width="1" height="1" layout="responsive"></amp-instagram>`, html.EscapeString(m[1])))
		used[elementInstagram] = true
	})

	body.Find("blockquote.tiktok-embed").Each(func(_ int, s *goquery.Selection) {
		id, ok := s.Attr("data-video-id")
		if !ok || id == "" {
			return
		}
		s.ReplaceWithHtml(fmt.Sprintf(`<amp-tiktok width="325" height="575" data-src="%s"></amp-tiktok>`, html.EscapeString(id)))
		used[elementTikTok] = true
	})

	body.Find("blockquote.twitter-tweet").Each(func(_ int, s *goquery.Selection) {
		outer, _ := goquery.OuterHtml(s)
		m := tweetID.FindStringSubmatch(outer)
		if m == nil {
			return
		}
		s.ReplaceWithHtml(fmt.Sprintf(`<amp-twitter width="375" height="472" layout="responsive" data-tweetid="%s"></amp-twitter>`, m[1]))
		used[elementTwitter] = true
	})

	body.Find("picture").Each(func(_ int, s *goquery.Selection) {
		src := pictureSource(s)
		if src == "" {
			s.Remove()
			return
		}
		s.ReplaceWithHtml(ampImg(src))
	})

	body.Find("img").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		if src == "" {
			s.Remove()
			return
		}
		s.ReplaceWithHtml(ampImg(src))
	})

	body.Find(dropSelector).Remove()

	out, err := body.Html()
	if err != nil {
		return "", nil
	}
	return policy.Sanitize(out), scriptsFor(used)
}

// ScriptSrc returns the CDN URL of an AMP custom element script.
func ScriptSrc(element string) string {
	return "https://cdn.ampproject.org/v0/" + element + "-0.1.js"
}

func scriptsFor(used map[string]bool) []Script {
	scripts := make([]Script, 0, len(used))
	for _, el := range scriptOrder {
		if used[el] {
			scripts = append(scripts, Script{CustomElement: el, Src: ScriptSrc(el)})
		}
	}
	return scripts
}

func ampImg(src string) string {
	return fmt.Sprintf(`<amp-img src="%s" width="800" height="450" layout="responsive"></amp-img>`, html.EscapeString(src))
}

// pictureSource picks the first srcset candidate, falling back to the inner img.
func pictureSource(s *goquery.Selection) string {
	var src string
	s.Find("source[srcset], img[srcset]").EachWithBreak(func(_ int, el *goquery.Selection) bool {
		set, _ := el.Attr("srcset")
		src = firstCandidate(set)
		return src == ""
	})
	if src == "" {
		src, _ = s.Find("img").Attr("src")
	}
	return strings.TrimSpace(src)
}

func firstCandidate(srcset string) string {
	first := strings.TrimSpace(strings.Split(srcset, ",")[0])
	if i := strings.IndexByte(first, ' '); i >= 0 {
		first = first[:i]
	}
	return first
}

func facebookHref(src string) string {
	if u, err := url.Parse(src); err == nil {
		if href := u.Query().Get("href"); href != "" {
			return href
		}
	}
	if m := facebookRef.FindStringSubmatch(src); m != nil {
		return m[1]
	}
	return ""
}

// unescape undoes percent-encoding of stored content, leaving text that is
// not validly encoded untouched.
func unescape(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}
	if out, err := url.PathUnescape(s); err == nil {
		return out
	}
	return s
}

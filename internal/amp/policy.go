package amp

import "github.com/microcosm-cc/bluemonday"

var policy = newPolicy()

// newPolicy keeps ordinary article markup and the AMP elements produced by
// Convert. Event handlers, inline styles and unknown attributes are dropped.
func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(false)

	p.AllowElements(elementFacebook, elementInstagram, elementTikTok, elementTwitter, elementYouTube, "amp-img")
	p.AllowAttrs("width", "height", "layout").OnElements(
		elementFacebook, elementInstagram, elementTikTok, elementTwitter, elementYouTube, "amp-img",
	)
	p.AllowAttrs("src").OnElements("amp-img")
	p.AllowAttrs("data-href").OnElements(elementFacebook)
	p.AllowAttrs("data-shortcode").OnElements(elementInstagram)
	p.AllowAttrs("data-src").OnElements(elementTikTok)
	p.AllowAttrs("data-tweetid").OnElements(elementTwitter)
	p.AllowAttrs("data-videoid").OnElements(elementYouTube)
	return p
}

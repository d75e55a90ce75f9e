// Package htmlx holds HTML content helpers shared by the editing client and
// the server's preview route.
package htmlx

import "regexp"

var (
	scriptTags    = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	onAttrDouble  = regexp.MustCompile(`(?i)\son\w+\s*=\s*".*?"`)
	onAttrSingle  = regexp.MustCompile(`(?i)\son\w+\s*=\s*'.*?'`)
	onAttrNoQuote = regexp.MustCompile(`(?i)\son\w+\s*=\s*[^ >]+`)
)

// Sanitize removes script tags and on* event handler attributes from html.
func Sanitize(html string) string {
	if html == "" {
		return ""
	}
	clean := scriptTags.ReplaceAllString(html, "")
	clean = onAttrDouble.ReplaceAllString(clean, "")
	clean = onAttrSingle.ReplaceAllString(clean, "")
	clean = onAttrNoQuote.ReplaceAllString(clean, "")
	return clean
}

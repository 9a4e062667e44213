package docsearch

import (
	"regexp"
	"strings"
)

var tagRe = regexp.MustCompile(`<[^>]*>?`)

// StripHTML removes tag-shaped substrings from s.
// It is a single-pattern replacer, not a parser: nested or malformed markup
// may leave fragments behind.
func StripHTML(s string) string {
	return tagRe.ReplaceAllString(s, "")
}

var idReplacer = strings.NewReplacer(".", "-", " ", "-", "<", "-", ">", "-")

// ConvertPathToID converts an outline path to the element id used for
// anchoring its description on the page.
func ConvertPathToID(path string) string {
	return "doc-content-" + idReplacer.Replace(path)
}

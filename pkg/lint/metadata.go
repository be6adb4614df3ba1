package lint

import (
	"net/url"
	"strings"
)

// DefaultDocsBaseURL is where rule pages are published.
const DefaultDocsBaseURL = "https://lualint.dev/docs/rules"

// DocsBaseURL is the prefix of every rule documentation link. The docs_url
// config key replaces it for offline mirrors.
var DocsBaseURL = DefaultDocsBaseURL

// BuildDocURL returns the documentation page of a rule.
func BuildDocURL(ruleID string) string {
	page := strings.ToLower(ruleID)
	u, err := url.JoinPath(DocsBaseURL, page)
	if err != nil {
		return DocsBaseURL + "/" + page
	}
	return u
}

// SetDocsBaseURL replaces the documentation prefix.
func SetDocsBaseURL(base string) {
	DocsBaseURL = strings.TrimRight(base, "/")
}

// ResetDocsBaseURL restores DefaultDocsBaseURL.
func ResetDocsBaseURL() {
	DocsBaseURL = DefaultDocsBaseURL
}

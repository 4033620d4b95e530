package scraper

import (
	"net/url"
	"regexp"
	"strconv"
)

// pageParam is the OLX query parameter selecting the result page.
const pageParam = "o"

var trailingPageParam = regexp.MustCompile(`([?&]` + pageParam + `=)\d+$`)

// PageURL returns the URL of result page n for a search. Page 1 is the base
// URL verbatim. Later pages rewrite a trailing o= parameter, or set it when
// the base URL has none.
func PageURL(base string, n int) string {
	if n <= 1 {
		return base
	}
	page := strconv.Itoa(n)
	if trailingPageParam.MatchString(base) {
		return trailingPageParam.ReplaceAllString(base, "${1}"+page)
	}

	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	q := u.Query()
	q.Set(pageParam, page)
	u.RawQuery = q.Encode()
	return u.String()
}

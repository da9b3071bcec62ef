package ui

import (
	"net/url"
	"strings"

	"github.com/Adda-Baaj/khobor/internal/domain"
)

const AllNewsPath = "/"

// Route is a matched client route. Param is the category or ISO code and is empty for all-news.
type Route struct {
	Feed  domain.Feed
	Param string
}

// Path renders the route back into its URL path.
func (r Route) Path() string {
	switch r.Feed {
	case domain.FeedCategory:
		return CategoryPath(r.Param)
	case domain.FeedCountry:
		return CountryPath(r.Param)
	default:
		return AllNewsPath
	}
}

// Filter is the value the route's view queries with. keyword only applies to all-news.
func (r Route) Filter(keyword string) string {
	if r.Feed != domain.FeedAll {
		return r.Param
	}
	if keyword = strings.TrimSpace(keyword); keyword != "" {
		return keyword
	}
	return DefaultKeyword
}

func CategoryPath(name string) string { return "/top-headlines/" + url.PathEscape(name) }
func CountryPath(iso string) string   { return "/country/" + url.PathEscape(iso) }

// Match resolves a decoded URL path. A single trailing slash is tolerated.
func Match(path string) (Route, bool) {
	if path == "" || path == AllNewsPath {
		return Route{Feed: domain.FeedAll}, true
	}
	path = strings.TrimSuffix(path, "/")

	parts := strings.Split(strings.TrimPrefix(path, "/"), "/")
	if len(parts) != 2 || parts[1] == "" {
		return Route{}, false
	}
	switch domain.Feed(parts[0]) {
	case domain.FeedCategory:
		return Route{Feed: domain.FeedCategory, Param: parts[1]}, true
	case domain.FeedCountry:
		return Route{Feed: domain.FeedCountry, Param: parts[1]}, true
	}
	return Route{}, false
}

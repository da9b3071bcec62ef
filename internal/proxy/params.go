package proxy

import (
	"strconv"
	"strings"

	"github.com/Adda-Baaj/khobor/internal/domain"
)

const defaultPage = 1

// routeDefaults are substituted for missing or unusable client input.
type routeDefaults struct {
	feed     domain.Feed
	filter   string
	pageSize int
}

var (
	allNewsDefaults  = routeDefaults{feed: domain.FeedAll, filter: "world", pageSize: 10}
	headlineDefaults = routeDefaults{feed: domain.FeedCategory, filter: "general", pageSize: 80}
	countryDefaults  = routeDefaults{feed: domain.FeedCountry, pageSize: 80}
)

// buildQuery never rejects input: anything unusable falls back to the route defaults.
func buildQuery(d routeDefaults, filter, rawPage, rawPageSize string) domain.Query {
	if filter == "" {
		filter = d.filter
	}
	return domain.Query{
		Feed:     d.feed,
		Filter:   filter,
		Page:     parsePositive(rawPage, defaultPage),
		PageSize: parsePositive(rawPageSize, d.pageSize),
	}
}

// parsePositive reads the leading integer of raw ("2abc" is 2, "2.5" is 2) and
// returns fallback when there is none or it is not positive.
func parsePositive(raw string, fallback int) int {
	n, err := strconv.Atoi(leadingInt(strings.TrimSpace(raw)))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// leadingInt returns the optional sign and digits at the start of s.
func leadingInt(s string) string {
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return ""
	}
	return s[:end]
}

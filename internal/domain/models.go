package domain

// Article is a single news item as returned by the upstream API.
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	ImageURL    string `json:"image"`
	Source      string `json:"source"`
	Author      string `json:"author,omitempty"`
	Category    string `json:"category,omitempty"`
	Language    string `json:"language,omitempty"`
	Country     string `json:"country,omitempty"`
	PublishedAt string `json:"published_at"` // kept as sent; upstream formats vary
}

// Feed names one of the three ways articles can be queried.
type Feed string

const (
	FeedAll      Feed = "all-news"
	FeedCategory Feed = "top-headlines"
	FeedCountry  Feed = "country"
)

// Query is built per request and discarded once the upstream call completes.
type Query struct {
	Feed     Feed
	Filter   string // keyword, category or ISO country code depending on Feed
	Page     int
	PageSize int
}

// Offset is the number of articles to skip upstream.
func (q Query) Offset() int {
	if q.Page < 1 {
		return 0
	}
	return (q.Page - 1) * q.PageSize
}

// ArticlePage is one page of articles plus the upstream pagination counters.
type ArticlePage struct {
	Articles []Article
	Offset   int
	Count    int
	Total    int
}

// HasMore reports whether upstream holds articles past this page.
func (p ArticlePage) HasMore() bool {
	return p.Offset+p.Count < p.Total
}

package ui

import (
	"strings"

	"github.com/Adda-Baaj/khobor/internal/domain"
	"github.com/PuerkitoBio/goquery"
	"github.com/samber/lo"
)

const (
	descriptionLimit = 150
	sourceLimit      = 50
	unknownAuthor    = "Unknown"
	ellipsis         = "..."
)

// Card is the display projection of one article.
type Card struct {
	Title       string
	Description string
	ImageURL    string
	URL         string
	Source      string
	Author      string
	PublishedAt string
}

// NewCard projects an article for display. Descriptions lose their markup and
// are cut at 150 characters, sources at 50.
func NewCard(a domain.Article) Card {
	c := Card{
		Title:       a.Title,
		ImageURL:    a.ImageURL,
		URL:         a.URL,
		Source:      truncate(a.Source, sourceLimit),
		Author:      strings.TrimSpace(a.Author),
		PublishedAt: a.PublishedAt,
	}
	if c.Author == "" {
		c.Author = unknownAuthor
	}
	if desc := plainText(a.Description); desc != "" {
		c.Description = truncate(desc, descriptionLimit) + ellipsis
	}
	return c
}

// Cards projects articles in order.
func Cards(articles []domain.Article) []Card {
	return lo.Map(articles, func(a domain.Article, _ int) Card {
		return NewCard(a)
	})
}

func plainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.Join(strings.Fields(s), " ")
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.Join(strings.Fields(s), " ")
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

package web

import (
	"embed"
	"html/template"
	"net/url"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Adda-Baaj/khobor/internal/catalog"
	"github.com/Adda-Baaj/khobor/internal/domain"
	"github.com/Adda-Baaj/khobor/internal/ui"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

func parseTemplates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"title": titleCase,
	}).ParseFS(templateFS, "templates/*.tmpl")
}

// pageData feeds page.tmpl.
type pageData struct {
	Title      string
	Heading    string
	Theme      ui.Theme
	ThemeLabel string
	Header     ui.HeaderState
	Categories []string
	Countries  []catalog.Country
	Route      ui.Route
	View       ui.ViewState
	Keyword    string
	ReturnPath string
	PrevURL    string
	NextURL    string
}

func newPageData(app *ui.App, cat *catalog.Catalog, route ui.Route, view ui.ViewState, returnPath string) pageData {
	hs := app.Header().State()
	d := pageData{
		Theme:      hs.Theme,
		ThemeLabel: hs.Theme.ToggleLabel(),
		Header:     hs,
		Categories: cat.Categories(),
		Countries:  cat.Countries(),
		Route:      route,
		View:       view,
		ReturnPath: returnPath,
	}

	switch route.Feed {
	case domain.FeedCategory:
		name := route.Param
		if cat.HasCategory(name) {
			name = titleCase(name)
		}
		d.Title = name
		d.Heading = "Top Headlines: " + name
	case domain.FeedCountry:
		name := strings.ToUpper(route.Param)
		if c, ok := cat.Country(route.Param); ok {
			name = c.Name
		}
		d.Title = name
		d.Heading = "Top Headlines: " + name
	default:
		d.Keyword = view.Filter
		d.Title = "All News"
		d.Heading = "All News"
		if view.Filter != "" && view.Filter != ui.DefaultKeyword {
			d.Heading = "Results for \"" + view.Filter + "\""
		}
	}

	if view.HasPrev() {
		d.PrevURL = pageURL(route, view.Filter, view.Page-1)
	}
	if view.HasNext {
		d.NextURL = pageURL(route, view.Filter, view.Page+1)
	}
	return d
}

func pageURL(route ui.Route, keyword string, page int) string {
	values := url.Values{}
	if route.Feed == domain.FeedAll && keyword != "" {
		values.Set("q", keyword)
	}
	if page > 1 {
		values.Set("page", strconv.Itoa(page))
	}
	if len(values) == 0 {
		return route.Path()
	}
	return route.Path() + "?" + values.Encode()
}

func titleCase(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

package web

import (
	"testing"

	"github.com/Adda-Baaj/khobor/internal/catalog"
	"github.com/Adda-Baaj/khobor/internal/domain"
	"github.com/Adda-Baaj/khobor/internal/ui"
	"github.com/stretchr/testify/assert"
)

func TestTitleCaseIsRuneAware(t *testing.T) {
	assert.Equal(t, "Économie", titleCase("économie"))
	assert.Equal(t, "Sports", titleCase("sports"))
	assert.Equal(t, "", titleCase(""))
}

func TestCategoryHeadingUsesCatalog(t *testing.T) {
	app := ui.NewApp(nil, ui.Options{})
	cat := catalog.Default()

	known := ui.Route{Feed: domain.FeedCategory, Param: "science"}
	d := newPageData(app, cat, known, ui.ViewState{Feed: domain.FeedCategory, Page: 1}, known.Path())
	assert.Equal(t, "Top Headlines: Science", d.Heading)

	unknown := ui.Route{Feed: domain.FeedCategory, Param: "weather"}
	d = newPageData(app, cat, unknown, ui.ViewState{Feed: domain.FeedCategory, Page: 1}, unknown.Path())
	assert.Equal(t, "Top Headlines: weather", d.Heading)
}

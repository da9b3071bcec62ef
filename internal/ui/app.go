package ui

import (
	"context"
	"errors"
	"sync"

	"github.com/Adda-Baaj/khobor/internal/domain"
)

// ErrUnknownRoute is returned by Navigate for paths no view is mounted on.
var ErrUnknownRoute = errors.New("unknown route")

// DefaultKeyword is searched by the all-news view when no keyword was entered.
const DefaultKeyword = "world"

// Options tune an App.
type Options struct {
	// PageSizes per feed; missing feeds leave the size to the proxy.
	PageSizes map[domain.Feed]int
	// OnStale is called with the feed of every discarded response.
	OnStale func(domain.Feed)
}

// App is one browsing session: a header, a view per feed, and the current route.
type App struct {
	root   *DocumentRoot
	clicks *ClickBus
	header *Header
	views  map[domain.Feed]*View

	mu      sync.Mutex
	current Route
}

func NewApp(fetcher Fetcher, opts Options) *App {
	root := &DocumentRoot{}
	clicks := NewClickBus()
	a := &App{
		root:    root,
		clicks:  clicks,
		header:  NewHeader(root, clicks),
		views:   make(map[domain.Feed]*View, 3),
		current: Route{Feed: domain.FeedAll},
	}
	for _, feed := range []domain.Feed{domain.FeedAll, domain.FeedCategory, domain.FeedCountry} {
		v := NewView(feed, opts.PageSizes[feed], fetcher)
		if opts.OnStale != nil {
			v.OnStale(opts.OnStale)
		}
		a.views[feed] = v
	}
	return a
}

func (a *App) Header() *Header     { return a.header }
func (a *App) Root() *DocumentRoot { return a.root }
func (a *App) Clicks() *ClickBus   { return a.clicks }

// View returns the view mounted for feed, or nil.
func (a *App) View(feed domain.Feed) *View { return a.views[feed] }

// Current returns the last route navigated to.
func (a *App) Current() Route {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

// Navigate switches to path and loads its view. keyword is only used by the
// all-news view and defaults to DefaultKeyword. It returns the matched route
// with the view state.
func (a *App) Navigate(ctx context.Context, path, keyword string, page int) (Route, ViewState, error) {
	route, ok := Match(path)
	if !ok {
		return Route{}, ViewState{}, ErrUnknownRoute
	}

	a.mu.Lock()
	a.current = route
	a.mu.Unlock()

	state, err := a.views[route.Feed].Load(ctx, route.Filter(keyword), page)
	return route, state, err
}

// Close releases the header subscription.
func (a *App) Close() {
	a.header.Close()
}

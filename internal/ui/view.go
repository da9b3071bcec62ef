package ui

import (
	"context"
	"errors"
	"sync"

	"github.com/Adda-Baaj/khobor/internal/domain"
)

// ErrStaleResponse is returned by Load when a newer load started before this one finished.
// The view state was left untouched.
var ErrStaleResponse = errors.New("stale response discarded")

// Status of a view's current load.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusErrored
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusErrored:
		return "errored"
	default:
		return "idle"
	}
}

// Fetcher retrieves one page of articles for a query.
type Fetcher interface {
	Fetch(ctx context.Context, q domain.Query) (domain.ArticlePage, error)
}

// ViewState is a snapshot of a view.
type ViewState struct {
	Feed     domain.Feed
	Filter   string
	Page     int
	PageSize int
	Status   Status
	Cards    []Card
	Total    int
	HasNext  bool
	Err      string
}

func (s ViewState) HasPrev() bool { return s.Page > 1 }

// Query returns the request the state describes.
func (s ViewState) Query() domain.Query {
	return domain.Query{Feed: s.Feed, Filter: s.Filter, Page: s.Page, PageSize: s.PageSize}
}

// View loads one feed. Every Load takes a new token; only the response
// carrying the latest token may change the state.
type View struct {
	feed     domain.Feed
	pageSize int
	fetcher  Fetcher
	onStale  func(domain.Feed)

	mu    sync.Mutex
	token uint64
	state ViewState
}

// NewView creates an idle view. pageSize 0 leaves the size to the proxy defaults.
func NewView(feed domain.Feed, pageSize int, fetcher Fetcher) *View {
	return &View{
		feed:     feed,
		pageSize: pageSize,
		fetcher:  fetcher,
		state:    ViewState{Feed: feed, PageSize: pageSize},
	}
}

// OnStale registers a hook called whenever a response is discarded.
func (v *View) OnStale(fn func(domain.Feed)) { v.onStale = fn }

func (v *View) Feed() domain.Feed { return v.feed }

// State returns a snapshot.
func (v *View) State() ViewState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshot()
}

func (v *View) snapshot() ViewState {
	s := v.state
	s.Cards = append([]Card(nil), v.state.Cards...)
	return s
}

// Load fetches filter at page (values below 1 become 1). It returns the view
// state after the load, or ErrStaleResponse if a later load superseded it.
func (v *View) Load(ctx context.Context, filter string, page int) (ViewState, error) {
	if page < 1 {
		page = 1
	}

	v.mu.Lock()
	v.token++
	token := v.token
	v.state = ViewState{
		Feed:     v.feed,
		Filter:   filter,
		Page:     page,
		PageSize: v.pageSize,
		Status:   StatusLoading,
	}
	q := v.state.Query()
	v.mu.Unlock()

	res, err := v.fetcher.Fetch(ctx, q)

	v.mu.Lock()
	if token != v.token {
		snap := v.snapshot()
		v.mu.Unlock()
		if v.onStale != nil {
			v.onStale(v.feed)
		}
		return snap, ErrStaleResponse
	}
	defer v.mu.Unlock()

	if err != nil {
		v.state.Status = StatusErrored
		v.state.Err = err.Error()
		return v.snapshot(), nil
	}
	v.state.Status = StatusLoaded
	v.state.Cards = Cards(res.Articles)
	v.state.Total = res.Total
	v.state.HasNext = res.HasMore()
	return v.snapshot(), nil
}

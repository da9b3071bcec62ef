package ui

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Adda-Baaj/khobor/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fetchResult struct {
	page domain.ArticlePage
	err  error
}

// gatedFetcher blocks each call on a per-filter gate so tests can control completion order.
type gatedFetcher struct {
	mu      sync.Mutex
	queries []domain.Query
	gates   map[string]chan fetchResult
	started chan string
}

func newGatedFetcher() *gatedFetcher {
	return &gatedFetcher{gates: make(map[string]chan fetchResult), started: make(chan string, 8)}
}

func (f *gatedFetcher) gate(filter string) chan fetchResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.gates[filter]
	if !ok {
		g = make(chan fetchResult, 1)
		f.gates[filter] = g
	}
	return g
}

func (f *gatedFetcher) Fetch(ctx context.Context, q domain.Query) (domain.ArticlePage, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()
	g := f.gate(q.Filter)
	f.started <- q.Filter
	r := <-g
	return r.page, r.err
}

type staticFetcher struct {
	page domain.ArticlePage
	err  error
	last domain.Query
}

func (f *staticFetcher) Fetch(_ context.Context, q domain.Query) (domain.ArticlePage, error) {
	f.last = q
	return f.page, f.err
}

func TestViewLoadSuccess(t *testing.T) {
	f := &staticFetcher{page: domain.ArticlePage{
		Articles: []domain.Article{{Title: "a"}, {Title: "b"}},
		Offset:   0, Count: 2, Total: 5,
	}}
	v := NewView(domain.FeedCategory, 2, f)
	assert.Equal(t, StatusIdle, v.State().Status)

	s, err := v.Load(context.Background(), "sports", 0)
	require.NoError(t, err)
	assert.Equal(t, StatusLoaded, s.Status)
	assert.Equal(t, 1, s.Page)
	assert.Len(t, s.Cards, 2)
	assert.True(t, s.HasNext)
	assert.False(t, s.HasPrev())
	assert.Equal(t, domain.Query{Feed: domain.FeedCategory, Filter: "sports", Page: 1, PageSize: 2}, f.last)
}

func TestViewLoadFailureIsErrored(t *testing.T) {
	f := &staticFetcher{err: errors.New("Failed to fetch data from the API")}
	v := NewView(domain.FeedAll, 0, f)

	s, err := v.Load(context.Background(), "world", 1)
	require.NoError(t, err)
	assert.Equal(t, StatusErrored, s.Status)
	assert.Equal(t, "Failed to fetch data from the API", s.Err)
	assert.Empty(t, s.Cards)
}

func TestViewPaging(t *testing.T) {
	f := &staticFetcher{page: domain.ArticlePage{Count: 10, Total: 100}}
	v := NewView(domain.FeedAll, 10, f)

	_, err := v.Load(context.Background(), "climate", 1)
	require.NoError(t, err)
	s, err := v.Load(context.Background(), "climate", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Page)
	assert.True(t, s.HasPrev())
	assert.True(t, s.HasNext)
	assert.Equal(t, 10, f.last.Offset())

	s, err = v.Load(context.Background(), "climate", -3)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Page)
	assert.False(t, s.HasPrev())
}

func TestViewDiscardsStaleResponse(t *testing.T) {
	f := newGatedFetcher()
	v := NewView(domain.FeedCountry, 0, f)

	var stale []domain.Feed
	var staleMu sync.Mutex
	v.OnStale(func(feed domain.Feed) {
		staleMu.Lock()
		stale = append(stale, feed)
		staleMu.Unlock()
	})

	type outcome struct {
		state ViewState
		err   error
	}
	first := make(chan outcome, 1)
	go func() {
		s, err := v.Load(context.Background(), "us", 1)
		first <- outcome{s, err}
	}()
	require.Equal(t, "us", <-f.started)

	second := make(chan outcome, 1)
	go func() {
		s, err := v.Load(context.Background(), "in", 1)
		second <- outcome{s, err}
	}()
	require.Equal(t, "in", <-f.started)

	// the newer request completes first
	f.gate("in") <- fetchResult{page: domain.ArticlePage{Articles: []domain.Article{{Title: "india"}}, Count: 1, Total: 1}}
	got := <-second
	require.NoError(t, got.err)
	assert.Equal(t, StatusLoaded, got.state.Status)

	f.gate("us") <- fetchResult{page: domain.ArticlePage{Articles: []domain.Article{{Title: "usa"}}, Count: 1, Total: 1}}
	old := <-first
	assert.ErrorIs(t, old.err, ErrStaleResponse)

	s := v.State()
	assert.Equal(t, "in", s.Filter)
	require.Len(t, s.Cards, 1)
	assert.Equal(t, "india", s.Cards[0].Title)

	staleMu.Lock()
	defer staleMu.Unlock()
	assert.Equal(t, []domain.Feed{domain.FeedCountry}, stale)
}

func TestViewShowsLoadingWhileInFlight(t *testing.T) {
	f := newGatedFetcher()
	v := NewView(domain.FeedAll, 0, f)

	done := make(chan struct{})
	go func() {
		_, _ = v.Load(context.Background(), "world", 1)
		close(done)
	}()
	<-f.started
	assert.Equal(t, StatusLoading, v.State().Status)

	f.gate("world") <- fetchResult{err: errors.New("boom")}
	<-done
	assert.Equal(t, StatusErrored, v.State().Status)
}

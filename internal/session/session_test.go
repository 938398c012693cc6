package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/ui-showcase/internal/autoplay"
	"github.com/ziadkadry99/ui-showcase/internal/catalog"
	"github.com/ziadkadry99/ui-showcase/internal/loader"
	"github.com/ziadkadry99/ui-showcase/internal/loadlog"
	"github.com/ziadkadry99/ui-showcase/internal/panel"
	"github.com/ziadkadry99/ui-showcase/internal/theme"
)

const shellPage = "<html><head><title>UI Components Showcase</title></head><body></body></html>"

type page struct {
	status int
	body   string
}

// siteFetcher serves fixed pages. Paths with a gate block until it closes.
type siteFetcher struct {
	mu    sync.Mutex
	pages map[string]page
	gates map[string]chan struct{}
	calls []string
}

func newSiteFetcher() *siteFetcher {
	return &siteFetcher{
		pages: map[string]page{
			"/c/a.html":         {200, "<html><body>a</body></html>"},
			"/c/b.html":         {200, "<html><body>b</body></html>"},
			"/c/c.html":         {200, "<html><body>c</body></html>"},
			"/c/masked.html":    {200, shellPage},
			"/panels/info.html": {200, `<html><body><div id="moreInfo">info</div><div id="shots">shots</div></body></html>`},
		},
		gates: make(map[string]chan struct{}),
	}
}

func (f *siteFetcher) gate(path string) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{})
	f.gates[path] = ch
	return ch
}

func (f *siteFetcher) Fetch(ctx context.Context, path string) (*loader.Response, error) {
	f.mu.Lock()
	f.calls = append(f.calls, path)
	gate := f.gates[path]
	p, ok := f.pages[path]
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if !ok {
		return &loader.Response{Status: 404, Body: []byte("not found")}, nil
	}
	return &loader.Response{Status: p.status, Body: []byte(p.body)}, nil
}

func (f *siteFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type memRecorder struct {
	mu     sync.Mutex
	events []loadlog.Event
}

func (r *memRecorder) Record(_ context.Context, e loadlog.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *memRecorder) outcomes() []loadlog.Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []loadlog.Outcome
	for _, e := range r.events {
		out = append(out, e.Outcome)
	}
	return out
}

func testCatalog() *catalog.Catalog {
	return catalog.MustNew([]catalog.Category{
		{Name: "landing", Components: []catalog.Descriptor{
			{ID: "a", Name: "A", Path: "/c/a.html"},
			{ID: "b", Name: "B", Path: "/c/b.html"},
			{ID: "c", Name: "C", Path: "/c/c.html"},
		}},
		{Name: "broken", Components: []catalog.Descriptor{
			{ID: "missing", Path: "/c/missing.html"},
			{ID: "masked", Path: "/c/masked.html"},
		}},
		{Name: "empty"},
	})
}

type fixture struct {
	s        *Session
	fetcher  *siteFetcher
	clock    *autoplay.ManualClock
	store    *theme.MemoryStore
	recorder *memRecorder
}

func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()
	f := &fixture{
		fetcher:  newSiteFetcher(),
		clock:    autoplay.NewManualClock(time.Unix(0, 0)),
		store:    theme.NewMemoryStore(),
		recorder: &memRecorder{},
	}
	deps := Deps{
		Catalog:   testCatalog(),
		Loader:    loader.New(f.fetcher, loader.DefaultShellTitle, zerolog.Nop()),
		Extractor: panel.NewExtractor(f.fetcher),
		Panels: []panel.Definition{
			{ID: "moreInfo", Source: "/panels/info.html", ClosedLabel: "Show More Info", OpenLabel: "Show Less Info"},
			{ID: "shots", Source: "/panels/info.html", ClosedLabel: "See Screenshots", OpenLabel: "Hide Screenshots"},
		},
		ThemeStore:       f.store,
		AutoplayInterval: 3 * time.Second,
		Clock:            f.clock,
		Recorder:         f.recorder,
		Logger:           zerolog.Nop(),
	}
	s, err := New(context.Background(), deps, opts)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	f.s = s
	return f
}

func (f *fixture) do(t *testing.T, msg Message) View {
	t.Helper()
	v, err := f.s.Do(context.Background(), msg)
	require.NoError(t, err)
	return v
}

// waitView polls until cond holds for the latest view.
func (f *fixture) waitView(t *testing.T, cond func(View) bool) View {
	t.Helper()
	require.Eventually(t, func() bool { return cond(f.s.View()) }, 2*time.Second, 5*time.Millisecond)
	return f.s.View()
}

func frameMounted(v View) bool { return v.Frame != nil }

func TestNewSelectsDefaultCategory(t *testing.T) {
	f := newFixture(t, Options{})
	v := f.s.View()

	assert.Equal(t, "landing", v.State.Category)
	assert.Equal(t, 0, v.State.Index)
	assert.True(t, v.Loading)
	assert.False(t, v.Affordances.PrevEnabled)
	assert.True(t, v.Affordances.NextEnabled)
	require.Len(t, v.Tabs, 3)
	assert.True(t, v.Tabs[0].Active)
	assert.Equal(t, "A", v.Title)
}

func TestLoadingEndsWhenFrameReports(t *testing.T) {
	f := newFixture(t, Options{})

	v := f.waitView(t, frameMounted)
	assert.True(t, v.Loading, "loading until the frame has initialized")
	assert.Equal(t, "/c/a.html", v.Frame.Src)
	assert.Nil(t, v.Placeholder)

	v = f.do(t, Message{Type: MsgFrameLoaded, RequestID: "other"})
	assert.True(t, v.Loading)

	v = f.do(t, Message{Type: MsgFrameLoaded, RequestID: v.Frame.RequestID})
	assert.False(t, v.Loading)
	assert.True(t, v.Frame.Ready)
}

func TestManualNavigationBoundaries(t *testing.T) {
	f := newFixture(t, Options{})

	v := f.do(t, Message{Type: MsgPrevious})
	assert.Equal(t, 0, v.State.Index)

	f.do(t, Message{Type: MsgNext})
	v = f.do(t, Message{Type: MsgNext})
	assert.Equal(t, 2, v.State.Index)
	assert.False(t, v.Affordances.NextEnabled)

	v = f.do(t, Message{Type: MsgNext})
	assert.Equal(t, 2, v.State.Index)

	v = f.do(t, Message{Type: MsgGoTo, Index: 9})
	assert.Equal(t, 2, v.State.Index)

	v = f.do(t, Message{Type: MsgGoTo, Index: 1})
	assert.Equal(t, 1, v.State.Index)
	assert.Equal(t, 2, v.Affordances.Position)
}

func TestEmptyCategoryIssuesNoRetrieval(t *testing.T) {
	f := newFixture(t, Options{})
	f.waitView(t, frameMounted)
	before := f.fetcher.callCount()

	v := f.do(t, Message{Type: MsgSelectCategory, Category: "empty"})
	require.NotNil(t, v.Placeholder)
	assert.Equal(t, loader.EmptyPlaceholder(), *v.Placeholder)
	assert.False(t, v.Loading)
	assert.Nil(t, v.Frame)
	assert.Equal(t, 0, v.Affordances.Total)

	v = f.do(t, Message{Type: MsgSelectCategory, Category: "nope"})
	require.NotNil(t, v.Placeholder)
	assert.Equal(t, before, f.fetcher.callCount())
}

func TestNotFoundAndMaskedShareAPlaceholder(t *testing.T) {
	f := newFixture(t, Options{InitialCategory: "broken"})

	missing := f.waitView(t, func(v View) bool { return v.Placeholder != nil })
	assert.False(t, missing.Loading)
	assert.Nil(t, missing.Frame)

	f.do(t, Message{Type: MsgNext})
	masked := f.waitView(t, func(v View) bool { return v.Placeholder != nil && v.State.Index == 1 })

	assert.Equal(t, missing.Placeholder.Title, masked.Placeholder.Title)
	assert.Equal(t, "/c/missing.html", missing.Placeholder.Path)
	assert.Equal(t, "/c/masked.html", masked.Placeholder.Path)
	assert.True(t, masked.Placeholder.Retry)

	require.Eventually(t, func() bool { return len(f.recorder.outcomes()) == 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []loadlog.Outcome{loadlog.OutcomeNotFound, loadlog.OutcomeMaskedRedirect}, f.recorder.outcomes())
}

func TestRetryReloadsSameIndex(t *testing.T) {
	f := newFixture(t, Options{InitialCategory: "broken"})
	f.waitView(t, func(v View) bool { return v.Placeholder != nil })
	before := f.fetcher.callCount()

	v := f.do(t, Message{Type: MsgGoTo, Index: 0})
	assert.True(t, v.Loading)
	assert.Nil(t, v.Placeholder)
	f.waitView(t, func(v View) bool { return v.Placeholder != nil })
	assert.Equal(t, before+1, f.fetcher.callCount())
}

func TestStaleLoadIsDropped(t *testing.T) {
	f := newFixture(t, Options{})
	f.waitView(t, frameMounted)

	release := f.fetcher.gate("/c/b.html")
	f.do(t, Message{Type: MsgNext})
	f.do(t, Message{Type: MsgNext})
	v := f.waitView(t, func(v View) bool { return v.Frame != nil && v.Frame.Src == "/c/c.html" })
	current := v.Frame.RequestID

	close(release)
	require.Eventually(t, func() bool { return len(f.recorder.outcomes()) == 3 }, time.Second, 5*time.Millisecond)
	assert.Never(t, func() bool {
		v := f.s.View()
		return v.Frame == nil || v.Frame.Src != "/c/c.html"
	}, 100*time.Millisecond, 5*time.Millisecond)

	v = f.do(t, Message{Type: MsgScrollTop})
	assert.Equal(t, "/c/c.html", v.Frame.Src)
	assert.Equal(t, current, v.Frame.RequestID)
	assert.Equal(t, 2, v.State.Index)
}

func TestAutoplayWraps(t *testing.T) {
	f := newFixture(t, Options{})
	f.do(t, Message{Type: MsgGoTo, Index: 1})

	v := f.do(t, Message{Type: MsgToggleAutoplay})
	assert.True(t, v.Autoplay)
	assert.Equal(t, "Pause", v.PlayLabel)
	require.Equal(t, 1, f.clock.Tickers())

	f.clock.Advance(3 * time.Second)
	f.waitView(t, func(v View) bool { return v.State.Index == 2 })

	f.clock.Advance(3 * time.Second)
	f.waitView(t, func(v View) bool { return v.State.Index == 0 })

	v = f.do(t, Message{Type: MsgToggleAutoplay})
	assert.False(t, v.Autoplay)
	assert.Equal(t, "Play", v.PlayLabel)
	assert.Equal(t, 0, f.clock.Tickers())

	f.clock.Advance(3 * time.Second)
	v = f.do(t, Message{Type: MsgScrollTop})
	assert.Equal(t, 0, v.State.Index)
}

func TestThemeToggleRoundTrip(t *testing.T) {
	f := newFixture(t, Options{})
	f.waitView(t, frameMounted)

	v := f.do(t, Message{Type: MsgToggleTheme})
	assert.Equal(t, "dark", v.Theme)
	assert.Contains(t, v.RootClasses, theme.DarkClass)
	assert.Contains(t, v.Frame.Classes, theme.DarkClass)
	stored, ok, err := f.store.Get(context.Background(), theme.StorageKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "dark", stored)

	// Frames mounted after the toggle start dark.
	f.do(t, Message{Type: MsgNext})
	v = f.waitView(t, func(v View) bool { return v.Frame != nil && v.Frame.Src == "/c/b.html" })
	assert.Contains(t, v.Frame.Classes, theme.DarkClass)

	v = f.do(t, Message{Type: MsgToggleTheme})
	assert.Equal(t, "light", v.Theme)
	assert.NotContains(t, v.Frame.Classes, theme.DarkClass)
	stored, _, _ = f.store.Get(context.Background(), theme.StorageKey)
	assert.Equal(t, "light", stored)
}

func TestRootClassMutationPropagates(t *testing.T) {
	f := newFixture(t, Options{})
	f.waitView(t, frameMounted)

	v := f.do(t, Message{Type: MsgSetRootClass, Class: theme.DarkClass, Present: true})
	assert.Contains(t, v.Frame.Classes, theme.DarkClass)
}

func TestPrefersDarkWithoutStoredValue(t *testing.T) {
	f := newFixture(t, Options{PrefersDark: true})
	v := f.waitView(t, frameMounted)
	assert.Equal(t, "dark", v.Theme)
	assert.Contains(t, v.Frame.Classes, theme.DarkClass)
}

func TestPanelsSingleVisible(t *testing.T) {
	f := newFixture(t, Options{})

	f.do(t, Message{Type: MsgPanelShow, PanelID: "moreInfo"})
	v := f.waitView(t, func(v View) bool { return v.Panels["moreInfo"].Visible })
	assert.Contains(t, v.Panels["moreInfo"].HTML, "info")
	assert.Equal(t, "Show Less Info", v.Triggers[0].Label)

	f.do(t, Message{Type: MsgPanelShow, PanelID: "shots"})
	v = f.waitView(t, func(v View) bool { return v.Panels["shots"].Visible })
	assert.False(t, v.Panels["moreInfo"].Visible)

	v = f.do(t, Message{Type: MsgPanelShow, PanelID: "moreInfo"})
	assert.True(t, v.Panels["moreInfo"].Visible)
	assert.False(t, v.Panels["shots"].Visible)

	v = f.do(t, Message{Type: MsgKey, Key: &KeyEvent{Key: "Escape", Target: "INPUT"}})
	assert.False(t, v.Panels["moreInfo"].Visible)
	assert.Equal(t, "Show More Info", v.Triggers[0].Label)
}

func TestPanelFailureIsTerminal(t *testing.T) {
	f := newFixture(t, Options{})
	f.waitView(t, frameMounted)

	f.do(t, Message{Type: MsgPanelShow, PanelID: "extra", Source: "/panels/none.html"})
	v := f.waitView(t, func(v View) bool { return v.Panels["extra"].Visible })
	assert.True(t, v.Panels["extra"].Failed)
	before := f.fetcher.callCount()

	f.do(t, Message{Type: MsgPanelShow, PanelID: "extra"})
	v = f.do(t, Message{Type: MsgPanelShow, PanelID: "extra"})
	assert.True(t, v.Panels["extra"].Visible)
	assert.Equal(t, before, f.fetcher.callCount())
}

func TestOneShotEffects(t *testing.T) {
	f := newFixture(t, Options{})

	v := f.do(t, Message{Type: MsgFullscreen})
	assert.Equal(t, "/c/a.html", v.FullscreenURL)

	v = f.do(t, Message{Type: MsgKey, Key: &KeyEvent{Key: "Home"}})
	assert.True(t, v.ScrollTop)
	assert.Empty(t, v.FullscreenURL)

	v = f.do(t, Message{Type: MsgToggleExpand})
	assert.False(t, v.ScrollTop)
	assert.True(t, v.Expanded)
	assert.Equal(t, "Collapse", v.ExpandLabel)
}

func TestSubscribeReceivesLatest(t *testing.T) {
	f := newFixture(t, Options{})
	views, cancel := f.s.Subscribe()
	defer cancel()

	<-views
	f.do(t, Message{Type: MsgToggleExpand})
	timeout := time.After(time.Second)
	for {
		select {
		case v := <-views:
			if v.Expanded {
				return
			}
		case <-timeout:
			t.Fatal("expanded view not published")
		}
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	f := newFixture(t, Options{})
	views, _ := f.s.Subscribe()
	f.do(t, Message{Type: MsgToggleAutoplay})

	f.s.Close()
	f.s.Close()

	assert.Equal(t, 0, f.clock.Tickers())
	assert.ErrorIs(t, f.s.Dispatch(context.Background(), Message{Type: MsgNext}), ErrClosed)
	_, err := f.s.Do(context.Background(), Message{Type: MsgNext})
	assert.ErrorIs(t, err, ErrClosed)

	for range views {
	}
}

func TestUnknownMessageRejected(t *testing.T) {
	f := newFixture(t, Options{})
	err := f.s.Dispatch(context.Background(), Message{Type: "explode"})
	assert.ErrorIs(t, err, ErrUnknownMessage)
}

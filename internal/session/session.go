// Package session runs one showcase viewer: navigation, content loading,
// autoplay, theme and panels, serialized through a single task queue.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ziadkadry99/ui-showcase/internal/autoplay"
	"github.com/ziadkadry99/ui-showcase/internal/catalog"
	"github.com/ziadkadry99/ui-showcase/internal/loader"
	"github.com/ziadkadry99/ui-showcase/internal/loadlog"
	"github.com/ziadkadry99/ui-showcase/internal/nav"
	"github.com/ziadkadry99/ui-showcase/internal/panel"
	"github.com/ziadkadry99/ui-showcase/internal/theme"
)

// SlideFrameID identifies the frame that hosts the active component.
const SlideFrameID = "slide"

const queueSize = 64

var (
	// ErrClosed is returned when dispatching to a closed session.
	ErrClosed = errors.New("session closed")
	// ErrUnknownMessage is returned for message types clients may not send.
	ErrUnknownMessage = errors.New("unknown message type")
)

// Recorder receives the outcome of every content load.
type Recorder interface {
	Record(ctx context.Context, e loadlog.Event) error
}

// Deps are the collaborators a session is built from.
type Deps struct {
	Catalog          *catalog.Catalog
	Loader           *loader.Loader
	Extractor        *panel.Extractor
	Panels           []panel.Definition
	ThemeStore       theme.Store
	HostOrigin       string
	AutoplayInterval time.Duration
	Clock            autoplay.Clock
	Recorder         Recorder
	Logger           zerolog.Logger
}

// Options are per-client startup values.
type Options struct {
	PrefersDark     bool
	InitialCategory string
}

type task struct {
	msg   any
	reply chan View
}

// effects are one-shot view fields produced by a single message.
type effects struct {
	fullscreenURL string
	scrollTop     bool
}

// Session is a single viewer. All state below the queue is owned by the loop
// goroutine.
type Session struct {
	id      string
	deps    Deps
	logger  zerolog.Logger
	catalog *catalog.Catalog

	queue     chan task
	ctx       context.Context
	cancel    context.CancelFunc
	done      chan struct{}
	closeOnce sync.Once
	fetches   sync.WaitGroup

	nav      *nav.Machine
	bridge   *theme.Bridge
	panels   *panel.Loader
	autoplay *autoplay.Timer

	requestID   string
	current     *catalog.Descriptor
	loading     bool
	frame       *theme.DocumentFrame
	frameReady  bool
	frameResult theme.Result
	placeholder *loader.Placeholder
	expanded    bool

	revision uint64
	view     atomic.Pointer[View]

	subsMu  sync.Mutex
	subs    map[int]chan View
	nextSub int
	closed  bool
}

// New starts a session. ctx bounds only the startup work; the session lives
// until Close.
func New(ctx context.Context, deps Deps, opts Options) (*Session, error) {
	if deps.Catalog == nil || deps.Loader == nil {
		return nil, errors.New("session requires a catalog and a loader")
	}
	if deps.ThemeStore == nil {
		deps.ThemeStore = theme.NewMemoryStore()
	}
	if deps.Clock == nil {
		deps.Clock = autoplay.RealClock{}
	}
	if deps.AutoplayInterval <= 0 {
		deps.AutoplayInterval = autoplay.DefaultInterval
	}

	id := uuid.NewString()
	logger := deps.Logger.With().Str("session", id).Logger()

	bridge, err := theme.NewBridge(ctx, deps.ThemeStore, opts.PrefersDark, logger)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	lifetime, cancel := context.WithCancel(context.Background())
	s := &Session{
		id:      id,
		deps:    deps,
		logger:  logger,
		catalog: deps.Catalog,
		queue:   make(chan task, queueSize),
		ctx:     lifetime,
		cancel:  cancel,
		done:    make(chan struct{}),
		nav:     nav.New(deps.Catalog),
		bridge:  bridge,
		panels:  panel.NewLoader(deps.Extractor, deps.Panels, logger),
		subs:    make(map[int]chan View),
	}
	s.autoplay = autoplay.New(deps.AutoplayInterval, deps.Clock, func() {
		s.tryPost(Message{Type: MsgTick})
	})

	s.apply(s.nav.SelectCategory(initialCategory(deps.Catalog, opts.InitialCategory)))
	s.publish(effects{})

	go s.run()
	logger.Debug().Str("category", s.nav.State().Category).Msg("session started")
	return s, nil
}

func initialCategory(c *catalog.Catalog, requested string) string {
	if requested != "" {
		return requested
	}
	if c.HasCategory(catalog.DefaultCategory) {
		return catalog.DefaultCategory
	}
	if names := c.Categories(); len(names) > 0 {
		return names[0]
	}
	return ""
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Done is closed once the session loop has stopped.
func (s *Session) Done() <-chan struct{} { return s.done }

// View returns the most recently published view.
func (s *Session) View() View { return *s.view.Load() }

// Dispatch queues msg without waiting for it to be handled.
func (s *Session) Dispatch(ctx context.Context, msg Message) error {
	if !msg.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownMessage, msg.Type)
	}
	return s.enqueue(ctx, task{msg: msg})
}

// Do queues msg and returns the view published after handling it.
func (s *Session) Do(ctx context.Context, msg Message) (View, error) {
	if !msg.Valid() {
		return View{}, fmt.Errorf("%w: %q", ErrUnknownMessage, msg.Type)
	}
	reply := make(chan View, 1)
	if err := s.enqueue(ctx, task{msg: msg, reply: reply}); err != nil {
		return View{}, err
	}
	select {
	case v := <-reply:
		return v, nil
	case <-s.done:
		return View{}, ErrClosed
	case <-ctx.Done():
		return View{}, ctx.Err()
	}
}

// Subscribe returns a channel that always holds the latest view. Slow readers
// skip intermediate views. The channel is closed by cancel or Close.
func (s *Session) Subscribe() (<-chan View, func()) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	ch := make(chan View, 1)
	if s.closed {
		close(ch)
		return ch, func() {}
	}
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	ch <- s.View()

	return ch, func() {
		s.subsMu.Lock()
		defer s.subsMu.Unlock()
		if c, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(c)
		}
	}
}

// Close stops autoplay, abandons in-flight loads and waits for the loop to
// exit. It is safe to call more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.cancel()
		<-s.done
		s.autoplay.Stop()
		s.fetches.Wait()

		s.subsMu.Lock()
		s.closed = true
		for id, ch := range s.subs {
			delete(s.subs, id)
			close(ch)
		}
		s.subsMu.Unlock()
		s.logger.Debug().Msg("session closed")
	})
}

func (s *Session) enqueue(ctx context.Context, t task) error {
	if s.ctx.Err() != nil {
		return ErrClosed
	}
	select {
	case s.queue <- t:
		return nil
	case <-s.ctx.Done():
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// post re-enters the queue from a background goroutine.
func (s *Session) post(msg any) {
	select {
	case s.queue <- task{msg: msg}:
	case <-s.ctx.Done():
	}
}

// tryPost never blocks; a tick dropped on a full queue is simply skipped.
func (s *Session) tryPost(msg any) {
	select {
	case s.queue <- task{msg: msg}:
	default:
		s.logger.Debug().Msg("queue full, dropping tick")
	}
}

func (s *Session) run() {
	defer close(s.done)
	for {
		select {
		case <-s.ctx.Done():
			return
		case t := <-s.queue:
			fx := s.handle(t.msg)
			v := s.publish(fx)
			if t.reply != nil {
				t.reply <- v
			}
		}
	}
}

func (s *Session) handle(msg any) effects {
	switch m := msg.(type) {
	case loadDone:
		s.onLoadDone(m)
	case panelDone:
		s.panels.Mount(m.panelID, m.html, m.failed)
	case Message:
		return s.handleMessage(m)
	}
	return effects{}
}

func (s *Session) handleMessage(m Message) effects {
	switch m.Type {
	case MsgSelectCategory:
		s.apply(s.nav.SelectCategory(m.Category))
	case MsgGoTo:
		s.apply(s.nav.GoTo(m.Index))
	case MsgNext:
		s.apply(s.nav.Next())
	case MsgPrevious:
		s.apply(s.nav.Previous())
	case MsgTick:
		// A tick queued before Stop can still arrive.
		if s.autoplay.Running() {
			s.apply(s.nav.Advance())
		}
	case MsgToggleAutoplay:
		running := s.autoplay.Toggle()
		s.logger.Debug().Bool("running", running).Msg("autoplay toggled")
	case MsgToggleTheme:
		if _, err := s.bridge.Toggle(s.ctx); err != nil {
			s.logger.Error().Err(err).Msg("persisting theme preference")
		}
	case MsgSetRootClass:
		s.bridge.SetRootClass(m.Class, m.Present)
	case MsgPanelShow:
		s.showPanel(m.PanelID, m.Source)
	case MsgEscape:
		s.panels.Escape()
	case MsgFrameLoaded:
		s.onFrameLoaded(m.RequestID)
	case MsgToggleExpand:
		s.expanded = !s.expanded
	case MsgFullscreen:
		if s.current != nil {
			return effects{fullscreenURL: s.current.Path}
		}
	case MsgScrollTop:
		return effects{scrollTop: true}
	case MsgKey:
		var fx effects
		if m.Key == nil {
			return fx
		}
		for _, next := range ResolveKey(*m.Key) {
			r := s.handleMessage(next)
			fx.scrollTop = fx.scrollTop || r.scrollTop
			if r.fullscreenURL != "" {
				fx.fullscreenURL = r.fullscreenURL
			}
		}
		return fx
	}
	return effects{}
}

// apply carries out a navigation transition.
func (s *Session) apply(tr nav.Transition) {
	switch {
	case tr.Empty:
		s.requestID = ""
		s.current = nil
		s.loading = false
		s.unmountFrame()
		ph := loader.EmptyPlaceholder()
		s.placeholder = &ph
	case tr.Load:
		s.startLoad(tr.Descriptor)
	}
}

// startLoad enters the loading state and fetches d in the background. An
// earlier load still in flight is left to finish; its result is dropped.
func (s *Session) startLoad(d catalog.Descriptor) {
	reqID := uuid.NewString()
	s.requestID = reqID
	s.current = &d
	s.loading = true
	s.placeholder = nil
	s.unmountFrame()

	s.fetches.Add(1)
	go func() {
		defer s.fetches.Done()
		content, err := s.deps.Loader.Load(s.ctx, d)
		if errors.Is(err, context.Canceled) {
			return
		}
		s.record(d, err)
		done := loadDone{requestID: reqID, err: err}
		if content != nil {
			done.body = content.Body
		}
		s.post(done)
	}()
}

func (s *Session) onLoadDone(m loadDone) {
	if m.requestID != s.requestID || s.current == nil {
		s.logger.Debug().Str("request", m.requestID).Msg("dropping stale load")
		return
	}
	d := *s.current
	if m.err != nil {
		ph := loader.PlaceholderFor(m.err, d.Path)
		s.placeholder = &ph
		s.loading = false
		return
	}
	s.frame = theme.NewDocumentFrame(SlideFrameID, d.Path, s.deps.HostOrigin)
	s.frameResult = s.bridge.Mount(s.frame)
}

// onFrameLoaded ends the loading state once the client reports the frame has
// initialized, and re-applies the theme to the fresh document.
func (s *Session) onFrameLoaded(reqID string) {
	if s.frame == nil || reqID != s.requestID {
		return
	}
	s.frameReady = true
	s.loading = false
	s.frameResult = s.bridge.Mount(s.frame)
}

func (s *Session) unmountFrame() {
	if s.frame == nil {
		return
	}
	s.bridge.Unmount(s.frame.ID())
	s.frame = nil
	s.frameReady = false
}

// showPanel is panel.Loader.Show with the fetch moved off the loop.
func (s *Session) showPanel(id, source string) {
	action, source := s.panels.Request(id, source)
	if action != panel.ActionFetch {
		return
	}
	s.fetches.Add(1)
	go func() {
		defer s.fetches.Done()
		markup, failed := s.panels.Fetch(s.ctx, id, source)
		s.post(panelDone{panelID: id, html: markup, failed: failed})
	}()
}

func (s *Session) record(d catalog.Descriptor, err error) {
	if s.deps.Recorder == nil {
		return
	}
	e := loadlog.Event{
		SessionID:   s.id,
		ComponentID: d.ID,
		Path:        d.Path,
		Outcome:     outcomeOf(err),
	}
	if rerr := s.deps.Recorder.Record(s.ctx, e); rerr != nil && s.ctx.Err() == nil {
		s.logger.Warn().Err(rerr).Str("component", d.ID).Msg("recording load event")
	}
}

func outcomeOf(err error) loadlog.Outcome {
	switch {
	case err == nil:
		return loadlog.OutcomeOK
	case errors.Is(err, loader.ErrMaskedRedirect):
		return loadlog.OutcomeMaskedRedirect
	case errors.Is(err, loader.ErrElementMissing):
		return loadlog.OutcomeElementMissing
	default:
		return loadlog.OutcomeNotFound
	}
}

// publish snapshots the loop-owned state and fans it out to subscribers.
func (s *Session) publish(fx effects) View {
	s.revision++
	v := s.snapshot()
	v.Revision = s.revision
	v.FullscreenURL = fx.fullscreenURL
	v.ScrollTop = fx.scrollTop
	s.view.Store(&v)

	s.subsMu.Lock()
	for _, ch := range s.subs {
		select {
		case ch <- v:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- v
		}
	}
	s.subsMu.Unlock()
	return v
}

func (s *Session) snapshot() View {
	state := s.nav.State()
	v := View{
		SessionID:   s.id,
		State:       state,
		Loading:     s.loading,
		Affordances: s.nav.Affordances(),
		Autoplay:    s.autoplay.Running(),
		PlayLabel:   "Play",
		Theme:       s.bridge.Mode(),
		RootClasses: s.bridge.RootClasses(),
		Panels:      s.panels.Registry().Entries(),
		Triggers:    s.panels.Triggers(),
		Expanded:    s.expanded,
		ExpandLabel: "Expand",
		Placeholder: s.placeholder,
	}
	if v.Autoplay {
		v.PlayLabel = "Pause"
	}
	if s.expanded {
		v.ExpandLabel = "Collapse"
	}
	for _, name := range s.catalog.Categories() {
		v.Tabs = append(v.Tabs, Tab{Name: name, Active: name == state.Category})
	}
	if s.current != nil {
		d := *s.current
		v.Component = &d
		v.Title = d.Name
	}
	if s.frame != nil {
		v.Frame = &FrameView{
			ID:        s.frame.ID(),
			Src:       s.frame.Src(),
			RequestID: s.requestID,
			Classes:   s.frame.Classes(),
			Ready:     s.frameReady,
			Blocked:   s.frameResult == theme.Blocked,
		}
	}
	return v
}

package panel

// Action tells the caller what a show request requires.
type Action int

const (
	// ActionNone means the panel id is unknown.
	ActionNone Action = iota
	// ActionHidden means the panel was visible and is now closed.
	ActionHidden
	// ActionRevealed means the cached panel is now visible.
	ActionRevealed
	// ActionFetch means the panel has never been loaded; the caller must fetch
	// it and call Mount.
	ActionFetch
)

// Entry is the state of one panel.
type Entry struct {
	Loaded  bool   `json:"loaded"`
	Visible bool   `json:"visible"`
	Pending bool   `json:"pending"`
	Failed  bool   `json:"failed"`
	HTML    string `json:"html,omitempty"`
}

// Registry tracks panel state. At most one panel is visible; entries are
// never removed. It is not safe for concurrent use.
type Registry struct {
	entries map[string]*Entry
	visible string
	wanted  string
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*Entry)}
}

// Request handles a show request for id.
func (r *Registry) Request(id string) Action {
	if id == "" {
		return ActionNone
	}
	if r.visible == id {
		r.hide(id)
		return ActionHidden
	}
	if r.visible != "" {
		r.hide(r.visible)
	}

	e := r.entry(id)
	if e.Loaded {
		e.Visible = true
		r.visible = id
		r.wanted = ""
		return ActionRevealed
	}
	r.wanted = id
	if e.Pending {
		return ActionNone
	}
	e.Pending = true
	return ActionFetch
}

// Mount stores fetched markup for id and reveals it if it is still the most
// recently requested panel. failed marks an error placeholder; it is still
// considered loaded and will not be fetched again.
func (r *Registry) Mount(id, html string, failed bool) bool {
	e := r.entry(id)
	e.Pending = false
	e.Loaded = true
	e.Failed = failed
	e.HTML = html
	if r.wanted != id || r.visible != "" {
		return false
	}
	e.Visible = true
	r.visible = id
	r.wanted = ""
	return true
}

// Escape closes the visible panel, if any.
func (r *Registry) Escape() (string, bool) {
	r.wanted = ""
	if r.visible == "" {
		return "", false
	}
	id := r.visible
	r.hide(id)
	return id, true
}

// Visible returns the id of the visible panel, or "".
func (r *Registry) Visible() string { return r.visible }

// Get returns a copy of the entry for id.
func (r *Registry) Get(id string) (Entry, bool) {
	e, ok := r.entries[id]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Entries returns a copy of every entry.
func (r *Registry) Entries() map[string]Entry {
	out := make(map[string]Entry, len(r.entries))
	for id, e := range r.entries {
		out[id] = *e
	}
	return out
}

func (r *Registry) entry(id string) *Entry {
	e, ok := r.entries[id]
	if !ok {
		e = &Entry{}
		r.entries[id] = e
	}
	return e
}

func (r *Registry) hide(id string) {
	if e, ok := r.entries[id]; ok {
		e.Visible = false
	}
	if r.visible == id {
		r.visible = ""
	}
}

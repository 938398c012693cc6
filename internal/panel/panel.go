// Package panel lazily loads auxiliary "more info" panels, keeping at most
// one of them open.
package panel

import (
	"context"

	"github.com/rs/zerolog"
)

// Definition describes a panel and the control that opens it.
type Definition struct {
	ID          string `koanf:"id" yaml:"id" json:"id"`
	Source      string `koanf:"source" yaml:"source" json:"source"`
	ClosedLabel string `koanf:"closed_label" yaml:"closed_label" json:"closed_label"`
	OpenLabel   string `koanf:"open_label" yaml:"open_label" json:"open_label"`
	ClosedIcon  string `koanf:"closed_icon" yaml:"closed_icon" json:"closed_icon"`
	OpenIcon    string `koanf:"open_icon" yaml:"open_icon" json:"open_icon"`
}

// Trigger is the rendered state of the control that opens a panel.
type Trigger struct {
	PanelID string `json:"panel_id"`
	Label   string `json:"label"`
	Icon    string `json:"icon"`
	Active  bool   `json:"active"`
}

// DefaultDefinitions are the showcase's info and screenshots panels.
func DefaultDefinitions() []Definition {
	return []Definition{
		{
			ID:          "moreInfo",
			Source:      "/components/appComponents/info.html",
			ClosedLabel: "Show More Info",
			OpenLabel:   "Show Less Info",
			ClosedIcon:  "fa-info-circle",
			OpenIcon:    "fa-chevron-up",
		},
		{
			ID:          "screenshotsContainer",
			Source:      "/components/appComponents/screenshots.html",
			ClosedLabel: "See Screenshots",
			OpenLabel:   "Hide Screenshots",
			ClosedIcon:  "fa-images",
			OpenIcon:    "fa-times",
		},
	}
}

// Loader combines a Registry with an Extractor. Show runs a request to
// completion; callers that fetch in the background use Request, Fetch and
// Mount instead.
type Loader struct {
	registry  *Registry
	extractor *Extractor
	defs      []Definition
	logger    zerolog.Logger
}

// NewLoader creates a Loader for the given panel definitions.
func NewLoader(extractor *Extractor, defs []Definition, logger zerolog.Logger) *Loader {
	return &Loader{registry: NewRegistry(), extractor: extractor, defs: defs, logger: logger}
}

// Registry exposes the underlying state.
func (l *Loader) Registry() *Registry { return l.registry }

// Definition returns the definition of id.
func (l *Loader) Definition(id string) (Definition, bool) {
	return Lookup(l.defs, id)
}

// Show toggles panel id. An empty sourcePath uses the definition's source.
// Load failures mount an error placeholder; they are never retried.
func (l *Loader) Show(ctx context.Context, id, sourcePath string) Action {
	action, source := l.Request(id, sourcePath)
	if action == ActionFetch {
		markup, failed := l.Fetch(ctx, id, source)
		l.Mount(id, markup, failed)
	}
	return action
}

// Request records a show request for id and returns the action it needs
// along with the source to fetch from, resolved from the definition when
// sourcePath is empty.
func (l *Loader) Request(id, sourcePath string) (Action, string) {
	if sourcePath == "" {
		if def, ok := l.Definition(id); ok {
			sourcePath = def.Source
		}
	}
	return l.registry.Request(id), sourcePath
}

// Mount stores the result of a Fetch. It reports whether the panel was
// revealed.
func (l *Loader) Mount(id, markup string, failed bool) bool {
	return l.registry.Mount(id, markup, failed)
}

// Fetch extracts the panel markup, falling back to the error placeholder.
// It does not touch the registry and may run on any goroutine.
func (l *Loader) Fetch(ctx context.Context, id, sourcePath string) (string, bool) {
	if sourcePath == "" || l.extractor == nil {
		l.logger.Error().Str("panel", id).Msg("panel has no source")
		return ErrorHTML(id), true
	}
	markup, err := l.extractor.Extract(ctx, id, sourcePath)
	if err != nil {
		l.logger.Error().Err(err).Str("panel", id).Msg("panel loading failed")
		return ErrorHTML(id), true
	}
	return markup, false
}

// Escape closes the visible panel.
func (l *Loader) Escape() bool {
	_, closed := l.registry.Escape()
	return closed
}

// Triggers renders the label and icon of every defined panel's control.
func (l *Loader) Triggers() []Trigger {
	return Triggers(l.defs, l.registry)
}

// Triggers renders control state for defs against r.
func Triggers(defs []Definition, r *Registry) []Trigger {
	out := make([]Trigger, 0, len(defs))
	for _, def := range defs {
		open := r.Visible() == def.ID
		t := Trigger{PanelID: def.ID, Label: def.ClosedLabel, Icon: def.ClosedIcon, Active: open}
		if open {
			t.Label, t.Icon = def.OpenLabel, def.OpenIcon
		}
		out = append(out, t)
	}
	return out
}

// Lookup returns the definition with the given id.
func Lookup(defs []Definition, id string) (Definition, bool) {
	for _, def := range defs {
		if def.ID == id {
			return def, true
		}
	}
	return Definition{}, false
}

package session

import (
	"github.com/ziadkadry99/ui-showcase/internal/catalog"
	"github.com/ziadkadry99/ui-showcase/internal/loader"
	"github.com/ziadkadry99/ui-showcase/internal/nav"
	"github.com/ziadkadry99/ui-showcase/internal/panel"
)

// View is an immutable snapshot of a session, pushed to the client after
// every handled message.
type View struct {
	SessionID   string                 `json:"session_id"`
	Revision    uint64                 `json:"revision"`
	Tabs        []Tab                  `json:"tabs"`
	State       nav.State              `json:"state"`
	Title       string                 `json:"title"`
	Component   *catalog.Descriptor    `json:"component,omitempty"`
	Loading     bool                   `json:"loading"`
	Frame       *FrameView             `json:"frame,omitempty"`
	Placeholder *loader.Placeholder    `json:"placeholder,omitempty"`
	Affordances nav.Affordances        `json:"affordances"`
	Autoplay    bool                   `json:"autoplay"`
	PlayLabel   string                 `json:"play_label"`
	Theme       string                 `json:"theme"`
	RootClasses []string               `json:"root_classes"`
	Panels      map[string]panel.Entry `json:"panels"`
	Triggers    []panel.Trigger        `json:"triggers"`
	Expanded    bool                   `json:"expanded"`
	ExpandLabel string                 `json:"expand_label"`

	// One-shot effects: set only in the view produced by the triggering message.
	FullscreenURL string `json:"fullscreen_url,omitempty"`
	ScrollTop     bool   `json:"scroll_top,omitempty"`
}

// Tab is a category tab.
type Tab struct {
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// FrameView is the embedded frame for the active slide.
type FrameView struct {
	ID        string   `json:"id"`
	Src       string   `json:"src"`
	RequestID string   `json:"request_id"`
	Classes   []string `json:"classes"`
	Ready     bool     `json:"ready"`
	Blocked   bool     `json:"blocked,omitempty"`
}

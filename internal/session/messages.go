package session

// MessageType names a user intent or internal event handled by a session.
type MessageType string

const (
	MsgSelectCategory MessageType = "select_category"
	MsgGoTo           MessageType = "go_to"
	MsgNext           MessageType = "next"
	MsgPrevious       MessageType = "previous"
	MsgTick           MessageType = "tick"
	MsgToggleAutoplay MessageType = "toggle_autoplay"
	MsgToggleTheme    MessageType = "toggle_theme"
	MsgSetRootClass   MessageType = "set_root_class"
	MsgPanelShow      MessageType = "panel_show"
	MsgEscape         MessageType = "escape"
	MsgKey            MessageType = "key"
	MsgFrameLoaded    MessageType = "frame_loaded"
	MsgToggleExpand   MessageType = "toggle_expand"
	MsgFullscreen     MessageType = "fullscreen"
	MsgScrollTop      MessageType = "scroll_top"
)

// Message is one entry of a session's task queue. Only the fields relevant to
// Type are read.
type Message struct {
	Type      MessageType `json:"type"`
	Category  string      `json:"category,omitempty"`
	Index     int         `json:"index,omitempty"`
	PanelID   string      `json:"panel_id,omitempty"`
	Source    string      `json:"source,omitempty"`
	Class     string      `json:"class,omitempty"`
	Present   bool        `json:"present,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
	Key       *KeyEvent   `json:"key,omitempty"`
}

// Valid reports whether the message type is one clients may send.
func (m Message) Valid() bool {
	switch m.Type {
	case MsgSelectCategory, MsgGoTo, MsgNext, MsgPrevious, MsgToggleAutoplay,
		MsgToggleTheme, MsgSetRootClass, MsgPanelShow, MsgEscape, MsgKey,
		MsgFrameLoaded, MsgToggleExpand, MsgFullscreen, MsgScrollTop:
		return true
	}
	return false
}

// loadDone carries a finished component load back into the queue.
type loadDone struct {
	requestID string
	body      []byte
	err       error
}

// panelDone carries a finished panel fetch back into the queue.
type panelDone struct {
	panelID string
	html    string
	failed  bool
}

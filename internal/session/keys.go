package session

import "strings"

// KeyEvent is a keydown reported by the client.
type KeyEvent struct {
	Key    string `json:"key"`
	Ctrl   bool   `json:"ctrl,omitempty"`
	Meta   bool   `json:"meta,omitempty"`
	Shift  bool   `json:"shift,omitempty"`
	Alt    bool   `json:"alt,omitempty"`
	Target string `json:"target,omitempty"` // tag name of the focused element
}

// inTextInput reports whether focus is inside an editable field.
func (k KeyEvent) inTextInput() bool {
	switch strings.ToUpper(k.Target) {
	case "INPUT", "TEXTAREA":
		return true
	}
	return false
}

// ResolveKey maps a key press to the messages it triggers. Escape always
// closes the open panel; everything else is ignored while typing.
func ResolveKey(k KeyEvent) []Message {
	if k.Key == "Escape" {
		return []Message{{Type: MsgEscape}}
	}
	if k.inTextInput() {
		return nil
	}
	switch {
	case (k.Ctrl || k.Meta) && strings.EqualFold(k.Key, "t"):
		return []Message{{Type: MsgToggleTheme}}
	case k.Key == "Home":
		return []Message{{Type: MsgScrollTop}}
	case k.Key == "ArrowLeft" && !k.Ctrl && !k.Meta:
		return []Message{{Type: MsgPrevious}}
	case k.Key == "ArrowRight" && !k.Ctrl && !k.Meta:
		return []Message{{Type: MsgNext}}
	}
	return nil
}

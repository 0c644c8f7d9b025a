package bridge

// MessageType identifies a protocol message.
type MessageType string

const (
	TypeHashChange MessageType = "hashchange"
	TypeInit       MessageType = "init"
	TypeLocation   MessageType = "location"
	TypeRender     MessageType = "render"
	TypeClear      MessageType = "clear"
	TypeScrollTop  MessageType = "scrollTop"
	TypeHighlight  MessageType = "highlight"
)

// Message is one protocol frame in either direction.
type Message struct {
	Type   MessageType `json:"type"`
	Path   string      `json:"path,omitempty"`
	Silent bool        `json:"silent,omitempty"`
	HTML   string      `json:"html,omitempty"`
	Href   string      `json:"href,omitempty"`
}

package remote

import "encoding/json"

type MessageType string

const (
	MsgSnapshot MessageType = "snapshot"
	MsgDelta    MessageType = "delta"
	MsgError    MessageType = "error"
)

// Message is the outbound wire envelope. Seq increases by one per message
// sent, so followers can detect gaps and request nothing — they just take
// the next snapshot.
type Message struct {
	Type    MessageType `json:"type"`
	Seq     uint64      `json:"seq"`
	Payload interface{} `json:"payload"`
}

// Envelope is the inbound shape used by followers: payload left raw until
// the type is known.
type Envelope struct {
	Type    MessageType     `json:"type"`
	Seq     uint64          `json:"seq"`
	Payload json.RawMessage `json:"payload"`
}

// SnapshotPayload carries the full visibility state plus the declared
// target order.
type SnapshotPayload struct {
	Targets    []string        `json:"targets"`
	Visibility map[string]bool `json:"visibility"`
}

// DeltaPayload carries only the entries whose flag changed.
type DeltaPayload struct {
	Changes map[string]bool `json:"changes"`
}

package models

import "encoding/json"

// -----------------------------------------------------------------------------
// Push channel framing
// -----------------------------------------------------------------------------

// MPushMessage is the tagged envelope for every inbound push frame. Data stays
// raw until the tag is matched, so unknown event types cost nothing to skip.
type MPushMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Known push event types.
const (
	PushPositionUpdate = "position_update"
)

package dbutil

import (
	"encoding/json"
	"fmt"

	"github.com/arkade-os/ledgerd/internal/core/domain"
)

// DeserializeEvent decodes a JSON encoded ledger event into its concrete type
// by looking at the Type field.
func DeserializeEvent(buf []byte) (domain.Event, error) {
	var eventType struct {
		Type domain.EventType
	}

	if err := json.Unmarshal(buf, &eventType); err != nil {
		return nil, err
	}

	var event domain.Event
	var err error
	switch eventType.Type {
	case domain.EventTypeAssetCreated:
		event, err = unmarshal[domain.AssetCreated](buf)
	case domain.EventTypeTransfer:
		event, err = unmarshal[domain.Transfer](buf)
	case domain.EventTypeOptIn:
		event, err = unmarshal[domain.OptIn](buf)
	case domain.EventTypeOptOut:
		event, err = unmarshal[domain.OptOut](buf)
	case domain.EventTypeFreeze:
		event, err = unmarshal[domain.Freeze](buf)
	case domain.EventTypeModify:
		event, err = unmarshal[domain.Modify](buf)
	case domain.EventTypeRevoke:
		event, err = unmarshal[domain.Revoke](buf)
	case domain.EventTypeDestruction:
		event, err = unmarshal[domain.Destruction](buf)
	default:
		return nil, fmt.Errorf("unknown event type %d", eventType.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s event: %w", eventType.Type, err)
	}
	return event, nil
}

func unmarshal[T domain.Event](buf []byte) (domain.Event, error) {
	var event T
	if err := json.Unmarshal(buf, &event); err != nil {
		return nil, err
	}
	return event, nil
}

package debezium

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CDCSerializer handles parsing and validation of CDC messages
type CDCSerializer struct {
	IncludeTables []string
	// SkipSnapshots drops "r" events emitted while the connector snapshots
	// existing rows; they describe no change.
	SkipSnapshots bool
}

// IsTableMonitored checks if table should be processed. A trailing "*"
// matches by prefix.
func (s *CDCSerializer) IsTableMonitored(tableName string) bool {
	for _, included := range s.IncludeTables {
		if tableName == included {
			return true
		}
		if prefix, ok := strings.CutSuffix(included, "*"); ok && strings.HasPrefix(tableName, prefix) {
			return true
		}
	}
	return false
}

// ParseCDCEvent deserializes a Kafka message value. Both the bare payload and
// the JSON converter envelope ({"schema": ..., "payload": ...}) are accepted.
func (s *CDCSerializer) ParseCDCEvent(messageValue []byte) (*CDCEvent, error) {
	if len(messageValue) == 0 {
		return nil, fmt.Errorf("empty CDC message (tombstone)")
	}

	var envelope struct {
		Payload json.RawMessage `json:"payload"`
	}
	if err := json.Unmarshal(messageValue, &envelope); err != nil {
		return nil, fmt.Errorf("failed to unmarshal CDC event: %w", err)
	}
	if len(envelope.Payload) > 0 && string(envelope.Payload) != "null" {
		messageValue = envelope.Payload
	}

	var cdcEvent CDCEvent
	if err := json.Unmarshal(messageValue, &cdcEvent); err != nil {
		return nil, fmt.Errorf("failed to unmarshal CDC event: %w", err)
	}

	if err := s.validateCDCEvent(&cdcEvent); err != nil {
		return nil, fmt.Errorf("invalid CDC event: %w", err)
	}

	return &cdcEvent, nil
}

func (s *CDCSerializer) validateCDCEvent(event *CDCEvent) error {
	if event.Source.Table == "" {
		return fmt.Errorf("missing source table")
	}

	switch event.Operation {
	case "c", "u", "r":
		if event.After == nil {
			return fmt.Errorf("missing 'after' data for operation %s", event.Operation)
		}
	case "d":
		if event.Before == nil {
			return fmt.Errorf("missing 'before' data for delete operation")
		}
	case "":
		return fmt.Errorf("missing operation")
	default:
		return fmt.Errorf("invalid operation: %s", event.Operation)
	}

	return nil
}

// ShouldProcessEvent checks if CDC event should be processed based on filtering rules
func (s *CDCSerializer) ShouldProcessEvent(event *CDCEvent) bool {
	if !s.IsTableMonitored(event.Source.Table) {
		return false
	}
	if s.SkipSnapshots && event.Operation == "r" {
		return false
	}
	return true
}

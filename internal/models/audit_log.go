package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// JSONValue is an arbitrary JSON payload stored in a JSON column
type JSONValue map[string]interface{}

// Value implements driver.Valuer
func (j JSONValue) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	b, err := json.Marshal(map[string]interface{}(j))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON value: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (j *JSONValue) Scan(src interface{}) error {
	if src == nil {
		*j = nil
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for JSON value: %T", src)
	}

	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("failed to unmarshal JSON value: %w", err)
	}
	*j = out
	return nil
}

// AuditLog records a domain action for the audit trail
type AuditLog struct {
	ID         string         `db:"id" json:"id"`
	Action     string         `db:"action" json:"action"`
	EntityType string         `db:"entity_type" json:"entity_type"`
	EntityID   string         `db:"entity_id" json:"entity_id"`
	ActorID    sql.NullString `db:"actor_id" json:"actor_id,omitempty"`
	Details    JSONValue      `db:"details" json:"details,omitempty"`
	CreatedAt  time.Time      `db:"created_at" json:"created_at"`
}

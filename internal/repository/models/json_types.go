package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sanjaykhatri/induction-backend/internal/domain"
)

// StringSlice stores a string array as a JSONB column.
type StringSlice []string

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	bytesToParse, err := jsonColumnBytes(value)
	if err != nil {
		return fmt.Errorf("StringSlice: %w", err)
	}
	if bytesToParse == nil {
		*s = StringSlice{}
		return nil
	}
	return json.Unmarshal(bytesToParse, s)
}

// OptionList stores a question's options as a JSONB column.
type OptionList []domain.Option

// Value implements the driver.Valuer interface
func (o OptionList) Value() (driver.Value, error) {
	if o == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(o)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (o *OptionList) Scan(value interface{}) error {
	bytesToParse, err := jsonColumnBytes(value)
	if err != nil {
		return fmt.Errorf("OptionList: %w", err)
	}
	if bytesToParse == nil {
		*o = OptionList{}
		return nil
	}
	return json.Unmarshal(bytesToParse, o)
}

// SnapshotDocument stores a submission's induction snapshot as a JSONB
// column, deserialized to the typed domain struct rather than an untyped
// map so the snapshot shape cannot drift.
type SnapshotDocument domain.Snapshot

// Value implements the driver.Valuer interface
func (d SnapshotDocument) Value() (driver.Value, error) {
	jsonData, err := json.Marshal(domain.Snapshot(d))
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (d *SnapshotDocument) Scan(value interface{}) error {
	bytesToParse, err := jsonColumnBytes(value)
	if err != nil {
		return fmt.Errorf("SnapshotDocument: %w", err)
	}
	if bytesToParse == nil {
		*d = SnapshotDocument{}
		return nil
	}
	return json.Unmarshal(bytesToParse, d)
}

// PayloadDocument stores an answer payload as a JSONB column, keeping the
// scalar-vs-array shape the client submitted.
type PayloadDocument domain.AnswerPayload

// Value implements the driver.Valuer interface
func (d PayloadDocument) Value() (driver.Value, error) {
	jsonData, err := json.Marshal(domain.AnswerPayload(d))
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (d *PayloadDocument) Scan(value interface{}) error {
	bytesToParse, err := jsonColumnBytes(value)
	if err != nil {
		return fmt.Errorf("PayloadDocument: %w", err)
	}
	if bytesToParse == nil {
		*d = PayloadDocument{}
		return nil
	}
	var payload domain.AnswerPayload
	if err := json.Unmarshal(bytesToParse, &payload); err != nil {
		return err
	}
	*d = PayloadDocument(payload)
	return nil
}

// jsonColumnBytes normalizes a scanned JSONB value. NULL, empty and the
// literal "null" all come back as nil.
func jsonColumnBytes(value interface{}) ([]byte, error) {
	if value == nil {
		return nil, nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return nil, errors.New("unsupported column type " + fmt.Sprintf("%T", value))
	}
	if len(b) == 0 || string(b) == "null" {
		return nil, nil
	}
	return b, nil
}

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

// querier is satisfied by both *sql.DB and *sql.Tx so the product helpers
// can run inside the homepage trending transaction.
type querier interface {
	QueryRow(query string, args ...any) *sql.Row
	Query(query string, args ...any) (*sql.Rows, error)
	Exec(query string, args ...any) (sql.Result, error)
}

// encodeJSON marshals a value for a jsonb column. Nil slices and maps are
// stored as empty containers, never SQL NULL.
func encodeJSON(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode jsonb: %w", err)
	}
	return b, nil
}

// decodeStrings unmarshals a jsonb string array. NULL columns decode to nil.
func decodeStrings(raw []byte) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode jsonb strings: %w", err)
	}
	return out, nil
}

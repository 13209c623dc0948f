package repository

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// jsonColumn maps a Go value onto a JSONB column. Every JSON blob the
// relational backend stores (parameters, user info, target actions, aggregated
// logs) goes through it, so both backends share the models' camelCase keys.
type jsonColumn[T any] struct {
	val *T
}

func jsonb[T any](v *T) *jsonColumn[T] {
	return &jsonColumn[T]{val: v}
}

func (c *jsonColumn[T]) Value() (driver.Value, error) {
	if c.val == nil {
		return nil, nil
	}
	data, err := json.Marshal(c.val)
	if err != nil {
		return nil, fmt.Errorf("encode json column: %w", err)
	}
	return string(data), nil
}

func (c *jsonColumn[T]) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("decode json column: unsupported source type %T", src)
	}
	if err := json.Unmarshal(data, c.val); err != nil {
		return fmt.Errorf("decode json column: %w", err)
	}
	return nil
}

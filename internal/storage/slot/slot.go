// Package slot implements the persisted slot: the single named location
// in durable storage holding the serialized store state.
package slot

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cafebonheur/pos/internal/store"
)

// Slot reads and writes the raw slot contents. Read returns (nil, nil)
// when no state has been persisted yet.
type Slot interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
}

type HealthChecker interface {
	IsHealthy(ctx context.Context) (bool, error)
}

// ReadState rehydrates the store state from the slot. Absent or corrupt
// contents are not fatal: both come back as a nil state, corruption with
// the decode error attached so the caller can log it.
func ReadState(ctx context.Context, s Slot) (*store.State, error) {
	data, err := s.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("read slot: %w", err)
	}
	if data == nil {
		return nil, nil
	}

	var state store.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decode slot: %w", err)
	}
	return &state, nil
}

// WriteState serializes the full state and replaces the slot contents.
func WriteState(ctx context.Context, s Slot, state store.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	if err := s.Write(ctx, data); err != nil {
		return fmt.Errorf("write slot: %w", err)
	}
	return nil
}

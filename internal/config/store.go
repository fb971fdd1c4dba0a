package config

import "fmt"

// Store configures the persisted slot backing the domain store.
type Store struct {
	Backend SlotBackend `env:"STORE_BACKEND" envDefault:"FILE"`
	// SlotName is the key the serialized state lives under. For the file
	// backend it is the file name inside Dir; for redis it is the key.
	SlotName string `env:"STORE_SLOT_NAME" envDefault:"pos-storage"`
	Dir      string `env:"STORE_DIR" envDefault:"./data"`
}

// SlotBackend selects the driver for the persisted slot.
type SlotBackend uint8

const (
	SlotBackendFile SlotBackend = iota
	SlotBackendRedis
)

// String returns the string representation of the slot backend.
func (b SlotBackend) String() string {
	return []string{"FILE", "REDIS"}[b]
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (b *SlotBackend) UnmarshalText(text []byte) error {
	switch string(text) {
	case "FILE", "file":
		*b = SlotBackendFile
	case "REDIS", "redis":
		*b = SlotBackendRedis
	default:
		return fmt.Errorf("unknown slot backend: %s", text)
	}
	return nil
}

func (b SlotBackend) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

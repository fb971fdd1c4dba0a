package config

import "time"

// Mirror configures the background writer that keeps the persisted slot
// in sync with the in-memory state.
type Mirror struct {
	// Debounce coalesces bursts of mutations into a single slot write.
	Debounce     time.Duration `env:"MIRROR_DEBOUNCE" envDefault:"100ms"`
	WriteTimeout time.Duration `env:"MIRROR_WRITE_TIMEOUT" envDefault:"5s"`
}

package store

import (
	"fmt"
	"strings"

	"github.com/mmcdole/stacks/internal/domain"
)

// Backend identifies a storage implementation
type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendBolt   Backend = "bolt"
	BackendBadger Backend = "badger"
	BackendMemory Backend = "memory"
)

// Open creates the store for backend at path. The memory backend ignores path.
func Open(backend Backend, path string) (domain.KeyValueStore, error) {
	switch Backend(strings.ToLower(string(backend))) {
	case BackendSQLite, "":
		return NewSQLiteStore(path)
	case BackendBolt:
		return NewBoltStore(path)
	case BackendBadger:
		return NewBadgerStore(path)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", backend)
	}
}

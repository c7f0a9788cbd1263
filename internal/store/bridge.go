package store

import (
	"log/slog"
	"sync"

	jsoniter "github.com/json-iterator/go"

	"github.com/mmcdole/stacks/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// trueSentinel is the stored form of a set flag
const trueSentinel = "true"

// Bridge mirrors application state into a domain.KeyValueStore.
//
// Reads never fail: absent or unparseable values yield the caller's fallback.
// Writes are fire-and-forget: failures are logged and swallowed, because the
// in-memory state stays authoritative for the running process.
type Bridge struct {
	kv     domain.KeyValueStore
	logger *slog.Logger

	subMu  sync.Mutex
	subs   map[int]func()
	nextID int
}

// NewBridge wraps kv
func NewBridge(kv domain.KeyValueStore, logger *slog.Logger) *Bridge {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bridge{kv: kv, logger: logger, subs: make(map[int]func())}
}

// Store returns the underlying key-value store
func (b *Bridge) Store() domain.KeyValueStore {
	return b.kv
}

// Close closes the underlying store
func (b *Bridge) Close() error {
	return b.kv.Close()
}

// raw returns the stored value, or false if it is absent or unreadable
func (b *Bridge) raw(key string) ([]byte, bool) {
	data, ok, err := b.kv.Get(key)
	if err != nil {
		b.logger.Debug("state read failed", "key", key, "error", err)
		return nil, false
	}
	return data, ok
}

// ReadList decodes the JSON array stored under key. It returns fallback when
// the value is absent, empty, not an array, or its elements do not decode.
func ReadList[T any](b *Bridge, key string, fallback []T) []T {
	data, ok := b.raw(key)
	if !ok || len(data) == 0 {
		return fallback
	}
	if !json.Valid(data) || json.Get(data).ValueType() != jsoniter.ArrayValue {
		b.logger.Debug("stored value is not a list", "key", key)
		return fallback
	}

	var list []T
	if err := json.Unmarshal(data, &list); err != nil {
		b.logger.Debug("stored list did not decode", "key", key, "error", err)
		return fallback
	}
	if list == nil {
		list = []T{}
	}
	return list
}

// ReadBool returns fallback when key is absent; otherwise whether the stored
// value is exactly "true".
func (b *Bridge) ReadBool(key string, fallback bool) bool {
	data, ok := b.raw(key)
	if !ok {
		return fallback
	}
	return string(data) == trueSentinel
}

// ReadString returns the stored string, or fallback when absent or empty
func (b *Bridge) ReadString(key string, fallback string) string {
	data, ok := b.raw(key)
	if !ok || len(data) == 0 {
		return fallback
	}
	return string(data)
}

// WriteList stores value as a JSON array
func (b *Bridge) WriteList(key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		b.logger.Warn("failed to encode state", "key", key, "error", err)
		return
	}
	// A nil slice marshals as null; store an empty array instead.
	if string(data) == "null" {
		data = []byte("[]")
	}
	b.put(key, data)
}

// WriteFlag stores value as "true" or "false"
func (b *Bridge) WriteFlag(key string, value bool) {
	if value {
		b.put(key, []byte(trueSentinel))
		return
	}
	b.put(key, []byte("false"))
}

// WriteString stores value verbatim
func (b *Bridge) WriteString(key string, value string) {
	b.put(key, []byte(value))
}

// Remove deletes key
func (b *Bridge) Remove(key string) {
	if err := b.kv.Delete(key); err != nil {
		b.logger.Warn("failed to remove state", "key", key, "error", err)
	}
}

func (b *Bridge) put(key string, data []byte) {
	if err := b.kv.Put(key, data); err != nil {
		b.logger.Warn("failed to persist state", "key", key, "error", err)
	}
}

// OnExternalChange registers fn to run when the store is changed from
// outside this process. The returned function unsubscribes.
func (b *Bridge) OnExternalChange(fn func()) (unsubscribe func()) {
	b.subMu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = fn
	b.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.subMu.Lock()
			delete(b.subs, id)
			b.subMu.Unlock()
		})
	}
}

// NotifyExternalChange runs every registered external-change callback
func (b *Bridge) NotifyExternalChange() {
	b.subMu.Lock()
	fns := make([]func(), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.subMu.Unlock()

	b.logger.Debug("external state change", "subscribers", len(fns))
	for _, fn := range fns {
		fn()
	}
}

// Entry is a raw stored key and value
type Entry struct {
	Key   string
	Value string
}

// Entries returns every stored key and value, for diagnostics
func (b *Bridge) Entries() ([]Entry, error) {
	keys, err := b.kv.Keys()
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(keys))
	for _, k := range keys {
		if data, ok := b.raw(k); ok {
			entries = append(entries, Entry{Key: k, Value: string(data)})
		}
	}
	return entries, nil
}

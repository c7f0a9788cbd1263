package domain

// KeyValueStore is the durable storage behind the state bridge.
// Values are opaque bytes; every write is last-writer-wins.
type KeyValueStore interface {
	// Get returns the stored value and whether the key exists
	Get(key string) ([]byte, bool, error)

	// Put stores value under key, replacing any previous value
	Put(key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error

	// Keys lists stored keys in ascending order
	Keys() ([]string, error)

	// Close releases the underlying storage
	Close() error
}

// FileBacked is implemented by stores that live on disk.
// Path is watched for changes made by other processes.
type FileBacked interface {
	Path() string
}

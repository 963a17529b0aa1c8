// Package store provides the key/value blob persistence the three data
// stores write through to. Each data store serializes its full state as
// one JSON blob under a fixed key; this package only moves bytes.
package store

// Blob is the persistence surface injected into the data stores. A
// missing key is not an error: Get reports presence separately so first
// runs can be told apart from I/O failures.
type Blob interface {
	Get(key string) (value []byte, ok bool, err error)
	Set(key string, value []byte) error
	Delete(key string) error
	Close() error
}

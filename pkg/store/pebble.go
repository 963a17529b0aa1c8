package store

import (
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"

	"socialdb/pkg/logger"
	"socialdb/pkg/telemetry"
)

// Pebble is the on-disk Blob implementation. All writes are synchronous
// (pebble.Sync) so a mutation that returned has reached durable storage.
type Pebble struct {
	db   *pebble.DB
	path string
}

// OpenPebble opens (or creates) a Pebble database at the given path.
func OpenPebble(path string) (*Pebble, error) {
	logger.Debug("opening_pebble_db", "path", path)
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		logger.Error("pebble_open_failed", "path", path, "err", err)
		return nil, err
	}
	return &Pebble{db: db, path: path}, nil
}

// Path returns the database directory.
func (p *Pebble) Path() string { return p.path }

func (p *Pebble) Get(key string) ([]byte, bool, error) {
	if p.db == nil {
		return nil, false, fmt.Errorf("pebble not opened; call OpenPebble first")
	}
	v, closer, err := p.db.Get([]byte(key))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, false, nil
		}
		logger.Error("blob_get_failed", "key", key, "err", err)
		return nil, false, err
	}
	out := append([]byte(nil), v...)
	if closer != nil {
		if err := closer.Close(); err != nil {
			return nil, false, err
		}
	}
	telemetry.BlobLoaded(key)
	return out, true, nil
}

func (p *Pebble) Set(key string, value []byte) error {
	if p.db == nil {
		return fmt.Errorf("pebble not opened; call OpenPebble first")
	}
	if err := p.db.Set([]byte(key), value, pebble.Sync); err != nil {
		logger.Error("blob_set_failed", "key", key, "err", err)
		return err
	}
	telemetry.BlobWritten(key)
	logger.Debug("blob_set_ok", "key", key, "len", len(value))
	return nil
}

func (p *Pebble) Delete(key string) error {
	if p.db == nil {
		return fmt.Errorf("pebble not opened; call OpenPebble first")
	}
	if err := p.db.Delete([]byte(key), pebble.Sync); err != nil {
		logger.Error("blob_delete_failed", "key", key, "err", err)
		return err
	}
	return nil
}

// Close closes the underlying database. The Pebble is unusable after.
func (p *Pebble) Close() error {
	if p.db == nil {
		return nil
	}
	if err := p.db.Close(); err != nil {
		return err
	}
	p.db = nil
	logger.Debug("pebble_closed", "path", p.path)
	return nil
}

package fpstore

import (
	"encoding/hex"
	"fmt"

	bolt "go.etcd.io/bbolt"
)

var bucketName = []byte("fingerprints")

// BoltStore is a Store backed by a single-bucket bbolt database, one key
// per fingerprint (hex-encoded), value a single byte (1 = sat, 0 = unsat).
// This is the "no-index" sub-mode (gdb_no_mem): every Lookup goes straight
// to disk. Wrap it in Cached for the fast, in-memory-indexed sub-mode.
type BoltStore struct {
	db *bolt.DB
}

// OpenBoltStore opens (creating if necessary) a bbolt database at path.
func OpenBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("fpstore: open %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("fpstore: init bucket: %w", err)
	}
	return &BoltStore{db: db}, nil
}

func (b *BoltStore) Lookup(fp [32]byte) (sat bool, found bool, err error) {
	key := keyOf(fp)
	err = b.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketName).Get(key)
		if v == nil {
			return nil
		}
		found = true
		sat = len(v) > 0 && v[0] == 1
		return nil
	})
	if err != nil {
		return false, false, fmt.Errorf("fpstore: lookup: %w", err)
	}
	return sat, found, nil
}

func (b *BoltStore) Record(fp [32]byte, sat bool) error {
	key := keyOf(fp)
	val := byte(0)
	if sat {
		val = 1
	}
	err := b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put(key, []byte{val})
	})
	if err != nil {
		return fmt.Errorf("fpstore: record: %w", err)
	}
	return nil
}

func (b *BoltStore) Close() error { return b.db.Close() }

func keyOf(fp [32]byte) []byte {
	return []byte(hex.EncodeToString(fp[:]))
}

package place

import (
	"errors"
	"fmt"
	"slices"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/vmihailenco/msgpack/v5"
	bolt "go.etcd.io/bbolt"
)

const (
	placesBucketName   = "places"
	metadataBucketName = "metadata"

	placeCacheSize = 1024
)

var ErrBucketNotFound = errors.New("bucket not found")

// BoltStore is a Database kept in a bbolt file. Places are stored as
// MessagePack under their handle; decoded places are cached.
type BoltStore struct {
	db    *bolt.DB
	cache *lru.Cache[string, *Place]
}

// OpenBoltStore opens or creates the database file at path.
func OpenBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{placesBucketName, metadataBucketName} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	cache, err := lru.New[string, *Place](placeCacheSize)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &BoltStore{db: db, cache: cache}, nil
}

// Close closes the database file.
func (s *BoltStore) Close() error {
	s.cache.Purge()
	return s.db.Close()
}

// PlaceFromHandle returns the stored place. The result is shared with the
// cache and must not be modified.
func (s *BoltStore) PlaceFromHandle(handle string) (*Place, error) {
	if p, ok := s.cache.Get(handle); ok {
		return p, nil
	}
	var p *Place
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(placesBucketName))
		if b == nil {
			return ErrBucketNotFound
		}
		raw := b.Get([]byte(handle))
		if raw == nil {
			return fmt.Errorf("%w: place %s", ErrNotFound, handle)
		}
		p = &Place{}
		return msgpack.Unmarshal(raw, p)
	})
	if err != nil {
		return nil, err
	}
	s.cache.Add(handle, p)
	return p, nil
}

// PutPlace stores p under its handle.
func (s *BoltStore) PutPlace(p *Place) error {
	if p.Handle == "" {
		return fmt.Errorf("%w: place without handle", ErrInvalidType)
	}
	raw, err := msgpack.Marshal(p)
	if err != nil {
		return err
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(placesBucketName))
		if b == nil {
			return ErrBucketNotFound
		}
		return b.Put([]byte(p.Handle), raw)
	})
	if err != nil {
		return err
	}
	s.cache.Remove(p.Handle)
	return nil
}

// Places calls fn for every stored place in handle order until fn returns
// false.
func (s *BoltStore) Places(fn func(*Place) bool) error {
	return s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(placesBucketName))
		if b == nil {
			return ErrBucketNotFound
		}
		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			p := &Place{}
			if err := msgpack.Unmarshal(v, p); err != nil {
				return fmt.Errorf("place %s: %w", k, err)
			}
			if !fn(p) {
				return nil
			}
		}
		return nil
	})
}

// PlaceHierTypes lists the custom hierarchy kinds used by stored places.
func (s *BoltStore) PlaceHierTypes() ([]string, error) {
	var out []string
	err := s.Places(func(p *Place) bool {
		out = appendHierTypes(out, p)
		return true
	})
	slices.Sort(out)
	return out, err
}

func appendHierTypes(out []string, p *Place) []string {
	for _, ref := range p.Refs {
		if ref.Hier.Value == HierCustom && ref.Hier.Custom != "" && !slices.Contains(out, ref.Hier.Custom) {
			out = append(out, ref.Hier.Custom)
		}
	}
	return out
}

// Metadata returns the value stored under key, or nil.
func (s *BoltStore) Metadata(key string) ([]byte, error) {
	var out []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(metadataBucketName))
		if b == nil {
			return ErrBucketNotFound
		}
		if v := b.Get([]byte(key)); v != nil {
			out = slices.Clone(v)
		}
		return nil
	})
	return out, err
}

// SetMetadata stores value under key.
func (s *BoltStore) SetMetadata(key string, value []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(metadataBucketName))
		if b == nil {
			return ErrBucketNotFound
		}
		return b.Put([]byte(key), value)
	})
}

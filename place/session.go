package place

import (
	"fmt"
	"sync"
)

// Session ties an open database to the registry it contributed its place
// types to. Close stores the registry state back and releases the database's
// share of the registry.
type Session struct {
	Registry *Registry
	DB       Database

	mu     sync.Mutex
	closed bool
}

// OpenSession loads the place type customization of db into reg.
func OpenSession(reg *Registry, db Database) (*Session, error) {
	raw, err := db.Metadata(MetaPlaceTypes)
	if err != nil {
		return nil, fmt.Errorf("read place types: %w", err)
	}
	var data *RegistryData
	if raw != nil {
		if data, err = DecodeRegistryData(raw); err != nil {
			return nil, fmt.Errorf("decode place types: %w", err)
		}
	}
	if err := reg.Open(data); err != nil {
		return nil, err
	}
	Logger().Debug("place session opened", "registry_status", reg.Status())
	return &Session{Registry: reg, DB: db}, nil
}

// Resolver returns a resolver over the session's database.
func (s *Session) Resolver(about int) *Resolver {
	return &Resolver{DB: s.DB, AboutYears: about}
}

// Save writes the registry state to the database without closing.
func (s *Session) Save() error {
	return s.store(s.Registry.Snapshot())
}

// Close writes the registry state to the database and drops the database's
// share of the registry. Closing twice is a no-op.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	data, err := s.Registry.Close()
	if err != nil {
		return err
	}
	Logger().Debug("place session closed", "registry_status", s.Registry.Status())
	return s.store(data)
}

func (s *Session) store(data *RegistryData) error {
	raw, err := EncodeRegistryData(data)
	if err != nil {
		return fmt.Errorf("encode place types: %w", err)
	}
	if err := s.DB.SetMetadata(MetaPlaceTypes, raw); err != nil {
		return fmt.Errorf("write place types: %w", err)
	}
	return nil
}

// LoadFormats merges the formats stored in the database into d and returns
// the names of stored formats dropped because d already had them.
func (s *Session) LoadFormats(d *Displayer) ([]string, error) {
	raw, err := s.DB.Metadata(MetaPlaceFormats)
	if err != nil || raw == nil {
		return nil, err
	}
	formats, err := DecodeFormats(raw)
	if err != nil {
		return nil, fmt.Errorf("decode place formats: %w", err)
	}
	return d.LoadFormats(formats), nil
}

// SaveFormats stores the formats of d in the database.
func (s *Session) SaveFormats(d *Displayer) error {
	raw, err := EncodeFormats(d.Formats())
	if err != nil {
		return fmt.Errorf("encode place formats: %w", err)
	}
	return s.DB.SetMetadata(MetaPlaceFormats, raw)
}

package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketSession     = []byte("session")
	bucketPreferences = []byte("preferences")
	bucketFavorites   = []byte("favorites")
)

// Keys
const (
	keyToken       = "auth_token"
	keyLoggedIn    = "login_status"
	keyCurrentTab  = "current_tab"
	keyLocalMovies = "movie_ids"
)

// Store implements domain.Store using BoltDB.
//
// All values are JSON encoded. Reads are served from an in-memory copy once
// loaded; writes go to memory first and then to disk.
type Store struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	cache map[string][]byte
}

// Open opens (or creates) marquee.db under dir. An empty dir gives a
// memory-only store, which is what tests use.
func Open(dir string) (*Store, error) {
	if dir == "" {
		return &Store{cache: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	dbPath := filepath.Join(dir, "marquee.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketSession, bucketPreferences, bucketFavorites} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, cache: make(map[string][]byte)}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *Store) get(bucket []byte, key string, dest interface{}) bool {
	cacheKey := string(bucket) + ":" + key

	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return false
	}

	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (s *Store) set(bucket []byte, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	cacheKey := string(bucket) + ":" + key

	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		return b.Put([]byte(key), data)
	})
}

func (s *Store) delete(bucket []byte, key string) error {
	cacheKey := string(bucket) + ":" + key

	s.mu.Lock()
	delete(s.cache, cacheKey)
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		return b.Delete([]byte(key))
	})
}

// === Credential ===

func (s *Store) Token() (string, bool) {
	var token string
	if !s.get(bucketSession, keyToken, &token) || token == "" {
		return "", false
	}
	return token, true
}

func (s *Store) SaveToken(token string) error {
	if token == "" {
		return s.ClearToken()
	}
	return s.set(bucketSession, keyToken, token)
}

func (s *Store) ClearToken() error {
	return s.delete(bucketSession, keyToken)
}

// === Login flag ===

func (s *Store) LoggedIn() bool {
	var loggedIn bool
	s.get(bucketSession, keyLoggedIn, &loggedIn)
	return loggedIn
}

func (s *Store) SetLoggedIn(loggedIn bool) error {
	return s.set(bucketSession, keyLoggedIn, loggedIn)
}

// === Preferences ===

func (s *Store) SelectedTab() int {
	var tab int
	s.get(bucketPreferences, keyCurrentTab, &tab)
	return tab
}

func (s *Store) SetSelectedTab(index int) error {
	return s.set(bucketPreferences, keyCurrentTab, index)
}

// === Anonymous favorites ===

func (s *Store) LocalFavorites() []int {
	var ids []int
	s.get(bucketFavorites, keyLocalMovies, &ids)
	return ids
}

func (s *Store) SaveLocalFavorites(ids []int) error {
	if ids == nil {
		ids = []int{}
	}
	return s.set(bucketFavorites, keyLocalMovies, ids)
}

// Package pointcache memoises point doublings and coordinate conversions in a
// key-value store under hierarchical keys such as
// "ecmath.secp256k1.g.projective<<3".
//
// The cache is an optimisation only. Backend failures are logged and the
// value is recomputed.
package pointcache

import (
	"github.com/VictoriaMetrics/fastcache"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/smallyu/go-ecmath/internal/logging"
)

var logger = logging.MustGetLogger("pointcache")

// DefaultMaxBytes is the in-memory cache size used when none is given.
const DefaultMaxBytes = 32 * 1024 * 1024

// Backend kinds accepted by OpenBackend.
const (
	KindNone    = "none"
	KindMemory  = "memory"
	KindLevelDB = "leveldb"
)

// Backend is the key-value store underneath a Handle.
type Backend interface {
	Get(key []byte) ([]byte, bool, error)
	Put(key, value []byte) error
	Delete(key []byte) error
	Close() error
}

// MemoryBackend keeps entries in a fastcache.Cache. Old entries may be
// evicted once the size limit is reached.
type MemoryBackend struct {
	c *fastcache.Cache
}

// NewMemoryBackend returns an in-memory store of roughly maxBytes.
func NewMemoryBackend(maxBytes int) *MemoryBackend {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &MemoryBackend{c: fastcache.New(maxBytes)}
}

func (m *MemoryBackend) Get(key []byte) ([]byte, bool, error) {
	v, ok := m.c.HasGet(nil, key)
	return v, ok, nil
}

func (m *MemoryBackend) Put(key, value []byte) error {
	m.c.Set(key, value)
	return nil
}

func (m *MemoryBackend) Delete(key []byte) error {
	m.c.Del(key)
	return nil
}

func (m *MemoryBackend) Close() error {
	m.c.Reset()
	return nil
}

// LevelDBBackend persists entries in a LevelDB database.
type LevelDBBackend struct {
	db *leveldb.DB
}

// NewLevelDBBackend wraps an open database. Close closes db.
func NewLevelDBBackend(db *leveldb.DB) *LevelDBBackend {
	return &LevelDBBackend{db: db}
}

// OpenLevelDB opens or creates a database at path.
func OpenLevelDB(path string) (*LevelDBBackend, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "opening point cache at %s", path)
	}
	return &LevelDBBackend{db: db}, nil
}

func (l *LevelDBBackend) Get(key []byte) ([]byte, bool, error) {
	v, err := l.db.Get(key, nil)
	if err == leveldb.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, "reading %q", key)
	}
	return v, true, nil
}

func (l *LevelDBBackend) Put(key, value []byte) error {
	return errors.Wrapf(l.db.Put(key, value, nil), "writing %q", key)
}

func (l *LevelDBBackend) Delete(key []byte) error {
	return errors.Wrapf(l.db.Delete(key, nil), "deleting %q", key)
}

func (l *LevelDBBackend) Close() error {
	return l.db.Close()
}

// OpenBackend builds a backend by kind. It returns nil for KindNone and the
// empty kind.
func OpenBackend(kind, path string, maxBytes int) (Backend, error) {
	switch kind {
	case "", KindNone:
		return nil, nil
	case KindMemory:
		return NewMemoryBackend(maxBytes), nil
	case KindLevelDB:
		if path == "" {
			return nil, errors.New("leveldb point cache needs a path")
		}
		return OpenLevelDB(path)
	}
	return nil, errors.Errorf("unknown point cache backend %q", kind)
}

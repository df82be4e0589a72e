package prefs

import (
	"github.com/c2h5oh/datasize"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
)

type database interface {
	databaseReader
	databaseWriter
	NewPrefixIterator(prefix []byte) iterator
	Close() error
}

type databaseReader interface {
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
}

type databaseWriter interface {
	Put(key, val []byte) error
	Delete(key []byte) error
}

type iterator interface {
	Next() bool
	Key() []byte
	Value() []byte
	Release()
	Error() error
}

// DefaultCacheSize is the block cache size of the preference database.
const DefaultCacheSize = "8MB"

// ParseCacheSize parses a human readable size such as "8MB".
func ParseCacheSize(s string) (datasize.ByteSize, error) {
	var size datasize.ByteSize
	if err := size.UnmarshalText([]byte(s)); err != nil {
		return 0, errors.Wrapf(err, "invalid cache size %q", s)
	}
	return size, nil
}

// lvlDB is the goleveldb backed database.
type lvlDB struct {
	db *leveldb.DB
}

func newLvlDB(dbPath string, cacheSize datasize.ByteSize) (*lvlDB, error) {
	options := &opt.Options{
		OpenFilesCacheCapacity: 16,
		BlockCacheCapacity:     int(cacheSize.Bytes()),
		WriteBuffer:            int(cacheSize.Bytes() / 4),
		Filter:                 filter.NewBloomFilter(10),
	}
	db, err := leveldb.OpenFile(dbPath, options)
	if err != nil {
		return nil, errors.Wrapf(err, "open preference db %v", dbPath)
	}
	return &lvlDB{db: db}, nil
}

func (db *lvlDB) Get(key []byte) ([]byte, error) {
	return db.db.Get(key, nil)
}

func (db *lvlDB) Has(key []byte) (bool, error) {
	return db.db.Has(key, nil)
}

func (db *lvlDB) Put(key, val []byte) error {
	return db.db.Put(key, val, nil)
}

func (db *lvlDB) Delete(key []byte) error {
	return db.db.Delete(key, nil)
}

func (db *lvlDB) NewPrefixIterator(prefix []byte) iterator {
	return db.db.NewIterator(util.BytesPrefix(prefix), nil)
}

func (db *lvlDB) Close() error {
	return db.db.Close()
}

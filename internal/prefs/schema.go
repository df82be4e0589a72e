package prefs

import (
	goversion "github.com/hashicorp/go-version"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"go.uber.org/zap/buffer"
)

var (
	versionKey     = []byte("version")
	versionV100, _ = goversion.NewVersion("1.0.0")

	// currentVersion is the schema written by this package
	currentVersion = versionV100
)

// readVersion returns the stored schema version, or nil when the database is fresh.
func readVersion(db databaseReader) (*goversion.Version, error) {
	val, err := db.Get(versionKey)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return goversion.NewVersion(string(val))
}

func writeVersion(db databaseWriter, ver *goversion.Version) error {
	return db.Put(versionKey, []byte(ver.String()))
}

// checkVersion writes the current schema into a fresh database and rejects
// databases written by a newer major version.
func checkVersion(db database) error {
	ver, err := readVersion(db)
	if err != nil {
		return errors.Wrap(err, "read preference schema version")
	}
	if ver == nil {
		return writeVersion(db, currentVersion)
	}
	if ver.Segments()[0] > currentVersion.Segments()[0] {
		return errors.Errorf("unsupported preference schema version %v", ver)
	}
	return nil
}

var prefPrefix = []byte("pf_")

// bPool is the sync pool for reusing the memory for allocating db keys
var bPool = buffer.NewPool()

// getPrefKey returns the key of the named preference.
func getPrefKey(name string) []byte {
	b := bPool.Get()
	defer b.Free()

	_, _ = b.Write(prefPrefix)
	b.AppendString(name)

	key := make([]byte, b.Len())
	copy(key, b.Bytes())
	return key
}

// Package prefs persists user preferences of the explorer across sessions.
package prefs

import (
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/mnee-network/explorer/core/types"
	"github.com/mnee-network/explorer/internal/utils"
)

const themePref = "theme"

// Store is the preference store.
type Store struct {
	db  database
	log zerolog.Logger
}

// Open opens the store under dataDir/prefs.
func Open(dataDir string, cacheSize string) (*Store, error) {
	size, err := ParseCacheSize(cacheSize)
	if err != nil {
		return nil, err
	}
	dbPath := filepath.Join(dataDir, "prefs")
	utils.Logger().Info().Str("path", dbPath).Str("cache", size.HR()).Msg("opening preference store")

	db, err := newLvlDB(dbPath, size)
	if err != nil {
		return nil, err
	}
	return newStore(db)
}

func newStore(db database) (*Store, error) {
	if err := checkVersion(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{
		db:  db,
		log: utils.Logger().With().Str("module", "prefs").Logger(),
	}, nil
}

// LoadTheme returns the stored theme, or types.DefaultTheme when none is stored.
func (s *Store) LoadTheme() (types.Theme, error) {
	val, err := s.db.Get(getPrefKey(themePref))
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return types.DefaultTheme, nil
		}
		return "", errors.Wrap(err, "read theme")
	}
	theme, err := types.ParseTheme(string(val))
	if err != nil {
		s.log.Warn().Err(err).Msg("ignoring stored theme")
		return types.DefaultTheme, nil
	}
	return theme, nil
}

// SaveTheme stores theme.
func (s *Store) SaveTheme(theme types.Theme) error {
	if _, err := types.ParseTheme(string(theme)); err != nil {
		return err
	}
	if err := s.db.Put(getPrefKey(themePref), []byte(theme)); err != nil {
		return errors.Wrap(err, "write theme")
	}
	s.log.Debug().Str("theme", string(theme)).Msg("theme saved")
	return nil
}

// Preferences returns every stored preference keyed by name.
func (s *Store) Preferences() (map[string]string, error) {
	it := s.db.NewPrefixIterator(prefPrefix)
	defer it.Release()

	res := make(map[string]string)
	for it.Next() {
		name := string(it.Key()[len(prefPrefix):])
		res[name] = string(it.Value())
	}
	return res, it.Error()
}

// Reset deletes every stored preference.
func (s *Store) Reset() error {
	prefs, err := s.Preferences()
	if err != nil {
		return err
	}
	for name := range prefs {
		if err := s.db.Delete(getPrefKey(name)); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

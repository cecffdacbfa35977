package presets

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/annel0/gopaint/internal/brush/settings"
	"github.com/dgraph-io/badger/v3"
)

const badgerPrefix = "preset:"

// badgerStore хранит пресеты в BadgerDB под ключами preset:<имя>
type badgerStore struct {
	db      *badger.DB
	codec   *codec
	mutex   sync.RWMutex
	isReady bool
}

func newBadgerStore(path string, c *codec) (*badgerStore, error) {
	if path == "" {
		c.Close()
		return nil, errors.New("presets: badger path is empty")
	}

	opts := badger.DefaultOptions(path)
	opts.Logger = nil // BadgerDB пишет слишком много

	db, err := badger.Open(opts)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("не удалось открыть BadgerDB: %w", err)
	}
	return &badgerStore{db: db, codec: c, isReady: true}, nil
}

func (s *badgerStore) ready() error {
	if !s.isReady {
		return errors.New("presets: store is closed")
	}
	return nil
}

func (s *badgerStore) Save(ctx context.Context, name string, e *settings.Exported) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validName(name); err != nil {
		return err
	}
	data, err := s.codec.marshal(e)
	if err != nil {
		return err
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if err := s.ready(); err != nil {
		return err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(badgerPrefix+name), data)
	})
	if err != nil {
		return fmt.Errorf("не удалось сохранить пресет %q: %w", name, err)
	}
	return nil
}

func (s *badgerStore) Load(ctx context.Context, name string) (*settings.Exported, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if err := s.ready(); err != nil {
		return nil, err
	}

	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(badgerPrefix + name))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			data = append([]byte{}, val...)
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать пресет %q: %w", name, err)
	}
	return s.codec.unmarshal(data)
}

func (s *badgerStore) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if err := s.ready(); err != nil {
		return err
	}

	key := []byte(badgerPrefix + name)
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrNotFound
			}
			return err
		}
		return txn.Delete(key)
	})
}

func (s *badgerStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if err := s.ready(); err != nil {
		return nil, err
	}

	var names []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(badgerPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		// Ключи в Badger упорядочены лексикографически
		for it.Rewind(); it.Valid(); it.Next() {
			key := string(it.Item().Key())
			names = append(names, key[len(badgerPrefix):])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

func (s *badgerStore) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.isReady {
		return nil
	}
	s.isReady = false
	s.codec.Close()
	return s.db.Close()
}

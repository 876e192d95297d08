package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeFactories lets every Store implementation share one conformance suite.
func storeFactories(t *testing.T) map[string]func(t *testing.T) Store {
	return map[string]func(t *testing.T) Store{
		"memory": func(t *testing.T) Store {
			return NewMemStore()
		},
		"bolt": func(t *testing.T) Store {
			s, err := OpenBolt(filepath.Join(t.TempDir(), "state.db"))
			require.NoError(t, err)
			t.Cleanup(func() { _ = s.Close() })
			return s
		},
	}
}

func TestStoreRoundTrip(t *testing.T) {
	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := factory(t)

			require.NoError(t, s.Put(KeyToken, []byte("bearer-abc")))

			got, err := s.Get(KeyToken)
			require.NoError(t, err)
			assert.Equal(t, []byte("bearer-abc"), got)

			// Overwrite replaces the previous value.
			require.NoError(t, s.Put(KeyToken, []byte("bearer-def")))
			got, err = s.Get(KeyToken)
			require.NoError(t, err)
			assert.Equal(t, []byte("bearer-def"), got)
		})
	}
}

func TestStoreGetMissing(t *testing.T) {
	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := factory(t)

			_, err := s.Get("nonexistent")
			assert.ErrorIs(t, err, ErrKeyNotFound)
		})
	}
}

func TestStoreDelete(t *testing.T) {
	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := factory(t)

			require.NoError(t, s.Put(KeyCart, []byte("[]")))
			require.NoError(t, s.Delete(KeyCart))

			_, err := s.Get(KeyCart)
			assert.ErrorIs(t, err, ErrKeyNotFound)

			// Deleting an absent key is not an error.
			require.NoError(t, s.Delete(KeyCart))
		})
	}
}

func TestBoltPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	s, err := OpenBolt(path)
	require.NoError(t, err)
	require.NoError(t, s.Put(KeyUser, []byte(`{"id":1}`)))
	require.NoError(t, s.Close())

	reopened, err := OpenBolt(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(KeyUser)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"id":1}`), got)
}

func TestMemStoreCopiesValues(t *testing.T) {
	s := NewMemStore()

	val := []byte("original")
	require.NoError(t, s.Put(KeyTheme, val))
	val[0] = 'X'

	got, err := s.Get(KeyTheme)
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), got)
}

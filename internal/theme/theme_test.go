package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/kopi/internal/storage"
)

func TestLoadDefault(t *testing.T) {
	st := storage.NewMemStore()
	assert.Equal(t, DefaultName, Load(st).Name)
}

func TestSaveAndLoad(t *testing.T) {
	st := storage.NewMemStore()

	require.NoError(t, Save(st, Light))
	assert.Equal(t, Light, Load(st).Name)

	require.NoError(t, Save(st, Dark))
	assert.Equal(t, Dark, Load(st).Name)
}

func TestSaveRejectsUnknownName(t *testing.T) {
	st := storage.NewMemStore()
	assert.Error(t, Save(st, "neon"))
}

func TestLoadIgnoresCorruptValue(t *testing.T) {
	st := storage.NewMemStore()
	require.NoError(t, st.Put(storage.KeyTheme, []byte("neon")))
	assert.Equal(t, DefaultName, Load(st).Name)
}

func TestTwoThemesCoexist(t *testing.T) {
	dark := Resolve(Dark)
	light := Resolve(Light)
	assert.NotEqual(t, dark.Name, light.Name)
}

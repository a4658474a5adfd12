package save

import (
	"testing"

	"github.com/quasilyte/gdata/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestManager(t *testing.T, name string) *gdata.Manager {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "")
	manager, err := gdata.Open(gdata.Config{AppName: name})
	require.NoError(t, err)
	return manager
}

func TestMemoryOnly(t *testing.T) {
	store := NewStore(nil)
	assert.False(t, store.Persistent())

	assert.Equal(t, 300, store.RecordGame(300))
	assert.Equal(t, 300, store.RecordGame(120))

	rec := store.Records()
	assert.Equal(t, 2, rec.GamesPlayed)
	assert.Equal(t, 120, rec.LastScore)
	assert.NoError(t, store.Save())
}

func TestRecordsPersist(t *testing.T) {
	manager := openTestManager(t, "astraea_test_records")

	first := NewStore(manager)
	require.True(t, first.Persistent())
	assert.Zero(t, first.Records().BestScore)
	first.RecordGame(420)
	first.RecordGame(100)

	second := NewStore(manager)
	assert.Equal(t, Records{BestScore: 420, GamesPlayed: 2, LastScore: 100}, second.Records())
}

func TestCorruptRecordsStartFresh(t *testing.T) {
	manager := openTestManager(t, "astraea_test_corrupt")
	require.NoError(t, manager.SaveObjectProp(recordsObject, recordsProperty, []byte("bestScore: [oops")))

	store := NewStore(manager)
	assert.Equal(t, Records{}, store.Records())
	assert.Error(t, store.Load())
}

package boltdb

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *HistoryStore {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "nested", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestAppendFillsIDAndTimestamp(t *testing.T) {
	store := openTestStore(t)

	rec := &Record{Utterance: "drive home", Tool: "apple_maps", Model: "gpt-4o-mini"}
	require.NoError(t, store.Append(rec))
	assert.NotEmpty(t, rec.ID)
	assert.False(t, rec.CreatedAt.IsZero())
}

func TestListNewestFirst(t *testing.T) {
	store := openTestStore(t)

	base := time.Now().Add(-time.Hour)
	for i, u := range []string{"first", "second", "third"} {
		require.NoError(t, store.Append(&Record{
			Utterance: u,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	records, err := store.List(0)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "third", records[0].Utterance)
	assert.Equal(t, "first", records[2].Utterance)
}

func TestListHonorsLimit(t *testing.T) {
	store := openTestStore(t)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		require.NoError(t, store.Append(&Record{
			Utterance: "u",
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	records, err := store.List(2)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestRecordRoundTrip(t *testing.T) {
	store := openTestStore(t)

	in := &Record{
		Utterance: "from SF to LA",
		Tool:      "apple_maps",
		Model:     "gpt-4o",
		Argv:      []string{"SF", "LA", "d"},
		URL:       "maps://?saddr=SF&daddr=LA&dirflg=d",
	}
	require.NoError(t, store.Append(in))

	records, err := store.List(1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, in.Argv, records[0].Argv)
	assert.Equal(t, in.URL, records[0].URL)
}

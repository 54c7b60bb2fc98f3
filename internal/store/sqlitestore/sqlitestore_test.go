package sqlitestore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/timers/internal/model"
	"github.com/idilsaglam/timers/internal/store"
)

func sample() []model.Timer {
	return []model.Timer{
		{ID: "a", Title: "Tea", Description: "green", Duration: 180, Remaining: 42, Running: true},
		{ID: "b", Title: "Eggs", Duration: 420, Remaining: 420},
	}
}

func TestRoundTrip(t *testing.T) {
	s, err := New(":memory:")
	require.NoError(t, err)
	defer s.Close()

	in := sample()
	require.NoError(t, s.Save(in))

	out, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestLoadWithoutRecordIsEmpty(t *testing.T) {
	s, err := New(":memory:")
	require.NoError(t, err)
	defer s.Close()

	out, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestSaveUpserts(t *testing.T) {
	s, err := New(":memory:")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Save(sample()))
	require.NoError(t, s.Save(sample()[:1]))

	out, err := s.Load()
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "a", out[0].ID)
}

func TestLoadMalformedValueIsDiscarded(t *testing.T) {
	s, err := New(":memory:")
	require.NoError(t, err)
	defer s.Close()

	_, err = s.db.Exec("INSERT INTO kv (key, value) VALUES (?, ?)", store.Key, []byte("{not json"))
	require.NoError(t, err)

	out, err := s.Load()
	require.NoError(t, err, "malformed data must not fail startup")
	assert.Empty(t, out)
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timers.db")

	s, err := New(path)
	require.NoError(t, err)
	require.NoError(t, s.Save(sample()))
	require.NoError(t, s.Close())

	s2, err := New(path)
	require.NoError(t, err)
	defer s2.Close()

	out, err := s2.Load()
	require.NoError(t, err)
	assert.Equal(t, sample(), out)
}

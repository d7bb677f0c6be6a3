package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_GetSetRemove(t *testing.T) {
	m := NewMemory()
	_, ok := m.Get("missing")
	assert.False(t, ok)

	m.Set("k", "v1")
	m.Set("k", "v2")
	v, ok := m.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v2", v)
	assert.Equal(t, 1, m.Len())

	m.Remove("k")
	m.Remove("k")
	_, ok = m.Get("k")
	assert.False(t, ok)
}

func TestMemory_ZeroValueIsUsable(t *testing.T) {
	var m Memory
	m.Set("k", "v")
	v, ok := m.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestBadger_InMemoryRoundTrip(t *testing.T) {
	b, err := OpenBadger(BadgerConfig{InMemory: true})
	require.NoError(t, err)
	defer b.Close()

	exerciseBackend(t, b)
}

func TestBadger_SurvivesReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "badger")
	b, err := OpenBadger(BadgerConfig{Path: dir, SyncWrites: true})
	require.NoError(t, err)
	require.NoError(t, b.Save("investigation-notes", "the gardener lied"))
	require.NoError(t, b.Close())

	reopened, err := OpenBadger(BadgerConfig{Path: dir})
	require.NoError(t, err)
	defer reopened.Close()
	v, ok, err := reopened.Load("investigation-notes")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "the gardener lied", v)
}

func TestBadger_RequiresPath(t *testing.T) {
	_, err := OpenBadger(BadgerConfig{})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestSQLite_RoundTripAndReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store", "casebook.db")
	s, err := OpenSQLite(path)
	require.NoError(t, err)
	exerciseBackend(t, s)
	require.NoError(t, s.Save("persist", "yes"))
	require.NoError(t, s.Close())

	reopened, err := OpenSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()
	v, ok, err := reopened.Load("persist")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "yes", v)
}

func exerciseBackend(t *testing.T, b Backend) {
	t.Helper()
	_, ok, err := b.Load("absent")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, b.Save("k", "first"))
	require.NoError(t, b.Save("k", "second"))
	v, ok, err := b.Load("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "second", v)

	require.NoError(t, b.Delete("k"))
	_, ok, err = b.Load("k")
	require.NoError(t, err)
	assert.False(t, ok)
}

type brokenBackend struct {
	failLoad bool
	failSave bool
	saved    map[string]string
}

func (b *brokenBackend) Load(key string) (string, bool, error) {
	if b.failLoad {
		return "", false, errors.New("disk gone")
	}
	v, ok := b.saved[key]
	return v, ok, nil
}

func (b *brokenBackend) Save(key, value string) error {
	if b.failSave {
		return errors.New("disk full")
	}
	if b.saved == nil {
		b.saved = map[string]string{}
	}
	b.saved[key] = value
	return nil
}

func (b *brokenBackend) Delete(key string) error {
	delete(b.saved, key)
	return nil
}

func (b *brokenBackend) Close() error { return nil }

func TestFallback_DegradesOnWriteFailure(t *testing.T) {
	backend := &brokenBackend{failSave: true}
	f := NewFallback(backend, nil)
	assert.False(t, f.Degraded())

	f.Set("k", "v")
	assert.True(t, f.Degraded())

	v, ok := f.Get("k")
	assert.True(t, ok, "value must still be readable for the rest of the session")
	assert.Equal(t, "v", v)

	backend.failSave = false
	f.Set("k2", "v2")
	assert.Empty(t, backend.saved, "degraded store must not write through any more")
}

func TestFallback_DegradesOnReadFailure(t *testing.T) {
	f := NewFallback(&brokenBackend{failLoad: true}, nil)
	_, ok := f.Get("k")
	assert.False(t, ok)
	assert.True(t, f.Degraded())
}

func TestFallback_WritesThroughWhenHealthy(t *testing.T) {
	backend := &brokenBackend{}
	f := NewFallback(backend, nil)
	f.Set("k", "v")
	assert.Equal(t, "v", backend.saved["k"])
	f.Remove("k")
	_, ok := backend.saved["k"]
	assert.False(t, ok)
	assert.False(t, f.Degraded())
}

func TestOpen_UnknownBackendFallsBackToMemory(t *testing.T) {
	f := Open(Options{Backend: "floppy", Dir: t.TempDir()})
	defer f.Close()
	assert.True(t, f.Degraded())

	f.Set("k", "v")
	v, ok := f.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestOpen_BackendsPersistAcrossReopen(t *testing.T) {
	for _, backend := range []string{BackendBadger, BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			dir := t.TempDir()
			f := Open(Options{Backend: backend, Dir: dir})
			require.False(t, f.Degraded())
			f.Set("investigation-progress", `["c1","c3"]`)
			require.NoError(t, f.Close())

			again := Open(Options{Backend: backend, Dir: dir})
			defer again.Close()
			v, ok := again.Get("investigation-progress")
			assert.True(t, ok)
			assert.Equal(t, `["c1","c3"]`, v)
		})
	}
}

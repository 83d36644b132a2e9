package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/minitube/internal/config"
	"github.com/mmcdole/minitube/internal/domain"
	"github.com/mmcdole/minitube/internal/library"
	"github.com/mmcdole/minitube/internal/log"
	"github.com/mmcdole/minitube/internal/store"
)

func newLibrary(t *testing.T) *library.Library {
	t.Helper()
	lib := library.New(store.NewMemoryStore(), library.WithLogger(log.NullLogger()))
	lib.Init()
	return lib
}

func TestRunImportIntoLiked(t *testing.T) {
	lib := newLibrary(t)
	path := filepath.Join(t.TempDir(), "videos.json")
	payload := `[
		{"videoId": "v1", "title": "First", "channel": "C", "channelId": "UC1"},
		{"videoId": "", "title": "Broken"},
		{"videoId": "v2", "title": "Second", "channel": "C", "channelId": "UC1"}
	]`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	require.NoError(t, runImport(lib, path, "liked", log.NullLogger()))

	liked := lib.Liked.List()
	require.Len(t, liked, 2)
	assert.Equal(t, "v2", liked[0].VideoID)
	assert.Equal(t, "v1", liked[1].VideoID)
}

func TestRunImportUnknownCollection(t *testing.T) {
	lib := newLibrary(t)
	err := runImport(lib, "unused.json", "favourites", log.NullLogger())
	assert.ErrorContains(t, err, "unknown collection")
}

func TestOpenStoreFallsBackWhenLocked(t *testing.T) {
	dir := t.TempDir()
	first, err := store.NewBoltStore(dir, time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { first.Close() })

	cfg := config.StorageConfig{Dir: dir, LockTimeout: 50 * time.Millisecond}
	s := openStore(cfg, log.NullLogger())
	defer s.Close()

	assert.False(t, s.Persistent())
}

func TestPrintCollections(t *testing.T) {
	lib := newLibrary(t)
	_, err := lib.WatchLater.Add(domain.VideoRef{VideoID: "w1", Title: "Later one", Channel: "Test Channel", ChannelID: "UCtest"})
	require.NoError(t, err)
	_, err = lib.Subscriptions.Toggle(domain.ChannelRef{ChannelID: "UCtest", ChannelTitle: "Test Channel"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, printCollections(&buf, lib))

	out := buf.String()
	assert.Contains(t, out, "Watch Later (1)")
	assert.Contains(t, out, "w1\tLater one")
	assert.Contains(t, out, "UCtest\tTest Channel")
	assert.Contains(t, out, "History (0)")
}

func TestRunImportSubscriptionsFromChannelList(t *testing.T) {
	lib := newLibrary(t)
	path := filepath.Join(t.TempDir(), "channels.json")
	payload := `{
		"kind": "youtube#channelListResponse",
		"items": [
			{"kind": "youtube#channel", "id": "UC1", "snippet": {"title": "One"}},
			{"kind": "youtube#channel", "id": "UC2", "snippet": {"title": "Two"}}
		]
	}`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	require.NoError(t, runImport(lib, path, "subscriptions", log.NullLogger()))
	require.NoError(t, runImport(lib, path, "subscriptions", log.NullLogger()))

	subs := lib.Subscriptions.List()
	require.Len(t, subs, 2)
	assert.Equal(t, "UC1", subs[0].ChannelID)
	assert.Equal(t, "Two", subs[1].ChannelTitle)
}

func TestRequirePersistent(t *testing.T) {
	mem := store.NewMemoryStore()
	assert.ErrorIs(t, requirePersistent(mem), errNotPersistent)

	disk, err := store.NewBoltStore(t.TempDir(), time.Second)
	require.NoError(t, err)
	defer disk.Close()
	assert.NoError(t, requirePersistent(disk))
}

func TestImportRejectedWhenStoreLocked(t *testing.T) {
	dir := t.TempDir()
	first, err := store.NewBoltStore(dir, time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { first.Close() })

	s := openStore(config.StorageConfig{Dir: dir, LockTimeout: 50 * time.Millisecond}, log.NullLogger())
	defer s.Close()

	assert.ErrorIs(t, requirePersistent(s), errNotPersistent)
}

func TestWriteConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "config.yaml")

	var buf bytes.Buffer
	require.NoError(t, writeConfig(&buf, path))
	assert.Contains(t, buf.String(), path)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	def := config.DefaultConfig()
	assert.Equal(t, def.Library.HistoryLimit, cfg.Library.HistoryLimit)
	assert.Equal(t, def.UI.StartRoute, cfg.UI.StartRoute)
	assert.Equal(t, def.Storage.LockTimeout, cfg.Storage.LockTimeout)

	err = writeConfig(&buf, path)
	assert.ErrorContains(t, err, "already exists")
}

package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsWatch(t *testing.T) {
	tests := []struct {
		route string
		want  bool
	}{
		{"/watch/v1", true},
		{"/watch/v1?t=30", true},
		{Watch("abc"), true},
		{"/", false},
		{"/watch", false},
		{"/library", false},
		{"/channel/UC1", false},
		{"/search/watch", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsWatch(tt.route), tt.route)
	}
}

func TestWatchID(t *testing.T) {
	id, ok := WatchID("/watch/dQw4w9WgXcQ?t=42")
	assert.True(t, ok)
	assert.Equal(t, "dQw4w9WgXcQ", id)

	id, ok = WatchID(Watch("a b"))
	assert.True(t, ok)
	assert.Equal(t, "a b", id)

	_, ok = WatchID("/watch/")
	assert.False(t, ok)
	_, ok = WatchID(Home)
	assert.False(t, ok)
}

func TestChannelID(t *testing.T) {
	id, ok := ChannelID(Channel("UC123"))
	assert.True(t, ok)
	assert.Equal(t, "UC123", id)

	_, ok = ChannelID(Watch("UC123"))
	assert.False(t, ok)
}

func TestHistory(t *testing.T) {
	var zero History
	assert.Equal(t, Home, zero.Current())

	h := NewHistory("")
	assert.Equal(t, Home, h.Current())
	assert.False(t, h.Back())

	h.Push(Library)
	h.Push(Library)
	h.Push(Watch("v1"))
	h.Push("")
	assert.Equal(t, "/watch/v1", h.Current())

	assert.True(t, h.Back())
	assert.Equal(t, Library, h.Current(), "repeated push of the same route is one entry")
	assert.True(t, h.Back())
	assert.False(t, h.Back())
	assert.Equal(t, Home, h.Current())
}

package domain

import (
	"strings"
	"time"
)

// VideoRef is the unit stored in every video collection
type VideoRef struct {
	VideoID   string    `json:"videoId"`             // Catalog-assigned identifier
	Title     string    `json:"title"`               // Display title
	Thumbnail string    `json:"thumbnail,omitempty"` // Thumbnail URL (optional)
	Channel   string    `json:"channel"`             // Channel display name
	ChannelID string    `json:"channelId"`           // Channel identifier
	WatchedAt time.Time `json:"watchedAt,omitzero"`  // Set on History entries only
}

// Valid reports whether the reference carries a usable video ID
func (v VideoRef) Valid() bool {
	return strings.TrimSpace(v.VideoID) != ""
}

// ChannelRef returns the channel this video belongs to
func (v VideoRef) ChannelRef() ChannelRef {
	return ChannelRef{ChannelID: v.ChannelID, ChannelTitle: v.Channel}
}

// ChannelRef is the unit stored in Subscriptions
type ChannelRef struct {
	ChannelID    string `json:"channelId"`
	ChannelTitle string `json:"channelTitle"`
}

// Valid reports whether the reference carries a usable channel ID
func (c ChannelRef) Valid() bool {
	return strings.TrimSpace(c.ChannelID) != ""
}

// PlayerState is a snapshot of the mini-player session.
// Display fields are zero whenever IsOpen is false.
type PlayerState struct {
	IsOpen    bool
	VideoID   string
	Title     string
	Channel   string
	Thumbnail string
	IsPaused  bool
}

// Video returns the loaded video as a reference (zero when closed)
func (s PlayerState) Video() VideoRef {
	if !s.IsOpen {
		return VideoRef{}
	}
	return VideoRef{
		VideoID:   s.VideoID,
		Title:     s.Title,
		Channel:   s.Channel,
		Thumbnail: s.Thumbnail,
	}
}

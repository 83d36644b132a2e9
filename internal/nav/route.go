// Package nav holds the client route table and the predicates the
// mini-player uses to decide visibility. It owns no router state.
package nav

import (
	"net/url"
	"strings"
)

// Static routes
const (
	Home          = "/"
	Library       = "/library"
	Subscriptions = "/subscriptions"
)

const (
	watchPrefix   = "/watch/"
	channelPrefix = "/channel/"
)

// Watch returns the full video-detail route for id
func Watch(id string) string {
	return watchPrefix + url.PathEscape(id)
}

// Channel returns the channel page route
func Channel(id string) string {
	return channelPrefix + url.PathEscape(id)
}

// path strips query and fragment from a route
func path(route string) string {
	if i := strings.IndexAny(route, "?#"); i >= 0 {
		return route[:i]
	}
	return route
}

// IsWatch reports whether route is the video-detail page of any video
func IsWatch(route string) bool {
	return strings.HasPrefix(path(route), watchPrefix)
}

// WatchID extracts the video id from a watch route
func WatchID(route string) (string, bool) {
	return param(route, watchPrefix)
}

// ChannelID extracts the channel id from a channel route
func ChannelID(route string) (string, bool) {
	return param(route, channelPrefix)
}

func param(route, prefix string) (string, bool) {
	p := path(route)
	if !strings.HasPrefix(p, prefix) {
		return "", false
	}
	id, err := url.PathUnescape(strings.TrimPrefix(p, prefix))
	if err != nil || id == "" {
		return "", false
	}
	return id, true
}

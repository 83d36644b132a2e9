package domain

// CollectionKind identifies one of the persisted user collections
type CollectionKind int

const (
	CollectionWatchLater CollectionKind = iota
	CollectionLiked
	CollectionHistory
	CollectionSubscriptions
)

// Kinds lists every collection kind in display order
var Kinds = []CollectionKind{
	CollectionHistory,
	CollectionWatchLater,
	CollectionLiked,
	CollectionSubscriptions,
}

// Key returns the fixed persistence key for the collection
func (k CollectionKind) Key() string {
	switch k {
	case CollectionWatchLater:
		return "yt_watchLater"
	case CollectionLiked:
		return "yt_likedVideos"
	case CollectionHistory:
		return "yt_watchHistory"
	case CollectionSubscriptions:
		return "yt_subscriptions"
	default:
		return ""
	}
}

// String returns the display label
func (k CollectionKind) String() string {
	switch k {
	case CollectionWatchLater:
		return "Watch Later"
	case CollectionLiked:
		return "Liked Videos"
	case CollectionHistory:
		return "History"
	case CollectionSubscriptions:
		return "Subscriptions"
	default:
		return "Unknown"
	}
}

// ParseCollectionKind maps a CLI/config name to a kind
func ParseCollectionKind(name string) (CollectionKind, bool) {
	switch name {
	case "watch-later", "watchlater", "later":
		return CollectionWatchLater, true
	case "liked", "likes":
		return CollectionLiked, true
	case "history":
		return CollectionHistory, true
	case "subscriptions", "subs":
		return CollectionSubscriptions, true
	default:
		return 0, false
	}
}

// Package catalog narrows records from the remote video catalog (YouTube Data
// API v3 shapes) into the VideoRef and ChannelRef values the collections
// store. It is the only place loosely-shaped catalog payloads are accepted.
package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"google.golang.org/api/youtube/v3"

	"github.com/mmcdole/minitube/internal/domain"
)

// ErrUnsupportedPayload indicates a document that is not a known list response
var ErrUnsupportedPayload = errors.New("unsupported catalog payload")

// Response kinds accepted by DecodeVideos and DecodeChannels
const (
	KindVideoList        = "youtube#videoListResponse"
	KindSearchList       = "youtube#searchListResponse"
	KindPlaylistItemList = "youtube#playlistItemListResponse"
	KindChannelList      = "youtube#channelListResponse"
	KindSubscriptionList = "youtube#subscriptionListResponse"
)

// FromVideo narrows a videos.list record
func FromVideo(v *youtube.Video) (domain.VideoRef, error) {
	if v == nil || v.Snippet == nil {
		return domain.VideoRef{}, domain.ErrInvalidVideo
	}
	return build(v.Id, v.Snippet.Title, v.Snippet.ChannelTitle, v.Snippet.ChannelId, v.Snippet.Thumbnails)
}

// FromSearchResult narrows a search.list record. Only video results qualify.
func FromSearchResult(r *youtube.SearchResult) (domain.VideoRef, error) {
	if r == nil || r.Id == nil || r.Snippet == nil || r.Id.VideoId == "" {
		return domain.VideoRef{}, domain.ErrInvalidVideo
	}
	return build(r.Id.VideoId, r.Snippet.Title, r.Snippet.ChannelTitle, r.Snippet.ChannelId, r.Snippet.Thumbnails)
}

// FromPlaylistItem narrows a playlistItems.list record. The channel is the
// video owner's, not the playlist owner's.
func FromPlaylistItem(p *youtube.PlaylistItem) (domain.VideoRef, error) {
	if p == nil || p.Snippet == nil {
		return domain.VideoRef{}, domain.ErrInvalidVideo
	}

	id := ""
	if p.ContentDetails != nil {
		id = p.ContentDetails.VideoId
	}
	if id == "" && p.Snippet.ResourceId != nil {
		id = p.Snippet.ResourceId.VideoId
	}

	channel, channelID := p.Snippet.VideoOwnerChannelTitle, p.Snippet.VideoOwnerChannelId
	if channelID == "" {
		channel, channelID = p.Snippet.ChannelTitle, p.Snippet.ChannelId
	}
	return build(id, p.Snippet.Title, channel, channelID, p.Snippet.Thumbnails)
}

// ChannelOf returns the channel a video record belongs to
func ChannelOf(v *youtube.Video) (domain.ChannelRef, error) {
	if v == nil || v.Snippet == nil {
		return domain.ChannelRef{}, domain.ErrInvalidChannel
	}
	c := domain.ChannelRef{
		ChannelID:    strings.TrimSpace(v.Snippet.ChannelId),
		ChannelTitle: v.Snippet.ChannelTitle,
	}
	if !c.Valid() {
		return domain.ChannelRef{}, domain.ErrInvalidChannel
	}
	return c, nil
}

// FromChannel narrows a channels.list record
func FromChannel(ch *youtube.Channel) (domain.ChannelRef, error) {
	if ch == nil {
		return domain.ChannelRef{}, domain.ErrInvalidChannel
	}
	c := domain.ChannelRef{ChannelID: strings.TrimSpace(ch.Id)}
	if ch.Snippet != nil {
		c.ChannelTitle = ch.Snippet.Title
	}
	if !c.Valid() {
		return domain.ChannelRef{}, domain.ErrInvalidChannel
	}
	return c, nil
}

// FromSubscription narrows a subscriptions.list record to the channel
// subscribed to
func FromSubscription(sub *youtube.Subscription) (domain.ChannelRef, error) {
	if sub == nil || sub.Snippet == nil || sub.Snippet.ResourceId == nil {
		return domain.ChannelRef{}, domain.ErrInvalidChannel
	}
	c := domain.ChannelRef{
		ChannelID:    strings.TrimSpace(sub.Snippet.ResourceId.ChannelId),
		ChannelTitle: sub.Snippet.Title,
	}
	if !c.Valid() {
		return domain.ChannelRef{}, domain.ErrInvalidChannel
	}
	return c, nil
}

// Thumbnail picks the medium thumbnail, falling back to high then default
func Thumbnail(t *youtube.ThumbnailDetails) string {
	if t == nil {
		return ""
	}
	for _, th := range []*youtube.Thumbnail{t.Medium, t.High, t.Default} {
		if th != nil && th.Url != "" {
			return th.Url
		}
	}
	return ""
}

func build(id, title, channel, channelID string, thumbs *youtube.ThumbnailDetails) (domain.VideoRef, error) {
	ref := domain.VideoRef{
		VideoID:   strings.TrimSpace(id),
		Title:     title,
		Thumbnail: Thumbnail(thumbs),
		Channel:   channel,
		ChannelID: channelID,
	}
	if !ref.Valid() {
		return domain.VideoRef{}, domain.ErrInvalidVideo
	}
	return ref, nil
}

// DecodeVideos reads a saved list response (videos, search or playlist
// items) or a bare JSON array of video references. Records that cannot be
// narrowed are skipped.
func DecodeVideos(r io.Reader) ([]domain.VideoRef, error) {
	data, kind, err := readDocument(r)
	if err != nil {
		return nil, err
	}

	if kind == "" {
		var refs []domain.VideoRef
		if err := json.Unmarshal(data, &refs); err != nil {
			return nil, fmt.Errorf("decode video array: %w", err)
		}
		out := make([]domain.VideoRef, 0, len(refs))
		for _, ref := range refs {
			ref.VideoID = strings.TrimSpace(ref.VideoID)
			if ref.Valid() {
				out = append(out, ref)
			}
		}
		return out, nil
	}

	switch kind {
	case KindVideoList:
		var resp youtube.VideoListResponse
		if err := json.Unmarshal(data, &resp); err != nil {
			return nil, fmt.Errorf("decode %s: %w", kind, err)
		}
		return collect(resp.Items, FromVideo), nil
	case KindSearchList:
		var resp youtube.SearchListResponse
		if err := json.Unmarshal(data, &resp); err != nil {
			return nil, fmt.Errorf("decode %s: %w", kind, err)
		}
		return collect(resp.Items, FromSearchResult), nil
	case KindPlaylistItemList:
		var resp youtube.PlaylistItemListResponse
		if err := json.Unmarshal(data, &resp); err != nil {
			return nil, fmt.Errorf("decode %s: %w", kind, err)
		}
		return collect(resp.Items, FromPlaylistItem), nil
	default:
		return nil, fmt.Errorf("%w: kind %q", ErrUnsupportedPayload, kind)
	}
}

// DecodeChannels reads a saved channels or subscriptions list response, a
// video list response (each video contributes its channel) or a bare JSON
// array of channel references. Duplicate channels keep their first position.
func DecodeChannels(r io.Reader) ([]domain.ChannelRef, error) {
	data, kind, err := readDocument(r)
	if err != nil {
		return nil, err
	}

	var out []domain.ChannelRef
	switch kind {
	case "":
		var refs []domain.ChannelRef
		if err := json.Unmarshal(data, &refs); err != nil {
			return nil, fmt.Errorf("decode channel array: %w", err)
		}
		out = collect(refs, func(c domain.ChannelRef) (domain.ChannelRef, error) {
			c.ChannelID = strings.TrimSpace(c.ChannelID)
			if !c.Valid() {
				return domain.ChannelRef{}, domain.ErrInvalidChannel
			}
			return c, nil
		})
	case KindChannelList:
		var resp youtube.ChannelListResponse
		if err := json.Unmarshal(data, &resp); err != nil {
			return nil, fmt.Errorf("decode %s: %w", kind, err)
		}
		out = collect(resp.Items, FromChannel)
	case KindSubscriptionList:
		var resp youtube.SubscriptionListResponse
		if err := json.Unmarshal(data, &resp); err != nil {
			return nil, fmt.Errorf("decode %s: %w", kind, err)
		}
		out = collect(resp.Items, FromSubscription)
	case KindVideoList:
		var resp youtube.VideoListResponse
		if err := json.Unmarshal(data, &resp); err != nil {
			return nil, fmt.Errorf("decode %s: %w", kind, err)
		}
		out = collect(resp.Items, ChannelOf)
	default:
		return nil, fmt.Errorf("%w: kind %q", ErrUnsupportedPayload, kind)
	}
	return uniqueChannels(out), nil
}

// readDocument returns the trimmed payload and its list kind. A bare JSON
// array has an empty kind.
func readDocument(r io.Reader) ([]byte, string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", fmt.Errorf("read catalog payload: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, "", fmt.Errorf("%w: empty document", ErrUnsupportedPayload)
	}
	if data[0] == '[' {
		return data, "", nil
	}

	var head struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, "", fmt.Errorf("decode catalog payload: %w", err)
	}
	if head.Kind == "" {
		return nil, "", fmt.Errorf("%w: missing kind", ErrUnsupportedPayload)
	}
	return data, head.Kind, nil
}

func uniqueChannels(in []domain.ChannelRef) []domain.ChannelRef {
	seen := make(map[string]struct{}, len(in))
	out := in[:0]
	for _, c := range in {
		if _, ok := seen[c.ChannelID]; ok {
			continue
		}
		seen[c.ChannelID] = struct{}{}
		out = append(out, c)
	}
	return out
}

func collect[T, R any](items []T, narrow func(T) (R, error)) []R {
	out := make([]R, 0, len(items))
	for _, item := range items {
		ref, err := narrow(item)
		if err != nil {
			continue
		}
		out = append(out, ref)
	}
	return out
}

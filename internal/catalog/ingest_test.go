package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/youtube/v3"

	"github.com/mmcdole/minitube/internal/domain"
)

func TestFromVideo(t *testing.T) {
	v := &youtube.Video{
		Id: "dQw4w9WgXcQ",
		Snippet: &youtube.VideoSnippet{
			Title:        "Never Gonna Give You Up",
			ChannelId:    "UCuAXFkgsw1L7xaCfnd5JJOw",
			ChannelTitle: "Rick Astley",
			PublishedAt:  "2009-10-25T06:57:33Z",
			Thumbnails: &youtube.ThumbnailDetails{
				Default: &youtube.Thumbnail{Url: "https://i.ytimg.com/vi/dQw4w9WgXcQ/default.jpg"},
				Medium:  &youtube.Thumbnail{Url: "https://i.ytimg.com/vi/dQw4w9WgXcQ/mqdefault.jpg"},
			},
		},
		Statistics: &youtube.VideoStatistics{ViewCount: 1500000000},
	}

	ref, err := FromVideo(v)
	require.NoError(t, err)
	assert.Equal(t, domain.VideoRef{
		VideoID:   "dQw4w9WgXcQ",
		Title:     "Never Gonna Give You Up",
		Thumbnail: "https://i.ytimg.com/vi/dQw4w9WgXcQ/mqdefault.jpg",
		Channel:   "Rick Astley",
		ChannelID: "UCuAXFkgsw1L7xaCfnd5JJOw",
	}, ref)

	ch, err := ChannelOf(v)
	require.NoError(t, err)
	assert.Equal(t, domain.ChannelRef{ChannelID: "UCuAXFkgsw1L7xaCfnd5JJOw", ChannelTitle: "Rick Astley"}, ch)
}

func TestFromVideo_Invalid(t *testing.T) {
	_, err := FromVideo(nil)
	assert.ErrorIs(t, err, domain.ErrInvalidVideo)

	_, err = FromVideo(&youtube.Video{Id: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidVideo)

	_, err = FromVideo(&youtube.Video{Snippet: &youtube.VideoSnippet{Title: "no id"}})
	assert.ErrorIs(t, err, domain.ErrInvalidVideo)

	_, err = ChannelOf(&youtube.Video{Id: "x", Snippet: &youtube.VideoSnippet{}})
	assert.ErrorIs(t, err, domain.ErrInvalidChannel)
}

func TestFromSearchResult_SkipsNonVideos(t *testing.T) {
	channel := &youtube.SearchResult{
		Id:      &youtube.ResourceId{Kind: "youtube#channel", ChannelId: "UC1"},
		Snippet: &youtube.SearchResultSnippet{Title: "A channel"},
	}
	_, err := FromSearchResult(channel)
	assert.ErrorIs(t, err, domain.ErrInvalidVideo)

	video := &youtube.SearchResult{
		Id:      &youtube.ResourceId{Kind: "youtube#video", VideoId: "v1"},
		Snippet: &youtube.SearchResultSnippet{Title: "A video", ChannelId: "UC1", ChannelTitle: "Chan"},
	}
	ref, err := FromSearchResult(video)
	require.NoError(t, err)
	assert.Equal(t, "v1", ref.VideoID)
	assert.Empty(t, ref.Thumbnail)
}

func TestFromPlaylistItem_UsesVideoOwner(t *testing.T) {
	item := &youtube.PlaylistItem{
		Snippet: &youtube.PlaylistItemSnippet{
			Title:                  "Track",
			ChannelId:              "UCplaylistOwner",
			ChannelTitle:           "Curator",
			VideoOwnerChannelId:    "UCartist",
			VideoOwnerChannelTitle: "Artist",
			ResourceId:             &youtube.ResourceId{VideoId: "v9"},
		},
	}
	ref, err := FromPlaylistItem(item)
	require.NoError(t, err)
	assert.Equal(t, "v9", ref.VideoID)
	assert.Equal(t, "UCartist", ref.ChannelID)
	assert.Equal(t, "Artist", ref.Channel)
}

func TestFromChannel(t *testing.T) {
	c, err := FromChannel(&youtube.Channel{Id: "UC1", Snippet: &youtube.ChannelSnippet{Title: "One"}})
	require.NoError(t, err)
	assert.Equal(t, domain.ChannelRef{ChannelID: "UC1", ChannelTitle: "One"}, c)

	_, err = FromChannel(&youtube.Channel{})
	assert.ErrorIs(t, err, domain.ErrInvalidChannel)
}

func TestThumbnailFallback(t *testing.T) {
	assert.Empty(t, Thumbnail(nil))
	assert.Equal(t, "hi", Thumbnail(&youtube.ThumbnailDetails{
		High:    &youtube.Thumbnail{Url: "hi"},
		Default: &youtube.Thumbnail{Url: "def"},
	}))
	assert.Equal(t, "def", Thumbnail(&youtube.ThumbnailDetails{
		Medium:  &youtube.Thumbnail{},
		Default: &youtube.Thumbnail{Url: "def"},
	}))
}

func TestDecodeVideos_VideoListResponse(t *testing.T) {
	doc := `{
	  "kind": "youtube#videoListResponse",
	  "items": [
	    {
	      "kind": "youtube#video",
	      "id": "v1",
	      "snippet": {
	        "publishedAt": "2024-05-01T10:00:00Z",
	        "channelId": "UC1",
	        "title": "First",
	        "thumbnails": {"medium": {"url": "https://i.ytimg.com/vi/v1/mqdefault.jpg", "width": 320, "height": 180}},
	        "channelTitle": "Chan"
	      },
	      "statistics": {"viewCount": "1000", "likeCount": "10"}
	    },
	    {"kind": "youtube#video", "id": "broken"}
	  ]
	}`

	refs, err := DecodeVideos(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, "v1", refs[0].VideoID)
	assert.Equal(t, "Chan", refs[0].Channel)
	assert.Equal(t, "https://i.ytimg.com/vi/v1/mqdefault.jpg", refs[0].Thumbnail)
}

func TestDecodeVideos_SearchListResponse(t *testing.T) {
	doc := `{
	  "kind": "youtube#searchListResponse",
	  "items": [
	    {"id": {"kind": "youtube#video", "videoId": "s1"}, "snippet": {"title": "Hit", "channelId": "UC2", "channelTitle": "Two"}},
	    {"id": {"kind": "youtube#channel", "channelId": "UC3"}, "snippet": {"title": "Not a video"}}
	  ]
	}`

	refs, err := DecodeVideos(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, "s1", refs[0].VideoID)
}

func TestDecodeVideos_BareArray(t *testing.T) {
	doc := `[{"videoId":"a","title":"A"},{"title":"no id"},{"videoId":"b"}]`

	refs, err := DecodeVideos(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.Equal(t, "a", refs[0].VideoID)
	assert.Equal(t, "b", refs[1].VideoID)
}

func TestDecodeVideos_Errors(t *testing.T) {
	_, err := DecodeVideos(strings.NewReader("   "))
	assert.ErrorIs(t, err, ErrUnsupportedPayload)

	_, err = DecodeVideos(strings.NewReader(`{"kind":"youtube#channelListResponse","items":[]}`))
	assert.ErrorIs(t, err, ErrUnsupportedPayload)

	_, err = DecodeVideos(strings.NewReader(`{not json`))
	assert.Error(t, err)
}

func TestFromSubscription(t *testing.T) {
	c, err := FromSubscription(&youtube.Subscription{Snippet: &youtube.SubscriptionSnippet{
		Title:      "Charm",
		ChannelId:  "UCsubscriber",
		ResourceId: &youtube.ResourceId{Kind: "youtube#channel", ChannelId: " UCcharm "},
	}})
	require.NoError(t, err)
	assert.Equal(t, domain.ChannelRef{ChannelID: "UCcharm", ChannelTitle: "Charm"}, c)

	_, err = FromSubscription(&youtube.Subscription{Snippet: &youtube.SubscriptionSnippet{Title: "no resource"}})
	assert.ErrorIs(t, err, domain.ErrInvalidChannel)
}

func TestDecodeChannels_ChannelListResponse(t *testing.T) {
	doc := `{
	  "kind": "youtube#channelListResponse",
	  "items": [
	    {"kind": "youtube#channel", "id": "UC1", "snippet": {"title": "One"}},
	    {"kind": "youtube#channel", "snippet": {"title": "No id"}},
	    {"kind": "youtube#channel", "id": "UC2", "snippet": {"title": "Two"}}
	  ]
	}`

	chans, err := DecodeChannels(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, []domain.ChannelRef{
		{ChannelID: "UC1", ChannelTitle: "One"},
		{ChannelID: "UC2", ChannelTitle: "Two"},
	}, chans)
}

func TestDecodeChannels_SubscriptionListResponse(t *testing.T) {
	doc := `{
	  "kind": "youtube#subscriptionListResponse",
	  "items": [
	    {"kind": "youtube#subscription", "snippet": {"title": "Go", "resourceId": {"kind": "youtube#channel", "channelId": "UCgo"}}}
	  ]
	}`

	chans, err := DecodeChannels(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, []domain.ChannelRef{{ChannelID: "UCgo", ChannelTitle: "Go"}}, chans)
}

func TestDecodeChannels_VideoListUsesOwners(t *testing.T) {
	doc := `{
	  "kind": "youtube#videoListResponse",
	  "items": [
	    {"id": "v1", "snippet": {"title": "First", "channelId": "UC1", "channelTitle": "One"}},
	    {"id": "v2", "snippet": {"title": "Second", "channelId": "UC2", "channelTitle": "Two"}},
	    {"id": "v3", "snippet": {"title": "Third", "channelId": "UC1", "channelTitle": "One"}},
	    {"id": "v4", "snippet": {"title": "No channel"}}
	  ]
	}`

	chans, err := DecodeChannels(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, []domain.ChannelRef{
		{ChannelID: "UC1", ChannelTitle: "One"},
		{ChannelID: "UC2", ChannelTitle: "Two"},
	}, chans)
}

func TestDecodeChannels_BareArray(t *testing.T) {
	doc := `[{"channelId":" UC1 ","channelTitle":"One"},{"channelTitle":"no id"},{"channelId":"UC1","channelTitle":"dup"}]`

	chans, err := DecodeChannels(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, []domain.ChannelRef{{ChannelID: "UC1", ChannelTitle: "One"}}, chans)
}

func TestDecodeChannels_Errors(t *testing.T) {
	_, err := DecodeChannels(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrUnsupportedPayload)

	_, err = DecodeChannels(strings.NewReader(`{"kind":"youtube#searchListResponse","items":[]}`))
	assert.ErrorIs(t, err, ErrUnsupportedPayload)

	_, err = DecodeChannels(strings.NewReader(`{"items":[]}`))
	assert.ErrorIs(t, err, ErrUnsupportedPayload)
}

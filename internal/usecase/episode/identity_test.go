package episode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractEpisodeID(t *testing.T) {
	tests := []struct {
		name string
		guid string
		link string
		want string
	}{
		{
			name: "store URL query parameter in guid",
			guid: "https://podcasts.apple.com/podcast/id123?i=1000612345678",
			want: "1000612345678",
		},
		{
			name: "query parameter not first in query string",
			guid: "https://podcasts.apple.com/podcast/id123?foo=bar&i=1000612345678",
			want: "1000612345678",
		},
		{
			name: "bare track identifier",
			guid: "1000612345678",
			want: "1000612345678",
		},
		{
			name: "digit run embedded in opaque guid",
			guid: "tag:example.com,2024:ep/1000612345678/final",
			want: "1000612345678",
		},
		{
			name: "short digit run is not an identifier",
			guid: "ep-123456",
			link: "https://example.com/ep/123456",
			want: "42-episode-3",
		},
		{
			name: "unix timestamp in guid is not an identifier",
			guid: "tag:podbean.com,2023:ep/1696502400/final",
			want: "42-episode-3",
		},
		{
			name: "long digit run without the track shape is not an identifier",
			guid: "ep-99999999999999",
			want: "42-episode-3",
		},
		{
			name: "guid empty, link carries the identifier",
			guid: "",
			link: "https://podcasts.apple.com/podcast/id123?i=1000698765432",
			want: "1000698765432",
		},
		{
			name: "nothing usable synthesizes positional identifier",
			guid: "urn:uuid:not-numeric",
			link: "https://example.com/episode-three",
			want: "42-episode-3",
		},
		{
			name: "empty everything",
			want: "42-episode-3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractEpisodeID(tt.guid, tt.link, 2, "42")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractEpisodeID_Deterministic(t *testing.T) {
	a := ExtractEpisodeID("urn:uuid:abc", "", 0, "7")
	b := ExtractEpisodeID("urn:uuid:abc", "", 0, "7")
	assert.Equal(t, a, b)
	assert.Equal(t, "7-episode-1", a)
}

func TestIsCatalogID(t *testing.T) {
	assert.True(t, IsCatalogID("1000612345678"))
	assert.True(t, IsCatalogID("1234567890"))
	assert.False(t, IsCatalogID("123456789"))
	assert.False(t, IsCatalogID("42-episode-1"))
	assert.False(t, IsCatalogID(""))
	assert.False(t, IsCatalogID("1000612345678x"))
}

package feed

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"podcast-browser/internal/domain/entity"
	"podcast-browser/internal/usecase/episode"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
)

const (
	descriptionMaxRunes = 300
	descriptionEllipsis = "..."
)

// Normalize maps parsed feed items onto the internal episode shape in feed
// document order. Every field has a defined fallback so a sparse or sloppy
// feed still yields usable episodes; items are never dropped for missing
// metadata.
func Normalize(f *gofeed.Feed, podcastID string) []entity.Episode {
	if f == nil {
		return nil
	}

	episodes := make([]entity.Episode, 0, len(f.Items))
	for i, it := range f.Items {
		if it == nil {
			continue
		}
		episodes = append(episodes, entity.Episode{
			ID:            episode.ExtractEpisodeID(it.GUID, it.Link, i, podcastID),
			GUID:          it.GUID,
			Title:         episodeTitle(it, i),
			Description:   cleanDescription(it),
			Duration:      formatDuration(durationValue(it)),
			PublishDate:   publishDate(it),
			AudioURL:      audioURL(it),
			ImageURL:      imageURL(f, it),
			EpisodeNumber: intPtr(itunesEpisode(it)),
			SeasonNumber:  intPtr(itunesSeason(it)),
		})
	}
	return episodes
}

func episodeTitle(it *gofeed.Item, index int) string {
	if title := strings.TrimSpace(it.Title); title != "" {
		return title
	}
	return fmt.Sprintf("Episode %d", index+1)
}

// cleanDescription strips markup from the richest available description
// field and truncates it to a short plain-text summary.
func cleanDescription(it *gofeed.Item) string {
	raw := it.Description
	if raw == "" && it.ITunesExt != nil {
		raw = it.ITunesExt.Summary
	}
	if raw == "" {
		raw = it.Content
	}
	if raw == "" {
		return ""
	}

	text := stripHTML(raw)
	runes := []rune(text)
	if len(runes) <= descriptionMaxRunes {
		return text
	}
	return string(runes[:descriptionMaxRunes]) + descriptionEllipsis
}

func stripHTML(s string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	// collapse runs of whitespace left behind by block elements
	return strings.Join(strings.Fields(doc.Text()), " ")
}

func durationValue(it *gofeed.Item) string {
	if it.ITunesExt == nil {
		return ""
	}
	return it.ITunesExt.Duration
}

// formatDuration normalizes iTunes duration values. Colon-separated values
// pass through unchanged, a raw seconds count becomes M:SS, anything else
// becomes the empty string.
func formatDuration(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if strings.Contains(raw, ":") {
		return raw
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs < 0 {
		return ""
	}
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func publishDate(it *gofeed.Item) time.Time {
	if it.PublishedParsed != nil {
		return *it.PublishedParsed
	}
	if it.UpdatedParsed != nil {
		return *it.UpdatedParsed
	}
	return time.Now().UTC()
}

// audioURL picks the enclosure URL, preferring audio-typed enclosures, and
// falls back to the item link when the feed declares no enclosure at all.
func audioURL(it *gofeed.Item) string {
	var first string
	for _, enc := range it.Enclosures {
		if enc == nil || enc.URL == "" {
			continue
		}
		if strings.HasPrefix(enc.Type, "audio") {
			return enc.URL
		}
		if first == "" {
			first = enc.URL
		}
	}
	if first != "" {
		return first
	}
	return it.Link
}

// imageURL resolves episode artwork: per-item artwork first, then the
// channel-level iTunes image, then the plain channel image.
func imageURL(f *gofeed.Feed, it *gofeed.Item) string {
	if it.ITunesExt != nil && it.ITunesExt.Image != "" {
		return it.ITunesExt.Image
	}
	if it.Image != nil && it.Image.URL != "" {
		return it.Image.URL
	}
	if f.ITunesExt != nil && f.ITunesExt.Image != "" {
		return f.ITunesExt.Image
	}
	if f.Image != nil && f.Image.URL != "" {
		return f.Image.URL
	}
	return ""
}

func itunesEpisode(it *gofeed.Item) string {
	if it.ITunesExt == nil {
		return ""
	}
	return it.ITunesExt.Episode
}

func itunesSeason(it *gofeed.Item) string {
	if it.ITunesExt == nil {
		return ""
	}
	return it.ITunesExt.Season
}

func intPtr(raw string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	return &n
}

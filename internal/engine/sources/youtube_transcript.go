package sources

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/anatolykoptev/go_studynotes/internal/engine"
)

// Caption resolution order:
//  1. tracks listed in the watch page player response
//  2. tracks from the ANDROID /player endpoint (different IP reputation rules)

var errPoTokenOnly = errors.New("all caption tracks require PoToken")

// needsPoToken reports whether a caption track URL only works in a browser.
func needsPoToken(baseURL string) bool {
	return strings.Contains(baseURL, "&exp=xpe")
}

// pickBestTrack prefers, in order: a manual track in one of langs, an
// auto-generated track in one of langs, any English track, the first usable
// track. ok is false when nothing usable is left.
func pickBestTrack(tracks []captionTrack, langs []string) (captionTrack, bool) {
	var usable []captionTrack
	for _, t := range tracks {
		if !needsPoToken(t.BaseURL) {
			usable = append(usable, t)
		}
	}
	if len(usable) == 0 {
		if len(tracks) == 0 {
			return captionTrack{}, false
		}
		return tracks[0], false
	}

	match := func(pred func(captionTrack) bool) (captionTrack, bool) {
		for _, t := range usable {
			if pred(t) {
				return t, true
			}
		}
		return captionTrack{}, false
	}
	for _, manual := range []bool{true, false} {
		for _, lang := range langs {
			if t, ok := match(func(t captionTrack) bool {
				return t.LanguageCode == lang && (!manual || t.Kind != "asr")
			}); ok {
				return t, true
			}
		}
	}
	if t, ok := match(func(t captionTrack) bool { return strings.HasPrefix(t.LanguageCode, "en") }); ok {
		return t, true
	}
	return usable[0], true
}

// parseTimedText joins all caption lines into one space-separated string.
func parseTimedText(body []byte) (string, error) {
	var tt timedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return "", fmt.Errorf("parse timedtext: %w", err)
	}
	lines := tt.Lines
	if len(lines) == 0 {
		lines = tt.Paragraphs
	}

	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		if text := engine.CleanHTML(l.Text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " "), nil
}

func fetchTimedText(ctx context.Context, baseURL string) (string, error) {
	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", engine.UserAgentBot)
		return engine.Cfg.HTTPClient.Do(req)
	})
	if err != nil {
		return "", fmt.Errorf("timedtext: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("timedtext HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2*1024*1024))
	if err != nil {
		return "", err
	}
	return parseTimedText(body)
}

// transcriptFromTracks downloads the best track for langs.
func transcriptFromTracks(ctx context.Context, tracks []captionTrack, langs []string) (string, error) {
	if len(tracks) == 0 {
		return "", errors.New("no caption tracks")
	}
	track, ok := pickBestTrack(tracks, langs)
	if !ok {
		return "", errPoTokenOnly
	}
	text, err := fetchTimedText(ctx, track.BaseURL)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", errors.New("empty caption track")
	}
	return text, nil
}

// fetchTranscript resolves captions for a video, starting with the tracks
// already found on the watch page.
func fetchTranscript(ctx context.Context, videoID string, pageTracks []captionTrack, langs []string) (string, error) {
	engine.IncrTranscriptRequests()

	if len(pageTracks) > 0 {
		text, err := transcriptFromTracks(ctx, pageTracks, langs)
		if err == nil {
			return text, nil
		}
		slog.Warn("youtube: watch page captions failed, trying player",
			slog.String("id", videoID), slog.Any("err", err))
	}

	text, err := transcriptViaPlayer(ctx, videoID, langs)
	if err != nil {
		engine.IncrTranscriptErrors()
		return "", err
	}
	return text, nil
}

func transcriptViaPlayer(ctx context.Context, videoID string, langs []string) (string, error) {
	player, err := fetchPlayer(ctx, videoID)
	if err != nil {
		return "", err
	}
	tracks := player.tracks()
	if len(tracks) == 0 {
		if ps := player.PlayabilityStatus; ps != nil && ps.Reason != "" {
			return "", fmt.Errorf("captions unavailable: %s", ps.Reason)
		}
		return "", errors.New("no captions in player response")
	}
	return transcriptFromTracks(ctx, tracks, langs)
}

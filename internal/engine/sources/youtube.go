package sources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/anatolykoptev/go_studynotes/internal/engine"
)

// YouTube video data tool, split across files by responsibility:
//   youtube.go            : video ID parsing, watch page scrape, VideoData assembly
//   youtube_meta.go       : <meta> tag fallback for title/description
//   youtube_innertube.go  : player/caption wire types and the ANDROID /player call
//   youtube_transcript.go : caption track selection and transcript fallbacks

// ErrNoVideoID is returned when a link carries no recognizable YouTube video ID.
var ErrNoVideoID = errors.New("no YouTube video ID in link")

var videoIDRE = regexp.MustCompile(`(?:youtube\.com/(?:watch\?(?:.*&)?v=|shorts/|embed/|live/|v/)|youtu\.be/)([a-zA-Z0-9_-]{11})`)

// ExtractVideoID pulls the 11-char video ID from any YouTube URL format.
// A bare 11-char ID is accepted as is.
func ExtractVideoID(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if m := videoIDRE.FindStringSubmatch(rawURL); len(m) >= 2 {
		return m[1]
	}
	if bareIDRE.MatchString(rawURL) {
		return rawURL
	}
	return ""
}

var bareIDRE = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)

// ytInitialPlayerResponseMarker marks the start of the player response JSON in watch page HTML.
const ytInitialPlayerResponseMarker = "ytInitialPlayerResponse = "

// YouTube implements the captions & metadata tool over engine.Cfg.
type YouTube struct{}

// FetchVideo returns title, channel, description and transcript for link.
func (YouTube) FetchVideo(ctx context.Context, link string) (engine.VideoData, error) {
	return FetchVideoData(ctx, link)
}

// FetchVideoData scrapes the watch page for metadata and caption tracks, then
// resolves the transcript. A missing transcript is not an error as long as
// metadata was found; a page with neither fails.
func FetchVideoData(ctx context.Context, link string) (engine.VideoData, error) {
	videoID := ExtractVideoID(link)
	if videoID == "" {
		return engine.VideoData{}, fmt.Errorf("%w: %q", ErrNoVideoID, link)
	}

	cacheKey := engine.CacheKey("video", videoID)
	if v, ok := engine.CacheLoadJSON[engine.VideoData](ctx, cacheKey); ok {
		return v, nil
	}

	ctx, cancel := context.WithTimeout(ctx, engine.Cfg.FetchTimeout)
	defer cancel()

	data := engine.VideoData{ID: videoID, URL: "https://www.youtube.com/watch?v=" + videoID}

	var tracks []captionTrack
	body, err := fetchWatchPage(ctx, videoID)
	if err != nil {
		slog.Warn("youtube: watch page failed", slog.String("id", videoID), slog.Any("err", err))
	} else {
		player, perr := parsePlayerResponse(body)
		if perr != nil {
			slog.Debug("youtube: no player response, using meta tags", slog.String("id", videoID), slog.Any("err", perr))
		}
		applyPlayerResponse(&data, player)
		if data.Title == "" || data.Description == "" {
			meta := parseWatchPageMeta(body)
			if data.Title == "" {
				data.Title = meta.Title
			}
			if data.Description == "" {
				data.Description = meta.Description
			}
		}
		tracks = player.tracks()
	}

	transcript, terr := fetchTranscript(ctx, videoID, tracks, engine.Cfg.TranscriptLangs)
	if terr != nil {
		slog.Warn("youtube: transcript unavailable", slog.String("id", videoID), slog.Any("err", terr))
	}
	data.Transcript = transcript

	if data.Title == "" && data.Transcript == "" {
		if err == nil {
			err = terr
		}
		return engine.VideoData{}, fmt.Errorf("youtube %s: no metadata or captions: %w", videoID, err)
	}

	if data.Transcript != "" {
		engine.CacheStoreJSON(ctx, cacheKey, data)
	}
	return data, nil
}

// fetchWatchPage downloads the watch page HTML. The stealth browser client is
// tried first when configured, plain HTTP with retries otherwise.
func fetchWatchPage(ctx context.Context, videoID string) ([]byte, error) {
	watchURL := ytWatchURL + "?v=" + videoID + "&hl=en"

	if bc := engine.Cfg.BrowserClient; bc != nil {
		headers := engine.ChromeHeaders()
		headers["accept-language"] = "en-US,en;q=0.9"
		data, _, status, err := bc.Do(http.MethodGet, watchURL, headers, nil)
		if err == nil && status == http.StatusOK {
			return data, nil
		}
		slog.Debug("youtube: stealth watch page failed, using plain HTTP",
			slog.String("id", videoID), slog.Int("status", status), slog.Any("err", err))
	}

	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, watchURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", engine.RandomUserAgent())
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		return engine.Cfg.HTTPClient.Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("watch page: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("watch page HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 6*1024*1024))
	if err != nil {
		return nil, fmt.Errorf("read watch page: %w", err)
	}
	return body, nil
}

// parsePlayerResponse extracts ytInitialPlayerResponse from watch page HTML.
func parsePlayerResponse(body []byte) (*playerResponse, error) {
	idx := strings.Index(string(body), ytInitialPlayerResponseMarker)
	if idx < 0 {
		return nil, errors.New("ytInitialPlayerResponse not found in watch page")
	}
	jsonData := extractJSON(body[idx+len(ytInitialPlayerResponseMarker):])
	if jsonData == nil {
		return nil, errors.New("failed to extract ytInitialPlayerResponse JSON")
	}
	var playerResp playerResponse
	if err := json.Unmarshal(jsonData, &playerResp); err != nil {
		return nil, fmt.Errorf("decode ytInitialPlayerResponse: %w", err)
	}
	return &playerResp, nil
}

func applyPlayerResponse(data *engine.VideoData, player *playerResponse) {
	if player == nil || player.VideoDetails == nil {
		return
	}
	d := player.VideoDetails
	data.Title = d.Title
	data.Author = d.Author
	data.Description = d.ShortDescription
	if n, err := strconv.Atoi(d.LengthSeconds); err == nil {
		data.LengthSeconds = n
	}
}

// extractJSON extracts a complete JSON object starting at b[0] == '{' by tracking brace depth.
func extractJSON(b []byte) []byte {
	if len(b) == 0 || b[0] != '{' {
		return nil
	}
	depth := 0
	inStr := false
	escaped := false
	for i, c := range b {
		if inStr {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return b[:i+1]
			}
		}
	}
	return nil
}

// FormatVideoData renders tool output the way the agent sees it.
// The transcript is cut at a word boundary to maxChars.
func FormatVideoData(v engine.VideoData, maxChars int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "URL: %s\n", v.URL)
	if v.Title != "" {
		fmt.Fprintf(&sb, "Title: %s\n", v.Title)
	}
	if v.Author != "" {
		fmt.Fprintf(&sb, "Channel: %s\n", v.Author)
	}
	if v.LengthSeconds > 0 {
		fmt.Fprintf(&sb, "Duration: %d:%02d\n", v.LengthSeconds/60, v.LengthSeconds%60)
	}
	if v.Description != "" {
		fmt.Fprintf(&sb, "Description: %s\n", engine.TruncateRunes(v.Description, 1500, "..."))
	}
	if v.Transcript != "" {
		transcript := v.Transcript
		if maxChars > 0 && len([]rune(transcript)) > maxChars {
			transcript = engine.TruncateAtWord(transcript, maxChars) + " ..."
		}
		fmt.Fprintf(&sb, "Captions: %s\n", transcript)
	} else {
		sb.WriteString("Captions: (not available)\n")
	}
	return sb.String()
}

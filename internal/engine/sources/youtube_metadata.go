package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/anatolykoptev/go_tldr/internal/engine"
)

const ytOEmbedURL = "https://www.youtube.com/oembed"

// OEmbed implements engine.MetadataSource with YouTube's oEmbed endpoint.
type OEmbed struct {
	endpoint string
}

// NewOEmbed returns an oEmbed source. An empty endpoint means youtube.com.
func NewOEmbed(endpoint string) *OEmbed {
	if endpoint == "" {
		endpoint = ytOEmbedURL
	}
	return &OEmbed{endpoint: endpoint}
}

var _ engine.MetadataSource = (*OEmbed)(nil)

type oembedResp struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// Metadata returns the title and thumbnail of videoID.
func (o *OEmbed) Metadata(ctx context.Context, videoID string) (engine.VideoMetadata, error) {
	engine.IncrOEmbedRequests()

	q := url.Values{
		"url":    {"https://www.youtube.com/watch?v=" + videoID},
		"format": {"json"},
	}
	target := o.endpoint + "?" + q.Encode()

	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", engine.UserAgentBot)
		req.Header.Set("Accept", "application/json")
		return engine.Cfg.HTTPClient.Do(req)
	})
	if err != nil {
		return engine.VideoMetadata{}, fmt.Errorf("oembed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return engine.VideoMetadata{}, fmt.Errorf("oembed: HTTP %d", resp.StatusCode)
	}

	var r oembedResp
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64*1024)).Decode(&r); err != nil {
		return engine.VideoMetadata{}, fmt.Errorf("oembed decode: %w", err)
	}
	return engine.VideoMetadata{Title: r.Title, ThumbnailURL: r.ThumbnailURL}, nil
}

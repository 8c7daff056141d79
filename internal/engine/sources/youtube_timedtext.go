package sources

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/anatolykoptev/go_tldr/internal/engine"
)

const maxTimedTextBytes = 2 << 20

type ytTimedText struct {
	Lines []ytLine `xml:"text"`
}

type ytLine struct {
	Start string `xml:"start,attr"`
	Dur   string `xml:"dur,attr"`
	Text  string `xml:",chardata"`
}

// fetchTimedText downloads a caption track and parses it into segments.
func fetchTimedText(ctx context.Context, baseURL string) ([]engine.Segment, error) {
	if needsPoToken(baseURL) {
		return nil, errors.New("caption track requires a PoToken")
	}
	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", engine.UserAgentBot)
		return engine.Cfg.HTTPClient.Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("fetch timedtext: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch timedtext: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxTimedTextBytes))
	if err != nil {
		return nil, fmt.Errorf("read timedtext: %w", err)
	}
	return parseTimedText(body)
}

// parseTimedText decodes <transcript><text start dur>…</text></transcript>.
// Text is returned raw; cleanup happens when segments are joined.
func parseTimedText(body []byte) ([]engine.Segment, error) {
	if len(body) == 0 {
		return nil, nil
	}
	var tt ytTimedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return nil, fmt.Errorf("parse timedtext XML: %w", err)
	}
	segs := make([]engine.Segment, 0, len(tt.Lines))
	for _, l := range tt.Lines {
		start, _ := strconv.ParseFloat(l.Start, 64)
		dur, _ := strconv.ParseFloat(l.Dur, 64)
		segs = append(segs, engine.Segment{Text: l.Text, Start: start, Duration: dur})
	}
	return segs, nil
}

package capability

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const (
	maxRetries     = 3
	initialBackoff = 500 * time.Millisecond
)

// RemoteClient talks to external model services over JSON/HTTP. One client
// serves both the keyword-ranking and the entity/phrase endpoints; either URL
// may be empty, in which case the corresponding capability reports itself
// unavailable and the pipeline degrades.
type RemoteClient struct {
	client     *http.Client
	rankURL    string
	analyzeURL string
	log        *slog.Logger
}

// NewRemoteClient builds a client with the given per-request timeout.
func NewRemoteClient(rankURL, analyzeURL string, timeout time.Duration, log *slog.Logger) *RemoteClient {
	return &RemoteClient{
		client:     &http.Client{Timeout: timeout},
		rankURL:    rankURL,
		analyzeURL: analyzeURL,
		log:        log,
	}
}

type rankRequest struct {
	Text string `json:"text"`
	TopN int    `json:"top_n"`
}

type rankResponse struct {
	Keywords []RankedPhrase `json:"keywords"`
}

type analyzeRequest struct {
	Text string `json:"text"`
}

// Rank requests keyword rankings from the remote service.
func (r *RemoteClient) Rank(ctx context.Context, text string, topN int) ([]RankedPhrase, error) {
	if r.rankURL == "" {
		return nil, fmt.Errorf("keyword service not configured")
	}
	var resp rankResponse
	if err := r.postJSON(ctx, r.rankURL, rankRequest{Text: text, TopN: topN}, &resp); err != nil {
		return nil, err
	}
	return resp.Keywords, nil
}

// Analyze requests entities and noun phrases from the remote service.
func (r *RemoteClient) Analyze(ctx context.Context, text string) (Analysis, error) {
	if r.analyzeURL == "" {
		return Analysis{}, fmt.Errorf("nlp service not configured")
	}
	var resp Analysis
	if err := r.postJSON(ctx, r.analyzeURL, analyzeRequest{Text: text}, &resp); err != nil {
		return Analysis{}, err
	}
	return resp, nil
}

func (r *RemoteClient) postJSON(ctx context.Context, endpoint string, input, output any) error {
	body, err := json.Marshal(input)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	start := time.Now()
	backoff := initialBackoff
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := r.client.Do(req)
		if err == nil && resp.StatusCode < 500 {
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				io.Copy(io.Discard, resp.Body)
				return fmt.Errorf("service returned status %d", resp.StatusCode)
			}
			if err := json.NewDecoder(resp.Body).Decode(output); err != nil {
				return fmt.Errorf("decode response: %w", err)
			}
			r.log.Debug("capability request ok",
				slog.String("endpoint", endpoint),
				slog.Duration("elapsed", time.Since(start)))
			return nil
		}

		if resp != nil {
			resp.Body.Close()
			lastErr = fmt.Errorf("service returned status %d", resp.StatusCode)
		} else {
			lastErr = err
		}
		if attempt == maxRetries-1 {
			break
		}
		r.log.Warn("capability request failed, will retry",
			slog.String("endpoint", endpoint),
			slog.Int("attempt", attempt+1),
			slog.Any("error", lastErr))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}

	return fmt.Errorf("capability request failed after %d attempts: %w", maxRetries, lastErr)
}

package data

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"wheel-backtest/internal/logger"
	"wheel-backtest/internal/model"

	"github.com/go-resty/resty/v2"
)

// RemoteSource downloads a daily price CSV over HTTP.
type RemoteSource struct {
	client *resty.Client
	log    *logger.Logger
}

// RemoteError represents a non-2xx response from the price endpoint.
type RemoteError struct {
	StatusCode int
	URL        string
	Message    string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("fetch %s: status %d: %s", e.URL, e.StatusCode, e.Message)
}

// NewRemoteSource creates a client; timeout <= 0 defaults to 30s.
func NewRemoteSource(timeout time.Duration, log *logger.Logger) *RemoteSource {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "text/csv")
	return &RemoteSource{client: client, log: log}
}

func (s *RemoteSource) Fetch(ctx context.Context, url string) ([]model.PriceRow, error) {
	if s.log != nil {
		s.log.InfoContext(ctx, "fetching price series", logger.StringField("url", url))
	}
	resp, err := s.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	if resp.StatusCode() != http.StatusOK {
		msg := resp.Status()
		if body := resp.String(); body != "" && len(body) < 200 {
			msg = body
		}
		return nil, &RemoteError{StatusCode: resp.StatusCode(), URL: url, Message: msg}
	}
	return ParseCSV(bytes.NewReader(resp.Body()), s.log)
}

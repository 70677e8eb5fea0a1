package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// MaxImageBytes caps the size of a downloaded image.
const MaxImageBytes = 32 << 20

// Fetcher downloads remote sources with retry, consulting the cache first.
type Fetcher struct {
	Client   *http.Client
	Cache    *Cache // optional
	Timeout  time.Duration
	Attempts int
	Delay    time.Duration
}

// NewFetcher returns a Fetcher with a 15s timeout and 3 attempts starting
// at a 500ms delay. cache may be nil.
func NewFetcher(cache *Cache) *Fetcher {
	return &Fetcher{
		Client:   http.DefaultClient,
		Cache:    cache,
		Timeout:  15 * time.Second,
		Attempts: 3,
		Delay:    500 * time.Millisecond,
	}
}

// IsRemote reports whether src is an http or https URL.
func IsRemote(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// Fetch downloads src using the fetcher's timeout.
func (f *Fetcher) Fetch(src string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), f.Timeout)
	defer cancel()
	return f.FetchContext(ctx, src)
}

// FetchContext downloads src. A stale cache entry is served when the
// download fails.
func (f *Fetcher) FetchContext(ctx context.Context, src string) ([]byte, error) {
	if !IsRemote(src) {
		return nil, fmt.Errorf("fetch %s: not an http(s) url", src)
	}

	var stale []byte
	if f.Cache != nil {
		data, ok, err := f.Cache.Get(src)
		if ok {
			return data, nil
		}
		if errors.Is(err, ErrExpired) {
			stale = data
		}
	}

	var body []byte
	err := Retry(ctx, f.Attempts, f.Delay, func() error {
		var err error
		body, err = f.get(ctx, src)
		return err
	})
	if err != nil {
		if stale != nil {
			return stale, nil
		}
		return nil, fmt.Errorf("fetch %s: %w", src, err)
	}

	if f.Cache != nil {
		_ = f.Cache.Set(src, body)
	}
	return body, nil
}

func (f *Fetcher) get(ctx context.Context, src string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, err
	}
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &RetryableError{Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests, resp.StatusCode >= 500:
		return nil, &RetryableError{Err: fmt.Errorf("status %s", resp.Status)}
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("status %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxImageBytes+1))
	if err != nil {
		return nil, &RetryableError{Err: err}
	}
	if len(data) > MaxImageBytes {
		return nil, fmt.Errorf("image larger than %d bytes", MaxImageBytes)
	}
	return data, nil
}

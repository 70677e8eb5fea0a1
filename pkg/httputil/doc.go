// Package httputil fetches remote image sources.
//
// # Overview
//
// Scenes may reference images by http(s) URL. The document surface decodes
// every image source to learn its natural size, so remote sources are
// downloaded once and kept on disk:
//
//   - [Fetcher]: GET with retry and a size limit, backed by a [Cache]
//   - [Cache]: file-based byte cache with a TTL (~/.cache/anchorui/images/)
//   - [Retry]: retry with exponential backoff for transient failures
//
// Usage:
//
//	cache, err := httputil.NewCache("", 24*time.Hour)
//	f := httputil.NewFetcher(cache)
//	doc := dom.NewDocument(800, 600, dom.WithFetcher(f))
//
// # Retry
//
// [Retry] only repeats errors wrapped in [RetryableError]. The fetcher
// wraps network errors, 5xx responses and 429 responses; other statuses
// fail immediately.
//
// The cache can be cleared via `anchorui cache clear --images` or by
// deleting the cache directory.
package httputil

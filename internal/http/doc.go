// Package http provides a rate-limited HTTP client for web service lookups.
//
// The Client in this package handles:
//   - A shared token-bucket rate limit across all concurrent callers
//   - User-Agent headers (the MusicBrainz service rejects anonymous clients)
//   - Per-request timeout handling
//   - Status classification via StatusError
//
// # Basic Usage
//
//	client := http.NewClient("workparts", 100, 30*time.Second)
//
//	var payload workDTO
//	err := client.GetJSON(ctx, "https://musicbrainz.org/ws/2/work/"+id, &payload)
//
// # Rate Limiting
//
// Every request first waits on the client's limiter, so a single Client
// shared between all resolver goroutines enforces a process-wide outbound
// rate. Waiters are served in FIFO order by golang.org/x/time/rate, so no
// caller starves under a finite backlog.
package http

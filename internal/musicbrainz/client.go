package musicbrainz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	wshttp "github.com/handiism/workparts/internal/http"
	"github.com/handiism/workparts/internal/model"
	"github.com/handiism/workparts/internal/musicbrainz/dto"
)

// Config holds the lookup client's tunables.
type Config struct {
	// BaseURL is the web service root, e.g. "https://musicbrainz.org/ws/2".
	BaseURL string

	// MaxAttempts is the total number of lookup attempts per work id
	// (first try plus retries) on transient failure. Minimum 1.
	MaxAttempts int

	// InitialCooldown is the first backoff delay between attempts.
	InitialCooldown time.Duration

	// MaxCooldown caps the exponential backoff delay.
	MaxCooldown time.Duration

	// Selector decides between multiple candidate parents. Defaults to
	// LongestName.
	Selector ParentSelector

	// Logger receives debug-level lookup traces. Defaults to a no-op
	// logger.
	Logger *zap.Logger
}

// Client looks up works on the MusicBrainz web service.
//
// Each lookup is rate limited by the shared transport, retried with
// bounded exponential backoff on transient failure, and classified into
// the NotFound / ServiceUnavailable / Malformed taxonomy on error.
type Client struct {
	transport *wshttp.Client
	cfg       Config
	log       *zap.Logger
}

// NewClient creates a work lookup client on top of the given transport.
func NewClient(transport *wshttp.Client, cfg Config) *Client {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.InitialCooldown <= 0 {
		cfg.InitialCooldown = 250 * time.Millisecond
	}
	if cfg.MaxCooldown <= 0 {
		cfg.MaxCooldown = 5 * time.Second
	}
	if cfg.Selector == nil {
		cfg.Selector = LongestName{}
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{transport: transport, cfg: cfg, log: log}
}

// LookupWork fetches one work by MBID and returns it as an immutable node
// with its parent already selected.
//
// The returned warnings describe non-fatal oddities (currently: multiple
// candidate parents); callers attach them to the owning track resolution.
// On failure the error is a *LookupError carrying the terminal
// classification; transient failures have been retried up to
// Config.MaxAttempts by the time the error is returned. A canceled
// context surfaces as the context's error, not a LookupError.
func (c *Client) LookupWork(ctx context.Context, id string) (*model.Work, []string, error) {
	var (
		work  *model.Work
		warns []string
	)

	attempt := 0
	operation := func() error {
		attempt++
		w, ws, err := c.lookupOnce(ctx, id)
		if err != nil {
			c.log.Debug("work lookup failed",
				zap.String("work", id),
				zap.Int("attempt", attempt),
				zap.Error(err))
			if IsServiceUnavailable(err) {
				return err
			}
			return backoff.Permanent(err)
		}
		work, warns = w, ws
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.cfg.InitialCooldown
	b.MaxInterval = c.cfg.MaxCooldown
	b.MaxElapsedTime = 0 // attempts are bounded by count, not wall clock

	err := backoff.Retry(operation,
		backoff.WithContext(backoff.WithMaxRetries(b, uint64(c.cfg.MaxAttempts-1)), ctx))
	if err != nil {
		return nil, nil, err
	}

	c.log.Debug("work resolved",
		zap.String("work", id),
		zap.String("name", work.Name),
		zap.String("parent", work.ParentID),
		zap.Int("attempts", attempt))
	return work, warns, nil
}

// lookupOnce performs a single rate-limited lookup and classification.
func (c *Client) lookupOnce(ctx context.Context, id string) (*model.Work, []string, error) {
	lookupURL := fmt.Sprintf("%s/work/%s?inc=work-rels&fmt=json",
		c.cfg.BaseURL, url.PathEscape(id))

	var resp dto.WorkResponse
	if err := c.transport.GetJSON(ctx, lookupURL, &resp); err != nil {
		return nil, nil, c.classify(ctx, id, err)
	}

	if resp.ID == "" {
		return nil, nil, &LookupError{
			Kind:   KindMalformed,
			WorkID: id,
			Err:    errors.New("response missing work id"),
		}
	}

	work := &model.Work{
		ID:   resp.ID,
		Name: resp.Title,
	}

	var warns []string
	candidates := parentCandidates(&resp)
	switch {
	case len(candidates) == 1:
		work.ParentID = candidates[0].ID
	case len(candidates) > 1:
		chosen := c.cfg.Selector.Select(candidates)
		work.ParentID = chosen.ID
		warns = append(warns, fmt.Sprintf(
			"WARNING: %d candidate parent works for %q; following %q",
			len(candidates), resp.Title, chosen.Name))
	}

	return work, warns, nil
}

// classify maps a transport failure onto the lookup error taxonomy.
func (c *Client) classify(ctx context.Context, id string, err error) error {
	if ctx.Err() != nil {
		// Cancellation is not a service failure; propagate so the
		// caller unwinds instead of recording a warning.
		return ctx.Err()
	}

	var statusErr *wshttp.StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.Code {
		case 404:
			return &LookupError{Kind: KindNotFound, WorkID: id, Err: err}
		case 429, 502, 503:
			return &LookupError{Kind: KindServiceUnavailable, WorkID: id, Err: err}
		default:
			return &LookupError{Kind: KindMalformed, WorkID: id, Err: err}
		}
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return &LookupError{Kind: KindMalformed, WorkID: id, Err: err}
	}

	// Anything else is a network-level failure: timeout, refused
	// connection, reset. All transient from the caller's point of view.
	return &LookupError{Kind: KindServiceUnavailable, WorkID: id, Err: err}
}

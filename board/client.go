package board

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/tidwall/sjson"

	"github.com/hupe1980/boardstream/internal/util"
	"github.com/hupe1980/boardstream/logging"
	"github.com/hupe1980/boardstream/runevent"
	"github.com/hupe1980/boardstream/stream"
)

// Options holds dependency + configuration overrides passed to New().
type Options struct {
	// APIKey is the board server credential, injected into request bodies
	// as the $key field. Empty disables credential injection.
	APIKey string
	// HTTPClient overrides the HTTP client used for all requests.
	HTTPClient *http.Client
	// Logger receives request and pipeline diagnostics.
	Logger logging.Logger
	// MaxRetries bounds retry attempts for the request/response operations.
	MaxRetries uint
	// ChunkSize bounds single reads from a streaming response body.
	ChunkSize int
	// ParseOptions adjust run event validation (see runevent.WithShapeOnly).
	ParseOptions []func(o *runevent.ParseOptions)
}

// Client talks to one board server. Public methods are safe for concurrent
// use; every Run gets its own independent decode pipeline.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     logging.Logger
	maxRetries uint
	chunkSize  int
	parseOpts  []func(o *runevent.ParseOptions)
}

// New constructs a Client for the board server at baseURL with optional
// overrides.
func New(baseURL string, optFns ...func(o *Options)) *Client {
	opts := Options{
		HTTPClient: http.DefaultClient,
		Logger:     logging.NoOpLogger{},
		MaxRetries: 3,
		ChunkSize:  4096,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Client{
		baseURL:    baseURL,
		apiKey:     opts.APIKey,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		maxRetries: opts.MaxRetries,
		chunkSize:  opts.ChunkSize,
		parseOpts:  opts.ParseOptions,
	}
}

// WithAPIKey sets the board server credential.
func WithAPIKey(key string) func(o *Options) {
	return func(o *Options) { o.APIKey = key }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(httpClient *http.Client) func(o *Options) {
	return func(o *Options) { o.HTTPClient = httpClient }
}

// WithLogger overrides the diagnostic logger.
func WithLogger(logger logging.Logger) func(o *Options) {
	return func(o *Options) { o.Logger = logger }
}

// List fetches the board catalog.
func (c *Client) List(ctx context.Context) ([]BoardInfo, error) {
	data, err := c.doJSON(ctx, http.MethodGet, c.endpoint("boards"), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}

	var boards []BoardInfo
	if err := json.Unmarshal(data, &boards); err != nil {
		return nil, fmt.Errorf("failed to decode board catalog: %w", err)
	}

	return boards, nil
}

// Describe fetches the input/output contract of one board.
func (c *Client) Describe(ctx context.Context, path string) (*Description, error) {
	body, err := c.requestBody(nil, "")
	if err != nil {
		return nil, err
	}

	data, err := c.doJSON(ctx, http.MethodPost, c.endpoint("boards", path, "api", "describe"), body)
	if err != nil {
		return nil, fmt.Errorf("failed to describe board %q: %w", path, err)
	}

	var desc Description
	if err := json.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("failed to decode board description: %w", err)
	}

	return &desc, nil
}

// Invoke executes a board as a single request/response call and returns its
// output values. Boards that pause for input cannot be driven this way; use
// Run for those.
func (c *Client) Invoke(ctx context.Context, path string, inputs map[string]any) (map[string]any, error) {
	body, err := c.requestBody(inputs, "")
	if err != nil {
		return nil, err
	}

	data, err := c.doJSON(ctx, http.MethodPost, c.endpoint("boards", path, "api", "invoke"), body)
	if err != nil {
		return nil, fmt.Errorf("failed to invoke board %q: %w", path, err)
	}

	var outputs map[string]any
	if err := json.Unmarshal(data, &outputs); err != nil {
		return nil, fmt.Errorf("failed to decode invoke response: %w", err)
	}

	return outputs, nil
}

// RunOptions configures a single Run call.
type RunOptions struct {
	// Next resumes a paused run from a continuation token.
	Next string
}

// WithNext resumes the run from a continuation token.
func WithNext(next string) func(o *RunOptions) {
	return func(o *RunOptions) { o.Next = next }
}

// Run starts (or resumes, see WithNext) a streaming board run and returns a
// Run whose Events channel yields the decoded run events. Transport failures
// fail fast here; once the stream is open, decode failures surface as error
// events on the channel and never abort it. Run is not retried.
func (c *Client) Run(ctx context.Context, path string, inputs map[string]any, optFns ...func(o *RunOptions)) (*Run, error) {
	opts := RunOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}

	body, err := c.requestBody(inputs, opts.Next)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("boards", path, "api", "run"), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build run request: %w", err)
	}

	requestID := util.NewID()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to start run: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()

		return nil, &TransportError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	if resp.Body == nil || resp.Body == http.NoBody {
		return nil, ErrNoBody
	}

	c.logger.Info("Board run started", "board", path, "request_id", requestID)

	runCtx, cancel := context.WithCancel(ctx)

	pipeline := stream.New(
		stream.WithLogger(c.logger),
		stream.WithParseOptions(c.parseOpts...),
	)

	fragments := stream.Fragments(runCtx, resp.Body, func(o *stream.FragmentOptions) {
		o.ChunkSize = c.chunkSize
	})

	return &Run{
		events: pipeline.Events(runCtx, fragments),
		body:   resp.Body,
		cancel: cancel,
	}, nil
}

// Run is one live, single-pass run stream.
type Run struct {
	events <-chan runevent.RunEvent
	body   io.ReadCloser
	cancel context.CancelFunc
}

// Events returns the lazy, ordered event sequence of the run. The channel is
// closed when the server ends the stream, Close is called, or the run
// context is cancelled.
func (r *Run) Events() <-chan runevent.RunEvent {
	return r.events
}

// Close aborts the stream. Any buffered partial record is dropped.
func (r *Run) Close() error {
	r.cancel()
	return r.body.Close()
}

// requestBody serializes the caller's inputs and injects the credential and
// continuation token fields.
func (c *Client) requestBody(inputs map[string]any, next string) ([]byte, error) {
	body := []byte("{}")

	if inputs != nil {
		var err error
		if body, err = json.Marshal(inputs); err != nil {
			return nil, fmt.Errorf("failed to encode inputs: %w", err)
		}
	}

	var err error

	if c.apiKey != "" {
		if body, err = sjson.SetBytes(body, "$key", c.apiKey); err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	if next != "" {
		if body, err = sjson.SetBytes(body, "$next", next); err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	return body, nil
}

// doJSON performs one request/response call with exponential backoff. Server
// errors and request failures are retried; client errors are permanent.
func (c *Client) doJSON(ctx context.Context, method, url string, body []byte) ([]byte, error) {
	operation := func() ([]byte, error) {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}

		req, err := http.NewRequestWithContext(ctx, method, url, reader)
		if err != nil {
			return nil, backoff.Permanent(err)
		}

		req.Header.Set("Accept", "application/json")
		req.Header.Set("X-Request-ID", util.NewID())
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			terr := &TransportError{StatusCode: resp.StatusCode, Body: string(data)}
			if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
				return nil, terr
			}

			return nil, backoff.Permanent(terr)
		}

		return data, nil
	}

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(c.maxRetries),
		backoff.WithNotify(func(err error, next time.Duration) {
			c.logger.Debug("Retrying board request", "method", method, "url", url, "error", err, "next_retry", next.String())
		}),
	)
}

// endpoint joins the base URL with path elements.
func (c *Client) endpoint(elems ...string) string {
	joined, err := url.JoinPath(c.baseURL, elems...)
	if err != nil {
		// Fall back to the base URL; the request will fail with a clear error.
		return c.baseURL
	}

	return joined
}

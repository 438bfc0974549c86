// Package safesurfapi provides an analysisclient.Client implementation backed
// by the SafeSurf analysis service's JSON API.
package safesurfapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"safesurf/pkg/analysisclient"
	"safesurf/pkg/domain"
	"safesurf/pkg/serrors"
	"safesurf/pkg/signals"
	"strings"

	"github.com/go-faster/jx"
)

const (
	// StatusSuccess is the envelope status of a successful call.
	StatusSuccess = "SUCCESS"
	// StatusError is the envelope status of a failed call.
	StatusError = "ERROR"

	analyzePath    = "/"
	sourceCodePath = "/source-code"
	updateDBPath   = "/update-db"
)

// Client talks to the analysis service and fulfills the analysisclient.Client
// interface. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client // httpClient performs HTTP requests to the service
	baseURL    string       // baseURL is the service root without trailing slash
}

// envelope is the common response shape of every route.
type envelope struct {
	Status        string
	Msg           string
	Output        jx.Raw
	FormattedHTML string
}

// decodeEnvelope parses a response body. Anything that is not a JSON object
// with a string "status" is a transport error.
func decodeEnvelope(b []byte) (envelope, error) {
	var env envelope

	d := jx.DecodeBytes(b)
	if d.Next() != jx.Object {
		return env, serrors.With(serrors.ErrTransport, "response is not a JSON object")
	}

	hasStatus := false
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "status":
			if d.Next() != jx.String {
				return d.Skip()
			}
			s, err := d.Str()
			if err != nil {
				return err
			}
			env.Status = s
			hasStatus = true
		case "msg":
			if d.Next() != jx.String {
				return d.Skip()
			}
			s, err := d.Str()
			if err != nil {
				return err
			}
			env.Msg = s
		case "formatted_html":
			if d.Next() != jx.String {
				return d.Skip()
			}
			s, err := d.Str()
			if err != nil {
				return err
			}
			env.FormattedHTML = s
		case "output":
			raw, err := d.RawAppend(nil)
			if err != nil {
				return err
			}
			env.Output = raw
		default:
			return d.Skip()
		}

		return nil
	})
	if err != nil {
		return envelope{}, serrors.Wrap(serrors.ErrTransport, err, "could not decode response")
	}
	if !hasStatus {
		return envelope{}, serrors.With(serrors.ErrTransport, "response has no status")
	}

	return env, nil
}

// serviceError turns a non-SUCCESS envelope into an ErrService error.
func serviceError(env envelope, code int) error {
	msg := strings.TrimSpace(env.Msg)
	if msg == "" {
		msg = fmt.Sprintf("analysis service answered %s", env.Status)
		if code != 0 {
			msg = fmt.Sprintf("%s (HTTP %d)", msg, code)
		}
	}

	return serrors.With(serrors.ErrService, "%s", msg)
}

// encodeBody builds a flat JSON object from key/value pairs.
func encodeBody(kv ...string) []byte {
	var e jx.Encoder
	e.ObjStart()
	for i := 0; i+1 < len(kv); i += 2 {
		e.FieldStart(kv[i])
		e.Str(kv[i+1])
	}
	e.ObjEnd()

	return e.Bytes()
}

// post sends body to path and returns the HTTP status and raw response body.
// Failures to reach the service are ErrTransport, additionally ErrTimeout
// when the ctx deadline elapsed.
func (c *Client) post(ctx context.Context, path string, body []byte) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return 0, nil, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		terr := serrors.Wrap(serrors.ErrTransport, err, "could not send request")
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return 0, nil, serrors.Wrap(serrors.ErrTimeout, terr, "analysis service did not answer in time")
		}

		return 0, nil, terr
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, serrors.Wrap(serrors.ErrTransport, err, "could not read response body")
	}

	return resp.StatusCode, b, nil
}

// call posts body and decodes the envelope. A non-SUCCESS status, whatever
// the HTTP code, is ErrService.
func (c *Client) call(ctx context.Context, path string, body []byte) (envelope, error) {
	code, b, err := c.post(ctx, path, body)
	if err != nil {
		return envelope{}, err
	}

	env, err := decodeEnvelope(b)
	if err != nil {
		return envelope{}, fmt.Errorf("could not decode %s response (HTTP %d): %w", path, code, err)
	}
	if env.Status != StatusSuccess {
		return envelope{}, serviceError(env, code)
	}

	return env, nil
}

// Analyze submits URL for analysis and decodes the returned signal set.
func (c *Client) Analyze(ctx context.Context, URL string) (*domain.SignalSet, error) {
	env, err := c.call(ctx, analyzePath, encodeBody("url", URL))
	if err != nil {
		return nil, err
	}
	if len(env.Output) == 0 {
		return nil, serrors.With(serrors.ErrTransport, "response has no output")
	}

	s, err := signals.Decode(env.Output)
	if err != nil {
		return nil, fmt.Errorf("could not decode output: %w", err)
	}

	return &s, nil
}

// SourceCode returns the formatted HTML of the page at URL.
func (c *Client) SourceCode(ctx context.Context, URL string) (string, error) {
	env, err := c.call(ctx, sourceCodePath, encodeBody("urlSC", URL))
	if err != nil {
		return "", err
	}

	return env.FormattedHTML, nil
}

// ReportPhishing flags site as phishing. Only HTTP 200 counts as success.
func (c *Client) ReportPhishing(ctx context.Context, site string) error {
	code, b, err := c.post(ctx, updateDBPath, encodeBody("site", site, "status", "phishing"))
	if err != nil {
		return err
	}

	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return serrors.With(serrors.ErrUnavailable, "report endpoint is not available on this service")
	default:
		if env, err := decodeEnvelope(b); err == nil && env.Msg != "" {
			return serviceError(env, code)
		}

		return serrors.With(serrors.ErrService, "report failed with HTTP %d: %s", code, strings.TrimSpace(string(b)))
	}
}

// Ensure Client conforms to the analysisclient.Client interface at compile time.
var _ analysisclient.Client = (*Client)(nil)

// New constructs a Client that uses httpClient to reach the service at baseURL.
func New(httpClient *http.Client, baseURL string) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
)

// exchange records what happened on the wire for a single Execute call.
// It travels in the request context so a shared Client keeps no per-call state.
type exchange struct {
	requests   int
	statusCode int
	errors     []GraphQLError
}

type exchangeKey struct{}

func withExchange(ctx context.Context, ex *exchange) context.Context {
	return context.WithValue(ctx, exchangeKey{}, ex)
}

func exchangeFrom(ctx context.Context) *exchange {
	ex, _ := ctx.Value(exchangeKey{}).(*exchange)
	return ex
}

// recordingTransport peeks at GraphQL responses so Execute can tell transport
// failures apart from errors reported inside a successful response.
type recordingTransport struct {
	base http.RoundTripper
}

func (t *recordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ex := exchangeFrom(req.Context())
	resp, err := t.base.RoundTrip(req)
	if ex == nil {
		return resp, err
	}
	ex.requests++
	if err != nil {
		return nil, err
	}

	ex.statusCode = resp.StatusCode
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp, nil
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, err
	}
	resp.Body = io.NopCloser(bytes.NewReader(body))

	var envelope struct {
		Errors []GraphQLError `json:"errors"`
	}
	// A body that is not JSON is reported by the decoder in githubv4.
	if json.Unmarshal(body, &envelope) == nil {
		ex.errors = envelope.Errors
	}
	return resp, nil
}

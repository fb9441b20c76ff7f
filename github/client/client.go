// Package client wraps githubv4 with a typed operation model and a two-kind
// error contract: RequestError for failed round trips and OperationError for
// GraphQL errors reported inside a successful response.
package client

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"
)

// DefaultEndpoint is the public GitHub GraphQL endpoint.
const DefaultEndpoint = "https://api.github.com/graphql"

// ID is the GraphQL ID scalar for use in a variables map. githubv4.ID is an
// interface type, so a value stored in the map would be declared as String!.
type ID string

// Kind tells Execute whether to send a query or a mutation.
type Kind int

const (
	KindQuery Kind = iota
	KindMutation
)

func (k Kind) String() string {
	if k == KindMutation {
		return "mutation"
	}
	return "query"
}

// Operation describes one request. The fields selected are those of T, read
// from its graphql struct tags; Execute merges the response into Result.
type Operation[T any] struct {
	Kind      Kind
	Input     githubv4.Input
	Variables map[string]interface{}
	Result    T
}

// NewQuery builds a query operation selecting the fields of T.
func NewQuery[T any](variables map[string]interface{}) *Operation[T] {
	return &Operation[T]{Kind: KindQuery, Variables: variables}
}

// NewMutation builds a mutation operation. input is sent as $input.
func NewMutation[T any](input githubv4.Input, variables map[string]interface{}) *Operation[T] {
	return &Operation[T]{Kind: KindMutation, Input: input, Variables: variables}
}

// Client executes operations against a single GraphQL endpoint.
type Client struct {
	gql    GitHubV4Client
	logger *slog.Logger
}

type options struct {
	endpoint   string
	httpClient *http.Client
}

// Option configures New.
type Option func(*options)

// WithEndpoint overrides DefaultEndpoint, e.g. for GitHub Enterprise Server.
func WithEndpoint(url string) Option {
	return func(o *options) { o.endpoint = url }
}

// WithHTTPClient sets the client whose transport carries the requests.
// Its Transport is wrapped, not replaced.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

// New returns a Client that sends token as a fixed bearer on every request.
func New(token string, logger *slog.Logger, opts ...Option) *Client {
	o := options{endpoint: DefaultEndpoint, httpClient: &http.Client{Timeout: 30 * time.Second}}
	for _, opt := range opts {
		opt(&o)
	}

	base := o.httpClient.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	httpClient := &http.Client{
		Transport:     &oauth2.Transport{Source: src, Base: &recordingTransport{base: base}},
		CheckRedirect: o.httpClient.CheckRedirect,
		Jar:           o.httpClient.Jar,
		Timeout:       o.httpClient.Timeout,
	}

	return NewWithGraphQL(githubv4.NewEnterpriseClient(o.endpoint, httpClient), logger)
}

// NewWithGraphQL returns a Client over an existing GitHubV4Client.
func NewWithGraphQL(gql GitHubV4Client, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{gql: gql, logger: logger}
}

// Execute sends op in exactly one round trip. On success it returns
// &op.Result merged with the response data. On failure Result is reset and the
// error is a *RequestError or an *OperationError.
func Execute[T any](ctx context.Context, c *Client, op *Operation[T]) (*T, error) {
	if op.Kind == KindMutation && op.Input == nil {
		return nil, errors.New("graphql: mutation requires an input")
	}

	ex := &exchange{}
	ctx = withExchange(ctx, ex)
	start := time.Now()

	var err error
	switch op.Kind {
	case KindMutation:
		err = c.gql.Mutate(ctx, &op.Result, op.Input, op.Variables)
	default:
		err = c.gql.Query(ctx, &op.Result, op.Variables)
	}
	if err != nil {
		var zero T
		op.Result = zero
		err = classify(ex, err)
		c.logFailure(op.Kind, err)
		return nil, err
	}

	c.logger.Debug("GraphQL operation executed", "kind", op.Kind.String(), "duration", time.Since(start))
	return &op.Result, nil
}

// classify maps an error from githubv4 onto the two error kinds using what the
// transport saw. Errors that are already typed pass through unchanged.
func classify(ex *exchange, err error) error {
	var opErr *OperationError
	var reqErr *RequestError
	if errors.As(err, &opErr) || errors.As(err, &reqErr) {
		return err
	}
	if ex.statusCode >= 200 && ex.statusCode < 300 && len(ex.errors) > 0 {
		return &OperationError{Errors: ex.errors}
	}
	return &RequestError{StatusCode: ex.statusCode, Err: err}
}

func (c *Client) logFailure(kind Kind, err error) {
	var opErr *OperationError
	if errors.As(err, &opErr) {
		c.logger.Error("GraphQL operation returned errors", "kind", kind.String(), "errors", joinMessages(opErr))
		return
	}
	c.logger.Error("GraphQL request failed", "kind", kind.String(), "error", err)
}

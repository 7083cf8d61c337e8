// Package anthropic implements the provider client over the Anthropic
// Messages API.
package anthropic

import (
	"context"
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/hupe1980/catalogmesh/provider"
	"github.com/hupe1980/catalogmesh/retry"
)

// Options configures the Anthropic provider client (model id, token limit,
// temperature, API key, retry policy). Extend via functional options to
// preserve stability.
type Options struct {
	Model       anthropic.Model
	Temperature float64
	MaxTokens   int64
	APIKey      string
	Retry       retry.Policy
}

// Client wraps the Anthropic Messages API behind the generic
// provider.Client interface.
type Client struct {
	client *anthropic.Client
	opts   Options
}

// New creates a new Anthropic provider client using the official SDK.
func New(optFns ...func(o *Options)) *Client {
	opts := Options{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		Temperature: 0.3,
		MaxTokens:   8192,
		Retry:       retry.DefaultPolicy(),
	}

	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Retry.Retryable == nil {
		opts.Retry.Retryable = provider.Retryable
	}

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}

	client := anthropic.NewClient(clientOpts...)

	return &Client{
		client: &client,
		opts:   opts,
	}
}

// NewFromClient creates a new Anthropic provider client from an existing
// SDK client.
func NewFromClient(client *anthropic.Client, optFns ...func(o *Options)) *Client {
	opts := Options{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		Temperature: 0.3,
		MaxTokens:   8192,
		Retry:       retry.DefaultPolicy(),
	}

	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Retry.Retryable == nil {
		opts.Retry.Retryable = provider.Retryable
	}

	return &Client{
		client: client,
		opts:   opts,
	}
}

// Collect implements provider.Client. The API call is retried per the
// configured policy; parse failures are terminal.
func (c *Client) Collect(ctx context.Context, req provider.Request) (*provider.Result, error) {
	params := anthropic.MessageNewParams{
		Model:     c.opts.Model,
		MaxTokens: c.opts.MaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
		Temperature: anthropic.Float(c.opts.Temperature),
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	var resp *anthropic.Message
	err := c.opts.Retry.Do(ctx, func() error {
		var callErr error
		resp, callErr = c.client.Messages.New(ctx, params)
		if callErr != nil {
			return classify(req.Brand, callErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	raw := textContent(resp)
	products, err := provider.Decode(req.Category, req.Brand, raw)
	if err != nil {
		return nil, err
	}

	return &provider.Result{
		Products:   products,
		Raw:        raw,
		Model:      string(resp.Model),
		TokensUsed: int(resp.Usage.InputTokens + resp.Usage.OutputTokens),
	}, nil
}

// Info implements provider.Client.
func (c *Client) Info() provider.Info {
	return provider.Info{Name: "anthropic", Model: string(c.opts.Model)}
}

// textContent concatenates the text blocks of a message response.
func textContent(msg *anthropic.Message) string {
	var text string
	for _, block := range msg.Content {
		if block.Type == "text" {
			text += block.AsText().Text
		}
	}
	return text
}

// classify maps an SDK error onto the shared provider error taxonomy so the
// retry policy and the executor can react to it.
func classify(brand string, err error) error {
	op := fmt.Sprintf("anthropic collect %s", brand)
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return provider.ClassifyStatus(op, apiErr.StatusCode, err)
	}
	// Network-level failures without a status are worth another attempt.
	return &provider.Error{Op: op, Err: err, Retryable: true}
}

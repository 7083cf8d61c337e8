// Package openai implements the provider client over the OpenAI Chat
// Completions API. JSON mode is requested so responses arrive as a single
// decodable object.
package openai

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/hupe1980/catalogmesh/provider"
	"github.com/hupe1980/catalogmesh/retry"
)

// Options configure the OpenAI provider client.
// Fields mirror a subset of Chat Completion parameters intentionally kept
// minimal; extend via functional options without breaking callers.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int64
	APIKey              string
	Retry               retry.Policy
}

// Client wraps the OpenAI Chat Completions API behind the generic
// provider.Client interface.
type Client struct {
	client *openai.Client
	opts   Options
}

// New creates a new OpenAI provider client using the official SDK.
func New(optFns ...func(o *Options)) *Client {
	opts := Options{
		Model:               openai.ChatModelGPT4oMini,
		Temperature:         0.3,
		MaxCompletionTokens: 8192,
		Retry:               retry.DefaultPolicy(),
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

	client := openai.NewClient(clientOpts...)
	return &Client{client: &client, opts: opts}
}

// NewFromClient creates a new OpenAI provider client from an existing SDK
// client.
func NewFromClient(client *openai.Client, optFns ...func(o *Options)) *Client {
	opts := Options{
		Model:               openai.ChatModelGPT4oMini,
		Temperature:         0.3,
		MaxCompletionTokens: 8192,
		Retry:               retry.DefaultPolicy(),
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Retry.Retryable == nil {
		opts.Retry.Retryable = provider.Retryable
	}
	return &Client{client: client, opts: opts}
}

// Collect implements provider.Client.
func (c *Client) Collect(ctx context.Context, req provider.Request) (*provider.Result, error) {
	messages := []openai.ChatCompletionMessageParamUnion{}
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}
	messages = append(messages, openai.UserMessage(req.Prompt))

	params := openai.ChatCompletionNewParams{
		Model:               c.opts.Model,
		Messages:            messages,
		Temperature:         openai.Float(c.opts.Temperature),
		MaxCompletionTokens: openai.Int(c.opts.MaxCompletionTokens),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
		},
	}

	var resp *openai.ChatCompletion
	err := c.opts.Retry.Do(ctx, func() error {
		var callErr error
		resp, callErr = c.client.Chat.Completions.New(ctx, params)
		if callErr != nil {
			return classify(req.Brand, callErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, &provider.Error{
			Op:  fmt.Sprintf("openai collect %s", req.Brand),
			Err: errors.New("empty completion"),
		}
	}

	raw := resp.Choices[0].Message.Content
	products, err := provider.Decode(req.Category, req.Brand, raw)
	if err != nil {
		return nil, err
	}

	return &provider.Result{
		Products:   products,
		Raw:        raw,
		Model:      resp.Model,
		TokensUsed: int(resp.Usage.TotalTokens),
	}, nil
}

// Info implements provider.Client.
func (c *Client) Info() provider.Info {
	return provider.Info{Name: "openai", Model: c.opts.Model}
}

func classify(brand string, err error) error {
	op := fmt.Sprintf("openai collect %s", brand)
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return provider.ClassifyStatus(op, apiErr.StatusCode, err)
	}
	return &provider.Error{Op: op, Err: err, Retryable: true}
}

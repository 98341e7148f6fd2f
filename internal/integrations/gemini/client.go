// Package gemini adapts Google's Gemini models to the AI gateway used by the
// conversation router.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"

	"health-assistant/internal/domain"
	"health-assistant/internal/integrations/paramstore"
)

const defaultModel = "gemini-2.0-flash"

type Getter interface {
	GetParameter(ctx context.Context, name string) (string, error)
}

// generator is the part of *genai.Models used here.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type tokenPayload struct {
	Token string `json:"token"`
}

// Client calls Gemini through the genai SDK. The SDK client is built on the
// first Generate call, once the API key has been read from SSM.
type Client struct {
	getter      Getter
	paramPrefix string
	model       string

	newGenerator func(ctx context.Context, apiKey string) (generator, error)

	initOnce sync.Once
	gen      generator
	initErr  error
}

type Option func(*Client)

func WithModel(model string) Option {
	return func(c *Client) {
		if m := strings.TrimSpace(model); m != "" {
			c.model = m
		}
	}
}

func NewClient(ps Getter, paramPrefix string, opts ...Option) (*Client, error) {
	if ps == nil {
		return nil, errors.New("gemini: paramstore getter must not be nil")
	}
	paramPrefix = strings.TrimRight(strings.TrimSpace(paramPrefix), "/")
	if paramPrefix == "" {
		return nil, errors.New("gemini: parameter prefix must not be empty")
	}
	c := &Client{
		getter:       ps,
		paramPrefix:  paramPrefix,
		model:        defaultModel,
		newGenerator: newSDKGenerator,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func newSDKGenerator(ctx context.Context, apiKey string) (generator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return client.Models, nil
}

func (c *Client) tokenParameterName() string {
	return c.paramPrefix + "/gemini-token"
}

func (c *Client) resolveGenerator(ctx context.Context) (generator, error) {
	c.initOnce.Do(func() {
		var tp tokenPayload
		if err := paramstore.DecodeJSON(ctx, c.getter, c.tokenParameterName(), &tp); err != nil {
			c.initErr = fmt.Errorf("gemini: fetch token from paramstore: %w", err)
			return
		}
		if strings.TrimSpace(tp.Token) == "" {
			c.initErr = errors.New("gemini: API token is empty")
			return
		}
		gen, err := c.newGenerator(ctx, tp.Token)
		if err != nil {
			c.initErr = fmt.Errorf("gemini: create client: %w", err)
			return
		}
		c.gen = gen
	})
	return c.gen, c.initErr
}

// Generate sends one user turn (prompt plus optional inline image) with the
// instruction as the system instruction, and returns the concatenated text
// parts of the first candidate.
func (c *Client) Generate(ctx context.Context, in domain.GenerateRequest) (string, error) {
	gen, err := c.resolveGenerator(ctx)
	if err != nil {
		return "", err
	}

	var parts []*genai.Part
	if strings.TrimSpace(in.Prompt) != "" {
		parts = append(parts, genai.NewPartFromText(in.Prompt))
	}
	if in.Image != nil {
		parts = append(parts, genai.NewPartFromBytes(in.Image.Data, in.Image.MIMEType))
	}
	if len(parts) == 0 {
		return "", errors.New("gemini: request has no content")
	}

	var cfg *genai.GenerateContentConfig
	if s := strings.TrimSpace(in.Instruction); s != "" {
		cfg = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(s, genai.RoleUser),
		}
	}

	resp, err := gen.GenerateContent(ctx, c.model, []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}
	return responseText(resp)
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", errors.New("gemini: no candidates in response")
	}
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil {
		return "", nil
	}
	var b strings.Builder
	for _, p := range cand.Content.Parts {
		if p == nil || p.Thought {
			continue
		}
		b.WriteString(p.Text)
	}
	return strings.TrimSpace(b.String()), nil
}

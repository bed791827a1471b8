// Package llm wraps the Gemini completion API
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/genai"
)

// Config configures the Gemini client
type Config struct {
	APIKey  string
	Model   string
	BaseURL string // empty uses the public endpoint
	Timeout time.Duration

	// HTTPClient overrides the transport, nil uses the SDK default
	HTTPClient *http.Client
}

// GenAICompleter sends single-turn prompts through google.golang.org/genai
type GenAICompleter struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGenAICompleter creates a completer bound to one model
func NewGenAICompleter(ctx context.Context, cfg Config) (*GenAICompleter, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("GenAI API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash"
	}

	clientCfg := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GenAICompleter{
		client:  client,
		model:   cfg.Model,
		timeout: cfg.Timeout,
	}, nil
}

// Complete sends message as one user turn under the given system
// instruction. An empty reply is not an error.
func (g *GenAICompleter) Complete(ctx context.Context, system, message string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	contents := []*genai.Content{
		genai.NewContentFromText(message, genai.RoleUser),
	}

	var config *genai.GenerateContentConfig
	if system != "" {
		config = &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{
				Parts: []*genai.Part{genai.NewPartFromText(system)},
			},
		}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}
	if resp == nil {
		return "", nil
	}

	return resp.Text(), nil
}

// Model returns the configured model name
func (g *GenAICompleter) Model() string {
	return g.model
}

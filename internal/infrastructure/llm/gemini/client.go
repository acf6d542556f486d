package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/nyaysaathi/legal-assistant/internal/core/domain"
	"github.com/nyaysaathi/legal-assistant/internal/core/ports"
	"github.com/nyaysaathi/legal-assistant/internal/infrastructure/resilience"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-2.0-flash"
	// Kept as a secondary option in case availability is routed via -exp.
	fallbackModel = "gemini-2.0-flash-exp"
)

type Config struct {
	BaseURL           string
	APIKey            string
	Model             string
	Timeout           time.Duration
	RequestsPerSecond float64
}

func (c Config) normalize() Config {
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if c.Model == "" {
		c.Model = defaultModel
	}
	c.Model = strings.TrimPrefix(c.Model, "models/")
	if c.Timeout <= 0 {
		c.Timeout = 60 * time.Second
	}
	return c
}

// Client talks to the Gemini generateContent REST API and implements
// ports.LLMProvider. A model that answers is cached and tried first on
// subsequent calls; the candidate walk only happens again after it fails.
type Client struct {
	cfg  Config
	t    *transport
	exec *resilience.Executor
	log  *slog.Logger

	mu     sync.Mutex
	active string
}

func NewClient(cfg Config, exec *resilience.Executor, log *slog.Logger) *Client {
	cfg = cfg.normalize()
	if exec == nil {
		exec = resilience.NewExecutor(resilience.DefaultPolicy(), log)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		cfg:  cfg,
		t:    newTransport(cfg.BaseURL, cfg.APIKey, &http.Client{Timeout: cfg.Timeout}, cfg.RequestsPerSecond),
		exec: exec,
		log:  log,
	}
}

var _ ports.LLMProvider = (*Client)(nil)

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature     float64  `json:"temperature"`
	TopP            *float64 `json:"topP,omitempty"`
	MaxOutputTokens int      `json:"maxOutputTokens,omitempty"`
}

type generateRequest struct {
	SystemInstruction *content         `json:"system_instruction,omitempty"`
	Contents          []content        `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
}

func (r generateResponse) text() string {
	var sb strings.Builder
	for _, c := range r.Candidates {
		for _, p := range c.Content.Parts {
			sb.WriteString(p.Text)
		}
		break
	}
	return sb.String()
}

// buildRequest folds system messages into system_instruction and maps the
// assistant role to Gemini's "model" role.
func buildRequest(messages []domain.PromptMessage, opts domain.GenerateOptions) generateRequest {
	var sysParts []string
	var contents []content
	for _, m := range messages {
		switch m.Role {
		case domain.RoleSystem:
			sysParts = append(sysParts, m.Content)
		case domain.RoleAssistant:
			contents = append(contents, content{Role: "model", Parts: []part{{Text: m.Content}}})
		default:
			contents = append(contents, content{Role: "user", Parts: []part{{Text: m.Content}}})
		}
	}

	req := generateRequest{
		Contents: contents,
		GenerationConfig: generationConfig{
			Temperature:     opts.Temperature,
			TopP:            opts.TopP,
			MaxOutputTokens: opts.MaxTokens,
		},
	}
	if len(sysParts) > 0 {
		req.SystemInstruction = &content{Parts: []part{{Text: strings.Join(sysParts, "\n\n")}}}
	}
	return req
}

// candidates returns the model IDs to walk, active model first.
func (c *Client) candidates() []string {
	c.mu.Lock()
	active := c.active
	c.mu.Unlock()

	ordered := []string{active, c.cfg.Model, defaultModel, fallbackModel}
	seen := make(map[string]struct{}, len(ordered))
	out := make([]string, 0, len(ordered))
	for _, m := range ordered {
		if m == "" {
			continue
		}
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out
}

func (c *Client) markActive(model string) {
	c.mu.Lock()
	c.active = model
	c.mu.Unlock()
}

func (c *Client) Generate(ctx context.Context, messages []domain.PromptMessage, opts domain.GenerateOptions) (string, error) {
	payload := buildRequest(messages, opts)

	var lastErr error
	for _, model := range c.candidates() {
		var out generateResponse
		err := c.exec.Do(ctx, "gemini.generate", classifyError, func(ctx context.Context) error {
			out = generateResponse{}
			return c.t.postJSON(ctx, "/models/"+model+":generateContent", payload, &out)
		})
		if err == nil {
			c.markActive(model)
			return out.text(), nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if !modelUnavailable(err) {
			return "", fmt.Errorf("generate with %s: %w", model, err)
		}
		c.log.WarnContext(ctx, "model unavailable, trying next candidate",
			slog.String("model", model), slog.Any("error", err))
	}
	return "", fmt.Errorf("generate: all model candidates failed: %w", lastErr)
}

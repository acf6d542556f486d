package gemini

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/nyaysaathi/legal-assistant/internal/core/domain"
)

// StreamGenerate consumes the server-sent-events variant of generateContent
// and forwards each text delta to onToken. Candidate walking mirrors
// Generate, but only failures before the first delta move to the next model;
// a stream that dies midway is surfaced to the caller, who owns the
// degradation ladder.
func (c *Client) StreamGenerate(ctx context.Context, messages []domain.PromptMessage, opts domain.GenerateOptions, onToken func(string) error) error {
	payload := buildRequest(messages, opts)

	var lastErr error
	for _, model := range c.candidates() {
		resp, err := c.t.postStream(ctx, "/models/"+model+":streamGenerateContent?alt=sse", payload)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if modelUnavailable(err) {
				c.log.WarnContext(ctx, "model unavailable, trying next candidate",
					slog.String("model", model), slog.Any("error", err))
				continue
			}
			return fmt.Errorf("stream with %s: %w", model, err)
		}

		err = consumeSSE(resp.Body, onToken)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("stream with %s: %w", model, err)
		}
		c.markActive(model)
		return nil
	}
	return fmt.Errorf("stream: all model candidates failed: %w", lastErr)
}

func consumeSSE(body io.Reader, onToken func(string) error) error {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		data, ok := strings.CutPrefix(line, "data:")
		if !ok {
			continue
		}
		data = strings.TrimSpace(data)
		if data == "" || data == "[DONE]" {
			continue
		}
		var chunk generateResponse
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			return fmt.Errorf("decode event: %w", err)
		}
		if text := chunk.text(); text != "" {
			if err := onToken(text); err != nil {
				return err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read stream: %w", err)
	}
	return nil
}

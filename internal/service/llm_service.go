package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"vitrifiye-studio/internal/recommend"
	"vitrifiye-studio/pkg/config"

	"github.com/Role1776/gigago"
	"github.com/sony/gobreaker/v2"
	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"
)

// LLMService is the GigaChat-backed generation capability used by the
// recommendation engine. Calls go through a circuit breaker so a failing
// provider is skipped quickly and the engine falls back to rule-based ranking.
type LLMService struct {
	client  *gigago.Client
	config  *config.GigaChatConfig
	breaker *gobreaker.CircuitBreaker[string]
	logger  *zap.Logger
}

func NewLLMService(cfg *config.GigaChatConfig, rcfg *config.RecommendConfig, logger *zap.Logger) (*LLMService, error) {
	ctx := context.Background()

	opts := []gigago.Option{
		gigago.WithCustomScope(cfg.Scope),
	}

	if cfg.InsecureSkipVerify {
		opts = append(opts, gigago.WithCustomInsecureSkipVerify(true))
		logger.Warn("GigaChat TLS certificate verification is disabled")
	}

	client, err := gigago.NewClient(ctx, cfg.APIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GigaChat client: %w", err)
	}

	logger.Info("GigaChat client initialized",
		zap.String("model", cfg.Model),
		zap.Float64("temperature", cfg.Temperature),
	)

	return &LLMService{
		client:  client,
		config:  cfg,
		breaker: newBreaker(rcfg, logger),
		logger:  logger,
	}, nil
}

func newBreaker(rcfg *config.RecommendConfig, logger *zap.Logger) *gobreaker.CircuitBreaker[string] {
	failures := rcfg.BreakerFailures
	if failures == 0 {
		failures = 5
	}

	return gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        "gigachat",
		MaxRequests: 1,
		Timeout:     rcfg.BreakerOpenTime,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		// Sibling ranking calls are cancelled when one category fails; those
		// say nothing about provider health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
}

// Generate implements recommend.Capability. The reply is reduced to its JSON
// object and checked against schema before it is returned.
func (s *LLMService) Generate(ctx context.Context, systemInstruction, userPrompt string, schema recommend.Schema) (json.RawMessage, error) {
	model := s.client.GenerativeModel(s.config.Model)
	model.SystemInstruction = systemInstruction
	model.Temperature = s.config.Temperature

	messages := []gigago.Message{
		{Role: gigago.RoleUser, Content: userPrompt},
	}

	content, err := s.breaker.Execute(func() (string, error) {
		resp, err := model.Generate(ctx, messages)
		if err != nil {
			return "", err
		}
		if len(resp.Choices) == 0 {
			return "", errEmptyChoices
		}
		return resp.Choices[0].Message.Content, nil
	})
	if err != nil {
		return nil, s.classify(ctx, schema.Name, err)
	}

	raw, err := extractJSONObject(content)
	if err != nil {
		return nil, &recommend.CapabilityError{Op: schema.Name, Kind: recommend.CapabilityInvalidResponse, Err: err}
	}

	if err := validateAgainst(schema, raw); err != nil {
		return nil, err
	}

	s.logger.Debug("GigaChat response accepted",
		zap.String("schema", schema.Name),
		zap.Int("bytes", len(raw)),
	)
	return raw, nil
}

var errEmptyChoices = errors.New("no choices in response")

func (s *LLMService) classify(ctx context.Context, op string, err error) error {
	kind := recommend.CapabilityUnavailable
	switch {
	case errors.Is(err, errEmptyChoices):
		kind = recommend.CapabilityInvalidResponse
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		s.logger.Debug("GigaChat call rejected by circuit breaker", zap.String("schema", op))
	case errors.Is(err, context.DeadlineExceeded), errors.Is(ctx.Err(), context.DeadlineExceeded):
		kind = recommend.CapabilityTimeout
	}
	return &recommend.CapabilityError{Op: op, Kind: kind, Err: err}
}

// extractJSONObject strips markdown fences and surrounding prose from a model
// reply and returns the outermost JSON object.
func extractJSONObject(content string) (json.RawMessage, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end < start {
		return nil, fmt.Errorf("no JSON object in response: %q", truncate(content, 120))
	}

	raw := json.RawMessage(content[start : end+1])
	if !json.Valid(raw) {
		return nil, fmt.Errorf("malformed JSON object in response: %q", truncate(content, 120))
	}
	return raw, nil
}

func validateAgainst(schema recommend.Schema, raw json.RawMessage) error {
	if len(schema.Definition) == 0 {
		return nil
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(schema.Definition),
		gojsonschema.NewBytesLoader(raw),
	)
	if err != nil {
		return &recommend.CapabilityError{Op: schema.Name, Kind: recommend.CapabilityInvalidResponse, Err: err}
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return &recommend.CapabilityError{
			Op:   schema.Name,
			Kind: recommend.CapabilitySchemaViolation,
			Err:  fmt.Errorf("response does not match schema: %s", strings.Join(errs, "; ")),
		}
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

func (s *LLMService) Close() error {
	if s.client != nil {
		s.client.Close()
	}
	return nil
}

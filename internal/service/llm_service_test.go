package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"testing"

	"vitrifiye-studio/internal/recommend"
	"vitrifiye-studio/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		wantErr bool
	}{
		{name: "plain", content: `{"sortedIds":[1,2]}`, want: `{"sortedIds":[1,2]}`},
		{name: "fenced", content: "```json\n{\"sortedIds\":[3]}\n```", want: `{"sortedIds":[3]}`},
		{name: "prose around", content: "İşte sonuç: {\"a\":1} umarım yardımcı olur", want: `{"a":1}`},
		{name: "no object", content: "üzgünüm", wantErr: true},
		{name: "broken", content: `{"a":`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := extractJSONObject(tt.content)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(raw))
		})
	}
}

func TestValidateAgainst(t *testing.T) {
	err := validateAgainst(recommend.RankingSchema, []byte(`{"sortedIds":[4,1]}`))
	assert.NoError(t, err)

	err = validateAgainst(recommend.RankingSchema, []byte(`{"sortedIds":["x"]}`))
	var ce *recommend.CapabilityError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, recommend.CapabilitySchemaViolation, ce.Kind)
	assert.Equal(t, "product_sorting", ce.Op)

	err = validateAgainst(recommend.StyleProfileSchema, []byte(`{"profile":"Modern","keywords":[]}`))
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, recommend.CapabilitySchemaViolation, ce.Kind)

	err = validateAgainst(recommend.StyleProfileSchema, []byte(`{"profile":"a","keywords":["b"],"recommendations":"c","extra":1}`))
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, recommend.CapabilitySchemaViolation, ce.Kind)
}

func TestBreakerTripsAfterConsecutiveFailures(t *testing.T) {
	cb := newBreaker(&config.RecommendConfig{BreakerFailures: 2}, zap.NewNop())
	boom := errors.New("boom")

	for i := 0; i < 2; i++ {
		_, err := cb.Execute(func() (string, error) { return "", boom })
		assert.ErrorIs(t, err, boom)
	}

	called := false
	_, err := cb.Execute(func() (string, error) {
		called = true
		return "ok", nil
	})
	assert.False(t, called)

	s := &LLMService{logger: zap.NewNop()}
	var ce *recommend.CapabilityError
	require.True(t, errors.As(s.classify(t.Context(), "product_sorting", err), &ce))
	assert.Equal(t, recommend.CapabilityUnavailable, ce.Kind)
}

func TestBreakerIgnoresCancelledCalls(t *testing.T) {
	cb := newBreaker(&config.RecommendConfig{BreakerFailures: 5}, zap.NewNop())

	_, err := cb.Execute(func() (string, error) {
		return "", fmt.Errorf("generate: %w", context.DeadlineExceeded)
	})
	require.Error(t, err)

	cancelled := &url.Error{Op: "Post", URL: "https://gigachat.devices.sberbank.ru/api/v1/chat/completions", Err: context.Canceled}
	for i := 0; i < 5; i++ {
		_, err := cb.Execute(func() (string, error) { return "", cancelled })
		assert.ErrorIs(t, err, context.Canceled)
	}

	assert.Equal(t, gobreaker.StateClosed, cb.State())
	assert.Equal(t, uint32(0), cb.Counts().ConsecutiveFailures)
}

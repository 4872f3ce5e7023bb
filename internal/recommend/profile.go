package recommend

import (
	"context"

	"vitrifiye-studio/internal/metrics"

	"go.uber.org/zap"
)

const (
	MaxKeywords         = 7
	maxFallbackKeywords = 5

	fallbackProfileText         = "Kullanıcı tercihleri analiz edildi."
	fallbackRecommendationsText = "Filtrelere uygun ürünler önerilecek."
)

type StyleProfile struct {
	Profile         string   `json:"profile"`
	Keywords        []string `json:"keywords"`
	Recommendations string   `json:"recommendations"`
}

type ProfileSource string

const (
	ProfileFromAI       ProfileSource = "ai"
	ProfileFromFallback ProfileSource = "fallback"
)

// FallbackStyleProfile never fails. Keywords are the first string answers in
// answer order; lists and other kinds are skipped.
func FallbackStyleProfile(answers Answers) StyleProfile {
	keywords := make([]string, 0, maxFallbackKeywords)
	for _, key := range answers.Keys() {
		if len(keywords) == maxFallbackKeywords {
			break
		}
		if s, ok := answers.Get(key).Scalar(); ok {
			keywords = append(keywords, s)
		}
	}
	return StyleProfile{
		Profile:         fallbackProfileText,
		Keywords:        keywords,
		Recommendations: fallbackRecommendationsText,
	}
}

type ProfileExtractor struct {
	capability Capability
	logger     *zap.Logger
}

// NewProfileExtractor accepts a nil capability, in which case Build always
// returns the fallback profile.
func NewProfileExtractor(c Capability, logger *zap.Logger) *ProfileExtractor {
	return &ProfileExtractor{capability: c, logger: logger}
}

func (p *ProfileExtractor) Build(ctx context.Context, answers Answers) (StyleProfile, ProfileSource) {
	if p.capability == nil {
		return FallbackStyleProfile(answers), ProfileFromFallback
	}

	prompt, err := buildProfilePrompt(answers)
	if err != nil {
		p.logger.Warn("Failed to build style profile prompt, using fallback", zap.Error(err))
		return FallbackStyleProfile(answers), ProfileFromFallback
	}

	profile, err := GenerateStyleProfile(ctx, p.capability, profileSystemInstruction, prompt)
	if err != nil {
		ce := AsCapabilityError("style_profile", err)
		metrics.CapabilityFailures.WithLabelValues(ce.Op, string(ce.Kind)).Inc()
		p.logger.Warn("Style profile generation failed, using fallback",
			zap.String("kind", string(ce.Kind)),
			zap.Error(err),
		)
		return FallbackStyleProfile(answers), ProfileFromFallback
	}
	return profile, ProfileFromAI
}

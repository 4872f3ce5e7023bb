package recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestProfileExtractor_FallbackOnFailure(t *testing.T) {
	extractor := NewProfileExtractor(&fakeCapability{err: errors.New("boom")}, zap.NewNop())

	profile, source := extractor.Build(context.Background(), mustAnswers(t, `{"2":"modern","4":"orta"}`))

	assert.Equal(t, ProfileFromFallback, source)
	assert.Equal(t, []string{"modern", "orta"}, profile.Keywords)
	assert.Equal(t, "Kullanıcı tercihleri analiz edildi.", profile.Profile)
	assert.Equal(t, "Filtrelere uygun ürünler önerilecek.", profile.Recommendations)
}

func TestFallbackStyleProfile_OnlyStringAnswers(t *testing.T) {
	answers := mustAnswers(t, `{"6":["lavabo"],"1":"banyo","5":3,"2":"modern","3":"beyaz","4":"orta","x":"a","y":"b"}`)

	profile := FallbackStyleProfile(answers)
	assert.Equal(t, []string{"banyo", "modern", "beyaz", "orta", "a"}, profile.Keywords)

	empty := FallbackStyleProfile(NewAnswers())
	assert.NotNil(t, empty.Keywords)
	assert.Empty(t, empty.Keywords)
}

func TestProfileExtractor_UsesCapability(t *testing.T) {
	capability := &fakeCapability{}
	extractor := NewProfileExtractor(capability, zap.NewNop())

	profile, source := extractor.Build(context.Background(), mustAnswers(t, `{"2":"modern"}`))

	assert.Equal(t, ProfileFromAI, source)
	assert.Equal(t, "Modern ve sade.", profile.Profile)
	assert.Equal(t, []string{"modern", "beyaz"}, profile.Keywords)
	assert.Equal(t, 1, capability.callCount(StyleProfileSchema.Name))
	assert.Contains(t, capability.prompts[0], `"2": "modern"`)
}

func TestProfileExtractor_SchemaViolations(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"extra field", `{"profile":"p","keywords":[],"recommendations":"r","mood":"x"}`},
		{"missing field", `{"profile":"p","keywords":[]}`},
		{"wrong type", `{"profile":"p","keywords":"modern","recommendations":"r"}`},
		{"not json", `Profil: modern`},
		{"array", `["p"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			extractor := NewProfileExtractor(&fakeCapability{profile: tt.payload}, zap.NewNop())
			profile, source := extractor.Build(context.Background(), mustAnswers(t, `{"2":"klasik"}`))

			assert.Equal(t, ProfileFromFallback, source)
			assert.Equal(t, []string{"klasik"}, profile.Keywords)
		})
	}
}

func TestProfileExtractor_CapsKeywords(t *testing.T) {
	capability := &fakeCapability{profile: `{"profile":"p","keywords":["a","b","c","d","e","f","g","h","i"],"recommendations":"r"}`}
	profile, source := NewProfileExtractor(capability, zap.NewNop()).Build(context.Background(), NewAnswers())

	assert.Equal(t, ProfileFromAI, source)
	assert.Len(t, profile.Keywords, MaxKeywords)
}

func TestProfileExtractor_NilCapability(t *testing.T) {
	profile, source := NewProfileExtractor(nil, zap.NewNop()).Build(context.Background(), mustAnswers(t, `{"2":"modern"}`))
	assert.Equal(t, ProfileFromFallback, source)
	assert.Equal(t, []string{"modern"}, profile.Keywords)
}

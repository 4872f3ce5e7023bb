package recommend

import "math"

const (
	scoredQuestions       = 6
	scoredRecommendations = 12
)

// MatchScore rates answer completeness (70 points) and recommendation yield
// (30 points). Both ratios are clamped to [0, 1] so the score stays in 0..100.
func MatchScore(answered, recommended int) int {
	answerRatio := clamp01(float64(answered) / scoredQuestions)
	yieldRatio := clamp01(float64(recommended) / scoredRecommendations)
	return int(math.Round(answerRatio*70 + yieldRatio*30))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

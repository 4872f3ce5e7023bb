package catalog

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"vitrifiye-studio/internal/models"
)

var questionTypes = map[string]models.QuestionType{
	"single_choice":   models.QuestionTypeSingleChoice,
	"multiple_choice": models.QuestionTypeMultipleChoice,
	"range":           models.QuestionTypeRange,
	"image_select":    models.QuestionTypeImageSelect,
}

// Question ids map to fixed categories; unknown ids count as features.
var questionCategories = map[int64]models.QuestionCategory{
	1: models.QuestionCategoryRoomType,
	2: models.QuestionCategoryStyle,
	3: models.QuestionCategoryColor,
	4: models.QuestionCategoryBudget,
	5: models.QuestionCategorySize,
	6: models.QuestionCategoryFeature,
}

type exportedOption struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	ImageURL string `json:"imageUrl"`
	Image    string `json:"image"`
}

type exportedQuestion struct {
	ID           int64            `json:"id"`
	QuestionText string           `json:"question_text"`
	QuestionType string           `json:"question_type"`
	Options      []exportedOption `json:"options"`
	Order        int              `json:"order"`
}

// ParseQuizQuestions reads the quiz_questions array of a storefront export,
// sorted by display order.
func ParseQuizQuestions(data []byte) ([]models.QuizQuestion, error) {
	var doc struct {
		QuizQuestions []exportedQuestion `json:"quiz_questions"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse quiz export: %w", err)
	}

	now := time.Now()
	questions := make([]models.QuizQuestion, 0, len(doc.QuizQuestions))
	for _, q := range doc.QuizQuestions {
		qt, ok := questionTypes[q.QuestionType]
		if !ok {
			qt = models.QuestionTypeSingleChoice
		}
		category, ok := questionCategories[q.ID]
		if !ok {
			category = models.QuestionCategoryFeature
		}

		options := make([]models.QuizOption, 0, len(q.Options))
		for _, o := range q.Options {
			image := o.ImageURL
			if image == "" {
				image = o.Image
			}
			options = append(options, models.QuizOption{Value: o.Value, Label: o.Label, ImageURL: image})
		}

		questions = append(questions, models.QuizQuestion{
			ID:           q.ID,
			QuestionText: q.QuestionText,
			QuestionType: qt,
			Category:     category,
			Options:      options,
			Order:        q.Order,
			IsActive:     true,
			CreatedAt:    now,
		})
	}

	sort.SliceStable(questions, func(i, j int) bool {
		return questions[i].Order < questions[j].Order
	})
	return questions, nil
}

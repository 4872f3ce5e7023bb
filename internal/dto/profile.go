package dto

type ProfileResponse struct {
	User           UserResponse            `json:"user"`
	Configurations []ConfigurationResponse `json:"configurations"`
	QuizResults    []QuizResultResponse    `json:"quizResults"`
}

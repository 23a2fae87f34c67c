package dto

import "hangul-quiz/internal/domain"

// GenerateRequest is the body of both generation endpoints.
// @Description Request body for generating questions
type GenerateRequest struct {
	Replace  bool   `json:"replace"`
	PerLevel *int   `json:"perLevel,omitempty"`
	Prompt   string `json:"prompt,omitempty"`
}

// GenerateResponse reports the bank after a successful generation.
type GenerateResponse struct {
	OK       bool               `json:"ok"`
	Replaced bool               `json:"replaced"`
	Mode     string             `json:"mode"`
	Counts   domain.LevelCounts `json:"counts"`
}

// DebugResponse shows where the question bank lives.
type DebugResponse struct {
	QuestionsPath string `json:"QUESTIONS_PATH"`
	Exists        bool   `json:"exists"`
}

// LearningItem is one card of a learning set. Dialogue sentences are split into
// the two lines spoken by each side.
type LearningItem struct {
	Level      domain.Level `json:"level"`
	LevelName  string       `json:"level_name"`
	Sentence   string       `json:"sentence"`
	FirstLine  string       `json:"first_line"`
	SecondLine string       `json:"second_line"`
	Answer     string       `json:"answer"`
	Options    []string     `json:"options"`
}

// LearningSetResponse is a mixed-level set of study cards.
type LearningSetResponse struct {
	Items []LearningItem `json:"items"`
	Count int            `json:"count"`
}

// LevelTestQuestion is the question currently shown in a level test.
// CorrectAnswer is only filled once the question has been answered.
type LevelTestQuestion struct {
	Sentence      string   `json:"sentence"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer,omitempty"`
}

// LevelTestResponse is the client view of a level test session.
// @Description Level test session state
type LevelTestResponse struct {
	ID           string             `json:"id"`
	Status       string             `json:"status"`
	Asked        int                `json:"asked"`
	Total        int                `json:"total"`
	CurrentLevel domain.Level       `json:"current_level"`
	LevelName    string             `json:"level_name"`
	Question     *LevelTestQuestion `json:"question,omitempty"`
	Selected     *int               `json:"selected,omitempty"`
	LastCorrect  *bool              `json:"last_correct,omitempty"`
	Correct      domain.LevelCounts `json:"correct"`
	TotalCorrect int                `json:"total_correct"`
}

// AnswerRequest selects one of the shown options by index.
type AnswerRequest struct {
	Choice *int `json:"choice"`
}

// AnswerResponse reports whether the selected option was right.
type AnswerResponse struct {
	Correct bool              `json:"correct"`
	Answer  string            `json:"answer"`
	Session LevelTestResponse `json:"session"`
}

// LevelTestResultResponse is the summary of a completed level test.
type LevelTestResultResponse struct {
	ID             string             `json:"id"`
	TotalCorrect   int                `json:"total_correct"`
	Total          int                `json:"total"`
	Correct        domain.LevelCounts `json:"correct"`
	FinalLevel     domain.Level       `json:"final_level"`
	FinalLevelName string             `json:"final_level_name"`
}

package dto

import (
	"time"

	"github.com/google/uuid"
)

type ChatRequest struct {
	Question string `json:"question" validate:"required,min=1,max=2000"`
}

// ChatResponse is the structured assistant answer. Optional fields are
// always present in the JSON, null when not applicable, so clients never
// need shape inspection.
type ChatResponse struct {
	InteractionId      uuid.UUID `json:"interaction_id"`
	Answer             string    `json:"answer"`
	Intent             string    `json:"intent"`
	SubIntent          *string   `json:"sub_intent"`
	Confidence         float64   `json:"confidence"`
	Labels             []string  `json:"labels"`
	SourceFile         *string   `json:"source_file"`
	DownloadUrl        *string   `json:"download_url"`
	NeedsConfirmation  bool      `json:"needs_confirmation"`
	NeedsClarification bool      `json:"needs_clarification"`
	SuggestedResponse  *string   `json:"suggested_response"`
	CreatedAt          time.Time `json:"created_at"`
}

type SimilarQuestionResponse struct {
	Question  string    `json:"question"`
	Intent    string    `json:"intent"`
	Response  string    `json:"response"`
	Frequency int       `json:"frequency"`
	Timestamp time.Time `json:"timestamp"`
}

// RecordInteractionMessage is the event payload published after every chat
// turn and consumed by the learning recorder.
type RecordInteractionMessage struct {
	Question   string   `json:"question"`
	Response   string   `json:"response"`
	UserId     string   `json:"user_id"`
	Intent     string   `json:"intent"`
	SubIntent  string   `json:"sub_intent,omitempty"`
	Confidence float64  `json:"confidence"`
	Entities   []string `json:"entities,omitempty"`
}

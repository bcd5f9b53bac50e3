package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/suklaray/hrms-sub002/internal/constant"
	"github.com/suklaray/hrms-sub002/internal/dto"
	"github.com/suklaray/hrms-sub002/internal/pkg/logger"
	"github.com/suklaray/hrms-sub002/pkg/assistant/compose"
	"github.com/suklaray/hrms-sub002/pkg/assistant/conversation"
	"github.com/suklaray/hrms-sub002/pkg/assistant/intent"
	"github.com/suklaray/hrms-sub002/pkg/assistant/knowledge"
	"github.com/suklaray/hrms-sub002/pkg/assistant/learning"
)

const answerExcerptLimit = 300

// IAssistantService is the conversational HR assistant.
type IAssistantService interface {
	Chat(ctx context.Context, userId string, request *dto.ChatRequest) (*dto.ChatResponse, error)
	FindSimilar(question string) []*dto.SimilarQuestionResponse
}

type assistantService struct {
	detector  *intent.Detector
	contexts  *conversation.Store
	knowledge *knowledge.Base
	cache     *learning.Cache
	publisher IPublisherService
	logger    logger.ILogger
}

func NewAssistantService(
	detector *intent.Detector,
	contexts *conversation.Store,
	kb *knowledge.Base,
	cache *learning.Cache,
	publisher IPublisherService,
	logger logger.ILogger,
) IAssistantService {
	return &assistantService{
		detector:  detector,
		contexts:  contexts,
		knowledge: kb,
		cache:     cache,
		publisher: publisher,
		logger:    logger,
	}
}

// Chat classifies the question, resolves an answer, and records the
// interaction. Every input gets some answer; internal failures degrade to
// generic responses instead of erroring out.
func (as *assistantService) Chat(ctx context.Context, userId string, request *dto.ChatRequest) (*dto.ChatResponse, error) {
	// Topic before this turn, for the same-topic bridge phrase.
	previousTopic := ""
	if prev := as.contexts.Get(userId); prev != nil && prev.LastIntent != nil {
		previousTopic = prev.LastIntent.Primary
	}

	result := as.detector.Detect(request.Question, userId)

	response := &dto.ChatResponse{
		InteractionId: uuid.New(),
		Intent:        result.PrimaryIntent,
		Confidence:    result.Confidence,
		Labels:        result.Labels,
		CreatedAt:     time.Now(),
	}
	if result.SubIntent != "" {
		sub := result.SubIntent
		response.SubIntent = &sub
	}

	as.logger.Info("assistant", "Question classified", map[string]interface{}{
		"user_id":    userId,
		"labels":     result.Labels,
		"confidence": result.Confidence,
	})

	switch {
	case result.IsNonHR:
		response.Answer = compose.Wrap(constant.NonHRResponse, compose.SentimentNegative)

	case result.PrimaryIntent == intent.TagClarification:
		response.Answer = "No problem. Could you rephrase your question so I can help better?"
		response.NeedsClarification = true

	case intent.IsHRRelated(result):
		as.answerHRQuestion(request.Question, previousTopic, result, response)

	default:
		as.answerUnrecognized(request.Question, userId, response)
	}

	as.publishInteraction(request.Question, userId, result, response.Answer)

	return response, nil
}

// answerHRQuestion fills the response for a confidently classified intent.
// Policy- and holiday-shaped questions go through the document corpus;
// everything else gets the canned intent answer.
func (as *assistantService) answerHRQuestion(question, previousTopic string, result intent.Result, response *dto.ChatResponse) {
	if topic, searchable := searchTopic(result); searchable {
		outcome := as.knowledge.RelevantFile(topic, question)

		switch {
		case outcome == nil:
			response.Answer = compose.Wrap(constant.DocumentNotFoundResponse, compose.SentimentNegative)
		case outcome.Ambiguous:
			response.Answer = outcome.Clarification
			response.NeedsClarification = true
		default:
			doc := outcome.Document
			name := doc.Filename
			if idx := strings.LastIndex(name, "."); idx > 0 {
				name = name[:idx]
			}
			answer := fmt.Sprintf("According to %s: %s", name, excerpt(doc.Content))
			response.Answer = compose.Wrap(answer, compose.SentimentPositive)
			response.SourceFile = &doc.Filename
			downloadUrl := "/files/" + doc.Filename
			response.DownloadUrl = &downloadUrl
		}
		return
	}

	answer, ok := constant.GenericResponses[result.PrimaryIntent]
	if !ok {
		answer = constant.FallbackResponse
	}
	answer = compose.BridgeTopic(previousTopic, result.PrimaryIntent) + answer
	response.Answer = compose.Wrap(answer, compose.SentimentNeutral)
}

// answerUnrecognized handles general/low-confidence questions: when the
// learning cache knows a close past question, suggest it and wait for a
// yes/no, otherwise fall back.
func (as *assistantService) answerUnrecognized(question, userId string, response *dto.ChatResponse) {
	similar := as.cache.FindSimilar(question, learning.DefaultSimilarityThreshold)
	if len(similar) == 0 || userId == "" {
		response.Answer = compose.Wrap(constant.FallbackResponse, compose.SentimentNegative)
		return
	}

	suggested := similar[0]
	pending := true
	as.contexts.Set(userId, conversation.Update{
		LastIntent: &conversation.IntentRef{
			Primary: suggested.Intent,
			Sub:     suggested.SubIntent,
		},
		PendingConfirmation: &pending,
	})

	response.Answer = fmt.Sprintf(constant.SuggestionPrompt, suggested.Question)
	response.NeedsConfirmation = true
	response.SuggestedResponse = &suggested.Response
}

// publishInteraction hands the turn to the learning recorder. Best effort:
// a failed publish is logged, never surfaced.
func (as *assistantService) publishInteraction(question, userId string, result intent.Result, answer string) {
	err := as.publisher.PublishInteraction(&dto.RecordInteractionMessage{
		Question:   question,
		Response:   answer,
		UserId:     userId,
		Intent:     result.PrimaryIntent,
		SubIntent:  result.SubIntent,
		Confidence: result.Confidence,
		Entities:   result.Labels,
	})
	if err != nil {
		as.logger.Warn("assistant", "Failed to publish interaction", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// FindSimilar exposes the learning cache's similarity lookup.
func (as *assistantService) FindSimilar(question string) []*dto.SimilarQuestionResponse {
	records := as.cache.FindSimilar(question, learning.DefaultSimilarityThreshold)

	out := make([]*dto.SimilarQuestionResponse, 0, len(records))
	for _, r := range records {
		out = append(out, &dto.SimilarQuestionResponse{
			Question:  r.Question,
			Intent:    r.Intent,
			Response:  r.Response,
			Frequency: r.Frequency,
			Timestamp: r.Timestamp,
		})
	}
	return out
}

// searchTopic maps a detection onto a document-search vocabulary. Only
// policy- and holiday-shaped intents hit the corpus.
func searchTopic(result intent.Result) (string, bool) {
	switch {
	case result.PrimaryIntent == "policy":
		return "policy", true
	case result.PrimaryIntent == "holiday":
		return "holiday", true
	case result.PrimaryIntent == "leave" && result.SubIntent == "policy":
		return "policy", true
	default:
		return "", false
	}
}

func excerpt(content string) string {
	text := strings.Join(strings.Fields(content), " ")
	runes := []rune(text)
	if len(runes) <= answerExcerptLimit {
		return text
	}
	return string(runes[:answerExcerptLimit]) + "..."
}

package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suklaray/hrms-sub002/internal/constant"
	"github.com/suklaray/hrms-sub002/internal/dto"
	"github.com/suklaray/hrms-sub002/internal/pkg/logger"
	"github.com/suklaray/hrms-sub002/pkg/assistant/conversation"
	"github.com/suklaray/hrms-sub002/pkg/assistant/intent"
	"github.com/suklaray/hrms-sub002/pkg/assistant/knowledge"
	"github.com/suklaray/hrms-sub002/pkg/assistant/learning"
)

type stubPublisher struct {
	messages []*dto.RecordInteractionMessage
}

func (s *stubPublisher) PublishInteraction(msg *dto.RecordInteractionMessage) error {
	s.messages = append(s.messages, msg)
	return nil
}

type fixture struct {
	service   IAssistantService
	contexts  *conversation.Store
	cache     *learning.Cache
	publisher *stubPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dir := t.TempDir()
	err := os.WriteFile(
		filepath.Join(dir, "company_policy.txt"),
		[]byte("Employees must follow the company dress code and working hour guidelines."),
		0o644,
	)
	require.NoError(t, err)

	log := logger.NewNopLogger()
	contexts := conversation.NewStore()
	cache := learning.NewCache(nil, 0, log)
	publisher := &stubPublisher{}

	svc := NewAssistantService(
		intent.NewDetector(intent.DefaultTable(), contexts),
		contexts,
		knowledge.NewBase(dir, log),
		cache,
		publisher,
		log,
	)

	return &fixture{service: svc, contexts: contexts, cache: cache, publisher: publisher}
}

func TestChatGenericIntent(t *testing.T) {
	f := newFixture(t)

	res, err := f.service.Chat(context.Background(), "user-1", &dto.ChatRequest{Question: "show my payslip"})
	require.NoError(t, err)

	assert.Equal(t, "payslip", res.Intent)
	assert.Contains(t, res.Answer, constant.GenericResponses["payslip"])
	assert.False(t, res.NeedsConfirmation)
	assert.False(t, res.NeedsClarification)
	assert.Nil(t, res.SourceFile)

	require.Len(t, f.publisher.messages, 1)
	assert.Equal(t, "payslip", f.publisher.messages[0].Intent)
	assert.Equal(t, "user-1", f.publisher.messages[0].UserId)
}

func TestChatNonHRQuestion(t *testing.T) {
	f := newFixture(t)

	res, err := f.service.Chat(context.Background(), "user-1", &dto.ChatRequest{Question: "what's the weather like today"})
	require.NoError(t, err)

	assert.Equal(t, intent.TagNonHR, res.Intent)
	assert.Contains(t, res.Answer, constant.NonHRResponse)
}

func TestChatDocumentAnswer(t *testing.T) {
	f := newFixture(t)

	res, err := f.service.Chat(context.Background(), "user-1", &dto.ChatRequest{Question: "what is the company policy"})
	require.NoError(t, err)

	assert.Equal(t, "policy", res.Intent)
	require.NotNil(t, res.SourceFile)
	assert.Equal(t, "company_policy.txt", *res.SourceFile)
	require.NotNil(t, res.DownloadUrl)
	assert.Equal(t, "/files/company_policy.txt", *res.DownloadUrl)
	assert.Contains(t, res.Answer, "According to company_policy")
	assert.Contains(t, res.Answer, "dress code")
}

func TestChatFallbackWhenNothingMatches(t *testing.T) {
	f := newFixture(t)

	res, err := f.service.Chat(context.Background(), "user-1", &dto.ChatRequest{Question: "what is gratuity"})
	require.NoError(t, err)

	assert.Equal(t, intent.TagGeneral, res.Intent)
	assert.Contains(t, res.Answer, constant.FallbackResponse)
}

func TestChatSuggestionAndConfirmation(t *testing.T) {
	f := newFixture(t)

	// A past answered question the cache knows about.
	f.cache.Record("what is gratuity", "Gratuity is paid after five years of service.", "user-1", "leave", "balance", 0.8, nil)

	res, err := f.service.Chat(context.Background(), "user-1", &dto.ChatRequest{Question: "what is gratuityy"})
	require.NoError(t, err)

	assert.True(t, res.NeedsConfirmation)
	assert.Contains(t, res.Answer, "what is gratuity")
	assert.Contains(t, res.Answer, "Reply yes or no")
	require.NotNil(t, res.SuggestedResponse)
	assert.Equal(t, "Gratuity is paid after five years of service.", *res.SuggestedResponse)

	ctx := f.contexts.Get("user-1")
	require.NotNil(t, ctx)
	assert.True(t, ctx.PendingConfirmation)

	// "yes" re-emits the suggested intent as a confident answer.
	confirmed, err := f.service.Chat(context.Background(), "user-1", &dto.ChatRequest{Question: "yes"})
	require.NoError(t, err)

	assert.Equal(t, "leave", confirmed.Intent)
	assert.Contains(t, confirmed.Answer, constant.GenericResponses["leave"])
	assert.False(t, confirmed.NeedsConfirmation)
	assert.False(t, f.contexts.Get("user-1").PendingConfirmation)
}

func TestChatConfirmationDeclined(t *testing.T) {
	f := newFixture(t)

	f.cache.Record("what is gratuity", "Gratuity is paid after five years of service.", "user-1", "leave", "", 0.8, nil)

	_, err := f.service.Chat(context.Background(), "user-1", &dto.ChatRequest{Question: "what is gratuityy"})
	require.NoError(t, err)

	res, err := f.service.Chat(context.Background(), "user-1", &dto.ChatRequest{Question: "no"})
	require.NoError(t, err)

	assert.Equal(t, intent.TagClarification, res.Intent)
	assert.True(t, res.NeedsClarification)
	assert.Contains(t, res.Answer, "rephrase")
	assert.False(t, f.contexts.Get("user-1").PendingConfirmation)
}

func TestChatEveryInteractionPublished(t *testing.T) {
	f := newFixture(t)

	questions := []string{"show my payslip", "what's the weather", "what is gratuity"}
	for _, q := range questions {
		_, err := f.service.Chat(context.Background(), "user-1", &dto.ChatRequest{Question: q})
		require.NoError(t, err)
	}

	assert.Len(t, f.publisher.messages, len(questions))
}

func TestFindSimilar(t *testing.T) {
	f := newFixture(t)

	f.cache.Record("how do i apply for leave", "Use the Leave section.", "user-1", "leave", "apply", 0.9, nil)

	res := f.service.FindSimilar("how do i apply for leave?")
	require.Len(t, res, 1)
	assert.Equal(t, "how do i apply for leave", res[0].Question)
	assert.Equal(t, "leave", res[0].Intent)
	assert.Equal(t, 1, res[0].Frequency)

	assert.Empty(t, f.service.FindSimilar("completely unrelated text here"))
}

func TestExcerptTruncation(t *testing.T) {
	long := strings.Repeat("a ", 400)
	short := "a short answer"

	assert.Equal(t, short, excerpt(short))
	got := excerpt(long)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.LessOrEqual(t, len([]rune(got)), answerExcerptLimit+3)
}

package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gridiron-labs/huddle-cli/internal/core/domain"
)

type mockAssistant struct {
	answer       domain.Answer
	err          error
	lastQuestion string
	history      []domain.ConversationTurn
}

func (m *mockAssistant) Ask(_ context.Context, question string) (domain.Answer, error) {
	m.lastQuestion = question
	return m.answer, m.err
}

func (m *mockAssistant) History() []domain.ConversationTurn { return m.history }
func (m *mockAssistant) ResetHistory()                      { m.history = nil }

type mockIndexService struct {
	size     int
	buildErr error
}

func (m *mockIndexService) Build(_ context.Context) error   { return m.buildErr }
func (m *mockIndexService) Rebuild(_ context.Context) error { return m.buildErr }
func (m *mockIndexService) Size() int                       { return m.size }

// setupAskServices swaps the package services for mocks so bootstrap is a
// no-op.
func setupAskServices(assistant *mockAssistant) func() {
	oldAssistant := assistantService
	oldIndex := indexService
	assistantService = assistant
	indexService = &mockIndexService{size: 5}
	return func() {
		assistantService = oldAssistant
		indexService = oldIndex
	}
}

func TestAskCmd_PrintsAnswer(t *testing.T) {
	assistant := &mockAssistant{answer: domain.Answer{Text: "Start Derrick Henry.", Grounded: true}}
	defer setupAskServices(assistant)()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ask", "who", "should", "I", "start?"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, "who should I start?", assistant.lastQuestion)
	assert.Contains(t, buf.String(), "Start Derrick Henry.")
}

func TestAskCmd_PrintsNotes(t *testing.T) {
	assistant := &mockAssistant{answer: domain.Answer{
		Text:  "He looks healthy.",
		Notes: []string{"live league data could not be fetched; answering without it"},
	}}
	defer setupAskServices(assistant)()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ask", "is he healthy?"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "note: live league data could not be fetched")
}

func TestAskCmd_GenerationFailure(t *testing.T) {
	assistant := &mockAssistant{err: errors.New("generation failed: model overloaded")}
	defer setupAskServices(assistant)()

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"ask", "anything"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "model overloaded")
}

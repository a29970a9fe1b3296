package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gridiron-labs/huddle-cli/internal/core/domain"
	"github.com/gridiron-labs/huddle-cli/internal/core/ports/driven"
	"github.com/gridiron-labs/huddle-cli/internal/core/ports/driving"
	"github.com/gridiron-labs/huddle-cli/internal/logger"
)

const (
	// generateAttempts bounds how often a failed LLM call is retried before
	// the query fails with domain.ErrGenerationFailed.
	generateAttempts = 2

	// historyWindow is the number of most recent turns replayed into the
	// prompt. Older turns stay in History but drop out of the model's view.
	historyWindow = 6
)

// systemPrompt frames every conversation. The model is told to prefer the
// supplied player notes over its own priors and to say so when it cannot
// ground an answer.
const systemPrompt = `You are a fantasy football assistant for a season-long NFL league.

Rules:
- Ground your answers in the PLAYER NOTES section when it is present. Quote concrete numbers from it rather than estimating.
- If the notes do not cover the question, say so and answer from general knowledge.
- When LIVE LEAGUE DATA is present it reflects the user's own league right now; prefer it over anything else for roster, waiver and standings questions.
- Be concise. Lead with the recommendation or answer, then the reasoning.
- Never invent statistics, injury reports or roster spots.`

// Assistant answers questions over the semantic index, pulling live league
// data when the question asks for it. One Assistant is one session: history
// is in-memory and scoped to the process.
type Assistant struct {
	sessionID string
	holder    *IndexHolder
	llm       driven.LLMService
	league    driven.LeagueClient // nil when no league is configured
	topK      int

	mu      sync.Mutex
	history []domain.ConversationTurn
}

var _ driving.AssistantService = (*Assistant)(nil)

// NewAssistant wires an assistant over an index holder and generation
// backend. league may be nil, in which case roster/waiver/standings
// questions degrade to general knowledge with a note.
func NewAssistant(holder *IndexHolder, llm driven.LLMService, league driven.LeagueClient, topK int) *Assistant {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Assistant{
		sessionID: uuid.NewString(),
		holder:    holder,
		llm:       llm,
		league:    league,
		topK:      topK,
	}
}

// SessionID identifies this conversation in logs.
func (a *Assistant) SessionID() string {
	return a.sessionID
}

// Ask runs the full answer pipeline: retrieve player notes, classify the
// question's live-data intent, fetch at most one league resource, then
// generate. Retrieval and league failures degrade the answer with a note;
// only generation failure is fatal.
func (a *Assistant) Ask(ctx context.Context, question string) (domain.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return domain.Answer{}, fmt.Errorf("%w: empty question", domain.ErrInvalidInput)
	}

	answer := domain.Answer{}

	notes := a.retrieveNotes(ctx, question, &answer)
	leagueBlock := a.fetchLeagueContext(ctx, question, &answer)

	messages := a.composeMessages(question, notes, leagueBlock)

	text, err := a.generateWithRetry(ctx, messages)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}
	answer.Text = text

	a.mu.Lock()
	a.history = append(a.history, domain.ConversationTurn{
		Question: question,
		Answer:   text,
		AskedAt:  time.Now(),
	})
	a.mu.Unlock()

	return answer, nil
}

// History returns a copy of the session's turns in order.
func (a *Assistant) History() []domain.ConversationTurn {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]domain.ConversationTurn, len(a.history))
	copy(out, a.history)
	return out
}

// ResetHistory clears the session's turns. The index and league connection
// are untouched.
func (a *Assistant) ResetHistory() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.history = nil
}

// retrieveNotes pulls the top-k player documents for the question. An
// unavailable or empty index is not fatal: the answer is marked ungrounded
// and gets a note.
func (a *Assistant) retrieveNotes(ctx context.Context, question string, answer *domain.Answer) []RetrievedDocument {
	idx := a.holder.Get()
	if idx == nil || idx.Size() == 0 {
		logger.Debug("session %s: no index available, answering ungrounded", a.sessionID)
		answer.Notes = append(answer.Notes, "no player index is loaded; answer is from general knowledge only")
		return nil
	}

	hits, err := idx.Retrieve(ctx, question, a.topK)
	if err != nil {
		logger.Warn("session %s: retrieval failed: %v", a.sessionID, err)
		answer.Notes = append(answer.Notes, "player notes could not be retrieved; answer is from general knowledge only")
		return nil
	}

	answer.Grounded = len(hits) > 0
	return hits
}

// fetchLeagueContext classifies the question and makes at most one league
// call. League errors degrade with a note rather than failing the query.
func (a *Assistant) fetchLeagueContext(ctx context.Context, question string, answer *domain.Answer) string {
	intent := ClassifyIntent(question)
	if intent == domain.IntentNone {
		return ""
	}

	if a.league == nil {
		answer.Notes = append(answer.Notes, "no league is configured; answering without live league data")
		return ""
	}

	logger.Debug("session %s: league intent %s", a.sessionID, intent)

	block, err := a.callLeague(ctx, intent)
	if err != nil {
		logger.Warn("session %s: league call failed: %v", a.sessionID, err)
		answer.Notes = append(answer.Notes, "live league data could not be fetched; answering without it")
		return ""
	}

	answer.LeagueDataIncluded = true
	return block
}

func (a *Assistant) callLeague(ctx context.Context, intent domain.Intent) (string, error) {
	switch intent {
	case domain.IntentRoster:
		roster, err := a.league.Roster(ctx)
		if err != nil {
			return "", err
		}
		return renderRoster(roster), nil
	case domain.IntentWaiver:
		waivers, err := a.league.WaiverPlayers(ctx)
		if err != nil {
			return "", err
		}
		return renderWaivers(waivers), nil
	case domain.IntentStandings:
		info, err := a.league.LeagueInfo(ctx)
		if err != nil {
			return "", err
		}
		return renderLeagueInfo(info), nil
	default:
		return "", nil
	}
}

// composeMessages assembles the chat transcript: system prompt, retrieved
// notes and league data folded into the final user message, preceded by a
// bounded window of prior turns.
func (a *Assistant) composeMessages(question string, notes []RetrievedDocument, leagueBlock string) []driven.ChatMessage {
	messages := []driven.ChatMessage{{Role: "system", Content: systemPrompt}}

	a.mu.Lock()
	start := len(a.history) - historyWindow
	if start < 0 {
		start = 0
	}
	for _, turn := range a.history[start:] {
		messages = append(messages,
			driven.ChatMessage{Role: "user", Content: turn.Question},
			driven.ChatMessage{Role: "assistant", Content: turn.Answer},
		)
	}
	a.mu.Unlock()

	var sb strings.Builder
	if len(notes) > 0 {
		sb.WriteString("PLAYER NOTES:\n")
		for _, hit := range notes {
			sb.WriteString("- ")
			sb.WriteString(hit.Document.Text)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}
	if leagueBlock != "" {
		sb.WriteString("LIVE LEAGUE DATA:\n")
		sb.WriteString(leagueBlock)
		sb.WriteString("\n")
	}
	sb.WriteString("QUESTION: ")
	sb.WriteString(question)

	return append(messages, driven.ChatMessage{Role: "user", Content: sb.String()})
}

func (a *Assistant) generateWithRetry(ctx context.Context, messages []driven.ChatMessage) (string, error) {
	opts := driven.ChatOptions{Temperature: 0.2}

	var lastErr error
	for attempt := 1; attempt <= generateAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		text, err := a.llm.Chat(ctx, messages, opts)
		if err == nil {
			text = strings.TrimSpace(text)
			if text != "" {
				return text, nil
			}
			err = fmt.Errorf("model returned an empty answer")
		}
		lastErr = err
		logger.Debug("session %s: generation attempt %d/%d failed: %v", a.sessionID, attempt, generateAttempts, err)
	}
	return "", lastErr
}

func renderRoster(roster []domain.RosterEntry) string {
	if len(roster) == 0 {
		return "The user's roster is empty.\n"
	}
	var sb strings.Builder
	sb.WriteString("User's current roster:\n")
	for _, entry := range roster {
		fmt.Fprintf(&sb, "- %s (%s)\n", entry.Name, strings.Join(entry.Positions, "/"))
	}
	return sb.String()
}

func renderWaivers(waivers []domain.WaiverEntry) string {
	if len(waivers) == 0 {
		return "No players are currently on the waiver wire.\n"
	}
	var sb strings.Builder
	sb.WriteString("Players available on the waiver wire:\n")
	for _, entry := range waivers {
		fmt.Fprintf(&sb, "- %s (%s)\n", entry.Name, strings.Join(entry.Positions, "/"))
	}
	return sb.String()
}

func renderLeagueInfo(info domain.LeagueInfo) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Current week: %d\n", info.CurrentWeek)
	if len(info.Standings) > 0 {
		sb.WriteString("Standings:\n")
		for _, s := range info.Standings {
			fmt.Fprintf(&sb, "%d. %s (%d-%d-%d)\n", s.Rank, s.TeamName, s.Wins, s.Losses, s.Ties)
		}
	}
	return sb.String()
}

package assistant

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"github.com/cardstack/cardstack-api/internal/domain"
	"github.com/cardstack/cardstack-api/internal/platform/logger"
	"github.com/cardstack/cardstack-api/internal/store"
)

// Reply is the outcome of one assistant turn: the final visible text plus
// any entities created by tool calls along the way.
type Reply struct {
	Text    string
	Created *CreatedEntities
}

// Runner drives the bounded tool-execution loop. The server holds no
// cross-request loop state; every Respond call starts from the persisted
// history it is given.
type Runner struct {
	model           Model
	runInTx         txRunner
	deckStore       store.DeckStore
	collectionStore store.CollectionStore
	cardStore       store.CardStore
	maxIterations   int
	logger          *slog.Logger
}

// NewRunner creates a Runner. maxIterations is the hard ceiling on model
// invocations per user message.
func NewRunner(
	model Model,
	db *sql.DB,
	deckStore store.DeckStore,
	collectionStore store.CollectionStore,
	cardStore store.CardStore,
	maxIterations int,
	logger *slog.Logger,
) (*Runner, error) {
	if model == nil {
		return nil, fmt.Errorf("model cannot be nil")
	}
	if db == nil {
		return nil, fmt.Errorf("db cannot be nil")
	}
	if deckStore == nil || collectionStore == nil || cardStore == nil {
		return nil, fmt.Errorf("stores cannot be nil")
	}
	if maxIterations <= 0 {
		return nil, fmt.Errorf("maxIterations must be positive, got %d", maxIterations)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Runner{
		model: model,
		runInTx: func(ctx context.Context, fn store.TxFn) error {
			return store.RunInTransaction(ctx, db, fn)
		},
		deckStore:       deckStore,
		collectionStore: collectionStore,
		cardStore:       cardStore,
		maxIterations:   maxIterations,
		logger:          logger.With(slog.String("component", "assistant_runner")),
	}, nil
}

// Respond answers one user message, invoking tools as the model requests.
// The loop exits when the model replies without tool calls, or after
// maxIterations model invocations, whichever comes first. Hitting the
// ceiling is not an error: the last seen text (or a fixed fallback) is
// used as the reply.
//
// Tool-internal failures are fed back to the model as descriptive result
// strings; only model transport failures propagate as errors.
func (r *Runner) Respond(
	ctx context.Context,
	userID uuid.UUID,
	history []domain.Message,
	content string,
) (*Reply, error) {
	log := logger.FromContextOrDefault(ctx, r.logger)

	ts := newToolset(userID, r.runInTx, r.deckStore, r.collectionStore, r.cardStore)
	tools := ts.tools()
	byName := make(map[string]*Tool, len(tools))
	for _, tool := range tools {
		byName[tool.Name] = tool
	}

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Tools: []*genai.Tool{
			{FunctionDeclarations: declarations(tools)},
		},
	}

	contents := make([]*genai.Content, 0, len(history)+1)
	for _, msg := range history {
		var role genai.Role = genai.RoleUser
		if msg.Role == domain.MessageRoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(msg.Content, role))
	}
	contents = append(contents, genai.NewContentFromText(content, genai.RoleUser))

	var lastText string
	for iteration := 1; iteration <= r.maxIterations; iteration++ {
		resp, err := r.model.GenerateContent(ctx, contents, cfg)
		if err != nil {
			return nil, fmt.Errorf("model invocation %d failed: %w", iteration, err)
		}

		if text := resp.Text(); text != "" {
			lastText = text
		}

		calls := resp.FunctionCalls()
		if len(calls) == 0 {
			return r.reply(lastText, ts), nil
		}

		// The model's tool-call turn joins the conversation before any
		// results do.
		if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
			contents = append(contents, resp.Candidates[0].Content)
		}

		// Execute sequentially in call order; a later call may want to see
		// an earlier call's effect.
		parts := make([]*genai.Part, 0, len(calls))
		for _, call := range calls {
			result := r.execute(ctx, byName, call)
			log.Debug("tool executed",
				slog.String("tool", call.Name),
				slog.Int("iteration", iteration))
			parts = append(parts, &genai.Part{
				FunctionResponse: &genai.FunctionResponse{
					ID:       call.ID,
					Name:     call.Name,
					Response: map[string]any{"result": result},
				},
			})
		}
		contents = append(contents, &genai.Content{Role: genai.RoleUser, Parts: parts})
	}

	log.Warn("assistant hit the iteration ceiling",
		slog.Int("max_iterations", r.maxIterations),
		slog.String("user_id", userID.String()))
	return r.reply(lastText, ts), nil
}

func (r *Runner) execute(
	ctx context.Context,
	byName map[string]*Tool,
	call *genai.FunctionCall,
) string {
	tool, ok := byName[call.Name]
	if !ok {
		return fmt.Sprintf("Error: unknown tool %q", call.Name)
	}

	result, err := tool.Handler(ctx, call.Args)
	if err != nil {
		// The model reads the error text and recovers or reports it.
		return fmt.Sprintf("Error: %s", err.Error())
	}
	return result
}

func (r *Runner) reply(lastText string, ts *toolset) *Reply {
	text := lastText
	if text == "" {
		text = fallbackResponse
	}
	return &Reply{Text: text, Created: ts.created}
}

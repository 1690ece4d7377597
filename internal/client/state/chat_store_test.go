package state

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardstack/cardstack-api/internal/client/transport"
)

func activeChatFixture(api *fakeAPI) *ChatStore {
	store := NewChatStore(api, nil)
	store.SetActiveChat(&transport.ChatWithMessages{
		Chat: transport.Chat{ID: "chat-1", Title: "Study plan"},
		Messages: []transport.Message{
			{ID: "m1", ChatID: "chat-1", Role: "user", Content: "hello"},
			{ID: "m2", ChatID: "chat-1", Role: "assistant", Content: "hi there"},
		},
	})
	return store
}

func TestSendMessageNonActiveChatReturnsFalse(t *testing.T) {
	api := newFakeAPI()
	store := activeChatFixture(api)
	before := store.ActiveChat()

	ok := store.SendMessage(context.Background(), "other-chat", "hello?")

	assert.False(t, ok)
	assert.Equal(t, before, store.ActiveChat())
	assert.Zero(t, api.calls["SendMessage"])
}

func TestSendMessageNoActiveChatReturnsFalse(t *testing.T) {
	api := newFakeAPI()
	store := NewChatStore(api, nil)

	ok := store.SendMessage(context.Background(), "chat-1", "hello?")

	assert.False(t, ok)
	assert.Zero(t, api.calls["SendMessage"])
}

func TestSendMessagePlaceholdersVisibleDuringRequest(t *testing.T) {
	api := newFakeAPI()
	store := activeChatFixture(api)

	var midFlight *transport.ChatWithMessages
	api.sendMessage = func(ctx context.Context, chatID, content string) (*transport.SendMessageResult, error) {
		midFlight = store.ActiveChat()
		return nil, errServer
	}

	store.SendMessage(context.Background(), "chat-1", "what next?")

	require.NotNil(t, midFlight)
	require.Len(t, midFlight.Messages, 4)
	userPlaceholder := midFlight.Messages[2]
	assistantPlaceholder := midFlight.Messages[3]
	assert.Equal(t, "user", userPlaceholder.Role)
	assert.Equal(t, "what next?", userPlaceholder.Content)
	assert.Equal(t, "assistant", assistantPlaceholder.Role)
	assert.True(t, strings.HasPrefix(assistantPlaceholder.ID, "loading-"))
}

func TestSendMessageSuccessReplacesPlaceholders(t *testing.T) {
	api := newFakeAPI()
	store := activeChatFixture(api)

	ok := store.SendMessage(context.Background(), "chat-1", "what next?")

	require.True(t, ok)
	chat := store.ActiveChat()
	require.Len(t, chat.Messages, 4)
	assert.Equal(t, "server-user", chat.Messages[2].ID)
	assert.Equal(t, "server-assistant", chat.Messages[3].ID)
	for _, m := range chat.Messages {
		assert.False(t, IsTempID(m.ID), "placeholder %q survived the exchange", m.ID)
	}
}

func TestSendMessageFailureRestoresChat(t *testing.T) {
	api := newFakeAPI()
	store := activeChatFixture(api)
	before := store.ActiveChat()

	api.sendMessage = func(ctx context.Context, chatID, content string) (*transport.SendMessageResult, error) {
		return nil, errServer
	}
	ok := store.SendMessage(context.Background(), "chat-1", "what next?")

	assert.False(t, ok)
	assert.Equal(t, before, store.ActiveChat())
}

func TestSendMessageForwardsCreatedEntitiesToListener(t *testing.T) {
	api := newFakeAPI()
	entities := NewEntityStore(api)
	entities.DeckCreated(transport.Deck{ID: "d-existing", Name: "Spanish", CardCount: 2})

	store := NewChatStore(api, entities)
	store.SetActiveChat(&transport.ChatWithMessages{Chat: transport.Chat{ID: "chat-1"}})

	api.sendMessage = func(ctx context.Context, chatID, content string) (*transport.SendMessageResult, error) {
		return &transport.SendMessageResult{
			UserMessage:      transport.Message{ID: "server-user", Role: "user", Content: content},
			AssistantMessage: transport.Message{ID: "server-assistant", Role: "assistant", Content: "made it"},
			Created: &transport.CreatedEntities{
				Decks: []transport.Deck{{ID: "d-new", Name: "French"}},
				Cards: []transport.Card{
					{ID: "card-1", DeckID: "d-existing"},
					{ID: "card-2", DeckID: "d-existing"},
				},
			},
		}, nil
	}

	require.True(t, store.SendMessage(context.Background(), "chat-1", "make a french deck"))

	decks := entities.Decks()
	require.Len(t, decks, 2)
	assert.Equal(t, "d-new", decks[1].ID)
	// Assistant-created cards bump the owning deck's local count.
	assert.Equal(t, 4, decks[0].CardCount)
}

func TestOpenChatSetsActive(t *testing.T) {
	api := newFakeAPI()
	api.getChat = func(ctx context.Context, chatID string) (*transport.ChatWithMessages, error) {
		return &transport.ChatWithMessages{
			Chat:     transport.Chat{ID: chatID, Title: "History"},
			Messages: []transport.Message{{ID: "m1", Role: "user", Content: "hi"}},
		}, nil
	}
	store := NewChatStore(api, nil)

	require.NoError(t, store.OpenChat(context.Background(), "chat-9"))

	chat := store.ActiveChat()
	require.NotNil(t, chat)
	assert.Equal(t, "chat-9", chat.ID)
	require.Len(t, chat.Messages, 1)
}

func TestContainerResetClearsEverything(t *testing.T) {
	api := newFakeAPI()
	container := NewContainer(api)
	require.NoError(t, container.Entities.EnsureLoaded(context.Background()))
	container.Entities.DeckCreated(transport.Deck{ID: "d1"})
	container.Chats.SetActiveChat(&transport.ChatWithMessages{Chat: transport.Chat{ID: "chat-1"}})

	container.Reset()

	assert.Empty(t, container.Entities.Decks())
	assert.False(t, container.Entities.Loaded())
	assert.Nil(t, container.Chats.ActiveChat())
	assert.Empty(t, container.Chats.Chats())
}

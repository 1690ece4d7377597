package state

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/cardstack/cardstack-api/internal/client/transport"
)

const loadingIDPrefix = "loading-"

// EntityListener receives entities the assistant created during a chat
// exchange. The chat store never touches the entity store directly; the
// container wires the two together through this interface.
type EntityListener interface {
	DeckCreated(deck transport.Deck)
	CollectionCreated(collection transport.Collection)
	CardCreated(card transport.Card)
}

// ChatAPI is the server surface the chat store needs.
type ChatAPI interface {
	ListChats(ctx context.Context) ([]transport.Chat, error)
	GetChat(ctx context.Context, chatID string) (*transport.ChatWithMessages, error)
	SendMessage(ctx context.Context, chatID, content string) (*transport.SendMessageResult, error)
}

// ChatStore keeps the chat list and a single active chat. Sending a
// message shows both sides of the exchange immediately, with a loading
// placeholder standing in for the assistant's reply.
type ChatStore struct {
	api      ChatAPI
	listener EntityListener

	mu     sync.Mutex
	chats  []transport.Chat
	active *transport.ChatWithMessages

	subs   map[int]func()
	nextID int
}

// NewChatStore creates a chat store. The listener may be nil when no one
// cares about assistant-created entities.
func NewChatStore(api ChatAPI, listener EntityListener) *ChatStore {
	return &ChatStore{api: api, listener: listener, subs: make(map[int]func())}
}

// Subscribe registers a change callback and returns an unsubscribe
// function.
func (s *ChatStore) Subscribe(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *ChatStore) notify() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// Chats returns a copy of the chat list.
func (s *ChatStore) Chats() []transport.Chat {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]transport.Chat, len(s.chats))
	copy(out, s.chats)
	return out
}

// ActiveChat returns a deep copy of the active chat, or nil.
func (s *ChatStore) ActiveChat() *transport.ChatWithMessages {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyChat(s.active)
}

// LoadChats fetches the chat list from the server.
func (s *ChatStore) LoadChats(ctx context.Context) error {
	chats, err := s.api.ListChats(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.chats = chats
	s.mu.Unlock()
	s.notify()
	return nil
}

// OpenChat fetches a chat with its history and makes it the active chat.
func (s *ChatStore) OpenChat(ctx context.Context, chatID string) error {
	chat, err := s.api.GetChat(ctx, chatID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.active = chat
	s.mu.Unlock()
	s.notify()
	return nil
}

// SetActiveChat replaces the active chat directly.
func (s *ChatStore) SetActiveChat(chat *transport.ChatWithMessages) {
	s.mu.Lock()
	s.active = copyChat(chat)
	s.mu.Unlock()
	s.notify()
}

// SendMessage sends one message in the active chat. It returns false
// without mutating anything when chatID is not the active chat. The user
// message and an assistant loading placeholder appear immediately; on
// success both placeholders are replaced by the server's records and any
// assistant-created entities are forwarded to the listener. On failure
// the full prior chat is restored.
func (s *ChatStore) SendMessage(ctx context.Context, chatID, content string) bool {
	s.mu.Lock()
	if s.active == nil || s.active.ID != chatID {
		s.mu.Unlock()
		return false
	}

	snapshot := copyChat(s.active)

	userPlaceholderID := uuid.NewString()
	assistantPlaceholderID := loadingIDPrefix + uuid.NewString()
	s.active.Messages = append(s.active.Messages,
		transport.Message{ID: userPlaceholderID, ChatID: chatID, Role: "user", Content: content},
		transport.Message{ID: assistantPlaceholderID, ChatID: chatID, Role: "assistant"},
	)
	s.mu.Unlock()
	s.notify()

	result, err := s.api.SendMessage(ctx, chatID, content)
	if err != nil {
		s.mu.Lock()
		// The active chat may have changed while the request was in
		// flight; only restore if it is still the same chat.
		if s.active != nil && s.active.ID == chatID {
			s.active = snapshot
		}
		s.mu.Unlock()
		s.notify()
		return false
	}

	s.mu.Lock()
	if s.active != nil && s.active.ID == chatID {
		kept := s.active.Messages[:0]
		for _, m := range s.active.Messages {
			if m.ID != userPlaceholderID && m.ID != assistantPlaceholderID {
				kept = append(kept, m)
			}
		}
		s.active.Messages = append(kept, result.UserMessage, result.AssistantMessage)
	}
	s.mu.Unlock()
	s.notify()

	if s.listener != nil && result.Created != nil {
		for _, deck := range result.Created.Decks {
			s.listener.DeckCreated(deck)
		}
		for _, collection := range result.Created.Collections {
			s.listener.CollectionCreated(collection)
		}
		for _, card := range result.Created.Cards {
			s.listener.CardCreated(card)
		}
	}
	return true
}

// Reset clears all chat state.
func (s *ChatStore) Reset() {
	s.mu.Lock()
	s.chats = nil
	s.active = nil
	s.mu.Unlock()
	s.notify()
}

func copyChat(chat *transport.ChatWithMessages) *transport.ChatWithMessages {
	if chat == nil {
		return nil
	}
	out := *chat
	out.Messages = make([]transport.Message, len(chat.Messages))
	copy(out.Messages, chat.Messages)
	return &out
}

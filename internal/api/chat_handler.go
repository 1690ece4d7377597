package api

import (
	"net/http"

	"github.com/cardstack/cardstack-api/internal/api/shared"
	"github.com/cardstack/cardstack-api/internal/service"
)

// ChatHandler handles chat CRUD and the assistant message endpoint.
type ChatHandler struct {
	chatService service.ChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// List handles GET /api/chat.
func (h *ChatHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(w, r)
	if !ok {
		return
	}

	chats, err := h.chatService.ListChats(r.Context(), userID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, chats)
}

// Create handles POST /api/chat.
func (h *ChatHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(w, r)
	if !ok {
		return
	}

	var req CreateChatRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	chat, err := h.chatService.CreateChat(r.Context(), userID, req.Title)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, chat)
}

// Get handles GET /api/chat/{id}.
func (h *ChatHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(w, r)
	if !ok {
		return
	}
	chatID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	chat, err := h.chatService.GetChat(r.Context(), userID, chatID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, chat)
}

// Rename handles PUT /api/chat/{id}.
func (h *ChatHandler) Rename(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(w, r)
	if !ok {
		return
	}
	chatID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req RenameChatRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.chatService.RenameChat(r.Context(), userID, chatID, req.Title); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /api/chat/{id}.
func (h *ChatHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(w, r)
	if !ok {
		return
	}
	chatID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.chatService.DeleteChat(r.Context(), userID, chatID); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SendMessage handles POST /api/chat/{id}/messages. This is the only
// endpoint that drives the assistant's tool loop; the whole multi-step
// exchange happens within this one request.
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(w, r)
	if !ok {
		return
	}
	chatID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req SendMessageRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.chatService.SendMessage(r.Context(), userID, chatID, req.Content)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SendMessageResponse{
		UserMessage:      result.UserMessage,
		AssistantMessage: result.AssistantMessage,
		CreatedEntities:  result.Created,
	})
}

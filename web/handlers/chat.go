package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/solacehq/solace/internal/ai"
	"github.com/solacehq/solace/internal/engine"
	"github.com/solacehq/solace/internal/storage"
	"github.com/solacehq/solace/pkg/types"
)

// ChatHandlers serves the text-chat routes. Each posted message replays
// the stored history into a fresh model session, so conversations
// survive restarts without any in-process session state.
type ChatHandlers struct {
	store   storage.Store
	gateway ai.Gateway
	engine  *engine.Engine
}

// NewChatHandlers creates the chat route handlers.
func NewChatHandlers(store storage.Store, gateway ai.Gateway, eng *engine.Engine) *ChatHandlers {
	return &ChatHandlers{store: store, gateway: gateway, engine: eng}
}

// CreateConversation handles POST /api/conversations.
func (h *ChatHandlers) CreateConversation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title"`
	}
	if r.Body != nil {
		// An empty body is fine; the title is assigned from the first
		// message when absent.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	now := time.Now()
	conversation := &types.Conversation{
		ID:        uuid.NewString(),
		UserID:    UserID(r),
		Title:     req.Title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if conversation.Title == "" {
		conversation.Title = "New conversation"
	}
	if err := h.store.CreateConversation(r.Context(), conversation); err != nil {
		respondStorageError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, conversation)
}

// ListConversations handles GET /api/conversations.
func (h *ChatHandlers) ListConversations(w http.ResponseWriter, r *http.Request) {
	conversations, err := h.store.ListConversations(r.Context(), UserID(r), listOptions(r))
	if err != nil {
		respondStorageError(w, err)
		return
	}
	if conversations == nil {
		conversations = []*types.Conversation{}
	}
	respondJSON(w, http.StatusOK, conversations)
}

// GetConversation handles GET /api/conversations/{id} and returns the
// conversation together with its full message history.
func (h *ChatHandlers) GetConversation(w http.ResponseWriter, r *http.Request) {
	userID := UserID(r)
	id := r.PathValue("id")

	conversation, err := h.store.GetConversation(r.Context(), userID, id)
	if err != nil {
		respondStorageError(w, err)
		return
	}
	messages, err := h.store.ListMessages(r.Context(), userID, id)
	if err != nil {
		respondStorageError(w, err)
		return
	}
	if messages == nil {
		messages = []*types.Message{}
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"conversation": conversation,
		"messages":     messages,
	})
}

// DeleteConversation handles DELETE /api/conversations/{id}.
func (h *ChatHandlers) DeleteConversation(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteConversation(r.Context(), UserID(r), r.PathValue("id")); err != nil {
		respondStorageError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type postMessageRequest struct {
	Content string `json:"content"`
}

type postMessageResponse struct {
	UserMessage *types.Message      `json:"user_message"`
	Reply       *types.Message      `json:"reply"`
	Title       string              `json:"title,omitempty"`
	Analysis    *types.MoodAnalysis `json:"analysis,omitempty"`
}

// PostMessage handles POST /api/conversations/{id}/messages. The user
// turn is persisted before the model is called, so a failed generation
// never loses user input; the reply degrades to a fixed supportive line
// when the model is unavailable.
func (h *ChatHandlers) PostMessage(w http.ResponseWriter, r *http.Request) {
	userID := UserID(r)
	conversationID := r.PathValue("id")

	var req postMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "failed to parse request body", err)
		return
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		respondError(w, http.StatusBadRequest, "content is required", nil)
		return
	}

	conversation, err := h.store.GetConversation(r.Context(), userID, conversationID)
	if err != nil {
		respondStorageError(w, err)
		return
	}
	history, err := h.store.ListMessages(r.Context(), userID, conversationID)
	if err != nil {
		respondStorageError(w, err)
		return
	}

	userMessage := &types.Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		UserID:         userID,
		Role:           types.RoleUser,
		Content:        content,
		CreatedAt:      time.Now(),
	}
	if err := h.store.CreateMessage(r.Context(), userMessage); err != nil {
		respondStorageError(w, err)
		return
	}

	replyText := h.generateReply(r, history, content)

	reply := &types.Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		UserID:         userID,
		Role:           types.RoleAssistant,
		Content:        replyText,
		CreatedAt:      time.Now(),
	}
	if err := h.store.CreateMessage(r.Context(), reply); err != nil {
		respondStorageError(w, err)
		return
	}

	resp := postMessageResponse{UserMessage: userMessage, Reply: reply}

	// First exchange in the conversation: derive a title from the
	// opening message.
	if len(history) == 0 && conversation.Title == "New conversation" {
		title := h.gateway.GenerateTitle(r.Context(), content)
		if err := h.store.UpdateConversationTitle(r.Context(), userID, conversationID, title); err != nil {
			log.Printf("conversation %s: title not saved: %v", conversationID, err)
		} else {
			resp.Title = title
		}
	}

	analysis, err := h.engine.Classify(r.Context(), userID, types.SourceChat, userMessage.ID, content)
	if err != nil {
		log.Printf("conversation %s: classification not persisted: %v", conversationID, err)
	}
	resp.Analysis = analysis

	respondJSON(w, http.StatusCreated, resp)
}

func (h *ChatHandlers) generateReply(r *http.Request, history []*types.Message, content string) string {
	priorTurns := make([]types.Message, 0, len(history))
	for _, m := range history {
		priorTurns = append(priorTurns, *m)
	}

	chat, err := h.gateway.StartChat(r.Context(), priorTurns)
	if err != nil {
		if !errors.Is(err, ai.ErrUnavailable) {
			log.Printf("chat session start failed: %v", err)
		}
		return ai.ApologyReply
	}
	replyText, err := chat.Send(r.Context(), content)
	if err != nil {
		if !errors.Is(err, ai.ErrUnavailable) {
			log.Printf("chat reply failed: %v", err)
		}
		return ai.ApologyReply
	}
	return replyText
}

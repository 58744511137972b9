package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ferreirogomes/recupera/services"
)

// ChatHandler lida com as consultas conversacionais sobre os ativos.
type ChatHandler struct {
	Assistant *services.AssistantService
}

// NewChatHandler cria uma nova instância do handler de chat.
func NewChatHandler(assistant *services.AssistantService) *ChatHandler {
	return &ChatHandler{Assistant: assistant}
}

// ChatRequest é o corpo da consulta de chat.
type ChatRequest struct {
	Query           string  `json:"query"`
	ContextAssetIDs []int64 `json:"context_asset_ids"`
}

// Chat responde uma consulta livre, ancorada no contexto dos ativos.
// POST /api/chat
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	answer, contextCount, err := h.Assistant.Chat(req.Query, req.ContextAssetIDs)
	if err != nil {
		serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"answer":        answer,
		"context_count": contextCount,
	})
}

package handlers

import (
	"net/http"

	"github.com/ferreirogomes/recupera/services"
)

// EmailHandler lida com o rascunho e o envio simulado de emails de recuperação.
type EmailHandler struct {
	Assistant *services.AssistantService
}

// NewEmailHandler cria uma nova instância do handler de emails.
func NewEmailHandler(assistant *services.AssistantService) *EmailHandler {
	return &EmailHandler{Assistant: assistant}
}

// DraftEmail gera um rascunho de email de recuperação (não armazenado).
// POST /api/assets/{id}/draft_email
func (h *EmailHandler) DraftEmail(w http.ResponseWriter, r *http.Request) {
	id, ok := assetIDParam(w, r)
	if !ok {
		return
	}

	draft, err := h.Assistant.DraftEmail(id)
	if err != nil {
		serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"email": draft})
}

// SendEmail simula o envio do email de recuperação e registra no log.
// POST /api/assets/{id}/send_email?simulate_recovery=true
func (h *EmailHandler) SendEmail(w http.ResponseWriter, r *http.Request) {
	id, ok := assetIDParam(w, r)
	if !ok {
		return
	}

	simulateRecovery := r.URL.Query().Get("simulate_recovery") == "true"

	entry, status, err := h.Assistant.SendEmail(id, simulateRecovery)
	if err != nil {
		serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"sent":         true,
		"log":          entry,
		"asset_status": status,
	})
}

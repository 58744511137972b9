package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/ferreirogomes/recupera/services"

	"github.com/go-chi/chi/v5"
)

// writeJSON serializa a resposta com o status dado.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// serviceError mapeia os erros dos serviços para o status HTTP:
// ativo inexistente é erro do cliente, o resto é erro do servidor.
func serviceError(w http.ResponseWriter, err error) {
	if errors.Is(err, services.ErrAssetNotFound) {
		http.Error(w, "Ativo não encontrado", http.StatusNotFound)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

// assetIDParam extrai e valida o parâmetro de rota {id}.
func assetIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "ID do ativo inválido", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

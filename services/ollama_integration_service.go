package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// CompletionGateway é a capacidade de geração de texto consumida pelo
// assistente. Pode falhar; quem chama deve substituir por um fallback
// determinístico, nunca propagar a falha.
type CompletionGateway interface {
	Complete(prompt string) (string, error)
}

// OllamaIntegrationService é o cliente do serviço de completions do Ollama.
type OllamaIntegrationService struct {
	BaseURL    string
	Model      string
	HTTPClient *http.Client
}

// NewOllamaIntegrationService cria o cliente apontando para a instância local do Ollama.
func NewOllamaIntegrationService(baseURL, model string) *OllamaIntegrationService {
	return &OllamaIntegrationService{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Model:   model,
		HTTPClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type ollamaGenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
}

// Complete envia o prompt para POST /api/generate e retorna o texto gerado.
func (s *OllamaIntegrationService) Complete(prompt string) (string, error) {
	reqBody, err := json.Marshal(ollamaGenerateRequest{
		Model:  s.Model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("falha ao serializar requisição para o Ollama: %w", err)
	}

	resp, err := s.HTTPClient.Post(s.BaseURL+"/api/generate", "application/json", bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("falha ao chamar o Ollama: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("Ollama retornou status %d: %s", resp.StatusCode, string(body))
	}

	var out ollamaGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("falha ao decodificar resposta do Ollama: %w", err)
	}

	return strings.TrimSpace(out.Response), nil
}

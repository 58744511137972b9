package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/ferreirogomes/recupera/models"
	"github.com/ferreirogomes/recupera/storage"

	"go.uber.org/zap"
)

// EmailSink é o log ordenado de envios simulados (append + leitura integral).
type EmailSink interface {
	Append(entry map[string]interface{}) error
}

// EmailDraft é um rascunho de email de recuperação. Não é persistido.
type EmailDraft struct {
	Subject string  `json:"subject"`
	Body    string  `json:"body"`
	To      *string `json:"to"`
}

// AssistantService monta o contexto textual dos ativos e responde consultas e
// rascunhos de email via o serviço de completions, sempre com fallback
// determinístico local — uma falha do serviço externo nunca vira erro de requisição.
type AssistantService struct {
	Store     Store
	Gateway   CompletionGateway
	Lifecycle *LifecycleService
	EmailLog  EmailSink
	Logger    *zap.SugaredLogger
}

// NewAssistantService cria uma nova instância do assistente.
func NewAssistantService(store Store, gateway CompletionGateway, lifecycle *LifecycleService, emailLog EmailSink, logger *zap.SugaredLogger) *AssistantService {
	return &AssistantService{
		Store:     store,
		Gateway:   gateway,
		Lifecycle: lifecycle,
		EmailLog:  emailLog,
		Logger:    logger,
	}
}

// BuildContext serializa os ativos em um bloco de texto compacto, um parágrafo
// por ativo. A ordem dos campos é posicional e estável; campos ausentes são
// renderizados como "unknown", nunca omitidos.
func (s *AssistantService) BuildContext(assets []models.Asset) string {
	parts := make([]string, 0, len(assets))
	for _, a := range assets {
		lines := []string{
			"asset_id: " + a.AssetID,
			"name: " + strOrUnknown(a.Name),
			"owner: " + strOrUnknown(a.Owner),
			"owner_email: " + strOrUnknown(a.OwnerEmail),
			"last_seen: " + timeOrUnknown(a.LastSeen),
			"status: " + a.Status,
			"value_estimate: " + floatOrUnknown(a.ValueEstimate),
			"disposition: " + strOrUnknown(a.DispositionSuggestion),
		}
		parts = append(parts, strings.Join(lines, "\n"))
	}
	return strings.Join(parts, "\n---\n")
}

// RetrieveAssets seleciona os ativos que servirão de contexto. IDs explícitos
// são buscados diretamente, pulando os que não resolvem. Sem IDs, faz busca
// por substring (case-insensitive) da consulta em owner, asset_id e name;
// sem nenhum resultado, cai para os 5 ativos mais recentes — a resposta do
// chat nunca falha só por busca vazia.
func (s *AssistantService) RetrieveAssets(query string, ids []int64) ([]models.Asset, error) {
	if len(ids) > 0 {
		targets := []models.Asset{}
		for _, id := range ids {
			asset, found, err := s.Store.GetAsset(id)
			if err != nil {
				return nil, err
			}
			if found {
				targets = append(targets, asset)
			}
		}
		return targets, nil
	}

	candidates, err := s.Store.QueryAssets(storage.QueryFilter{Limit: 200})
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	targets := []models.Asset{}
	for _, a := range candidates {
		if matchesQuery(a, q) {
			targets = append(targets, a)
		}
	}
	if len(targets) > 0 {
		return targets, nil
	}

	return s.Store.RecentAssets(5)
}

func matchesQuery(a models.Asset, q string) bool {
	if a.Owner != nil && strings.Contains(strings.ToLower(*a.Owner), q) {
		return true
	}
	if strings.Contains(strings.ToLower(a.AssetID), q) {
		return true
	}
	if a.Name != nil && strings.Contains(strings.ToLower(*a.Name), q) {
		return true
	}
	return false
}

// Chat responde uma consulta livre usando o contexto dos ativos selecionados.
// Retorna a resposta e a quantidade de ativos no contexto.
func (s *AssistantService) Chat(query string, ids []int64) (string, int, error) {
	targets, err := s.RetrieveAssets(query, ids)
	if err != nil {
		return "", 0, err
	}

	context := s.BuildContext(targets)
	prompt := "You are an assistant that helps with IT asset recovery. " +
		"Use only the provided context below to answer the user's question.\n\n" +
		"Context:\n" + context + "\n\nQuestion: " + query

	answer, err := s.Gateway.Complete(prompt)
	if err != nil {
		s.Logger.Warnw("serviço de completions indisponível, usando fallback heurístico", "erro", err)
		answer = fallbackChatAnswer(query, context)
	}
	return answer, len(targets), nil
}

// fallbackChatAnswer responde sem o modelo, varrendo o contexto pelos
// marcadores de owner / last_seen e sugerindo contato manual nos demais casos.
func fallbackChatAnswer(query, context string) string {
	lowered := strings.ToLower(query)
	switch {
	case strings.Contains(lowered, "owner"):
		return "Owner: Based on the context, the owner appears to be " + extractMarker(context, "owner:")
	case strings.Contains(lowered, "last seen") || strings.Contains(lowered, "last-seen"):
		return "Last seen: " + extractMarker(context, "last_seen:")
	case strings.Contains(lowered, "disposition"):
		return "Suggested disposition: Attempt outreach; if no response in 7 days, escalate to IT asset disposal."
	default:
		return "I couldn't find a direct answer in the context. Based on the available asset data, consider outreach and manual verification."
	}
}

// extractMarker retorna o valor na mesma linha da última ocorrência do marcador.
func extractMarker(context, marker string) string {
	idx := strings.LastIndex(context, marker)
	if idx < 0 {
		return "unknown"
	}
	rest := context[idx+len(marker):]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[:nl]
	}
	value := strings.TrimSpace(rest)
	if value == "" {
		return "unknown"
	}
	return value
}

// DraftEmail monta um rascunho de email de recuperação para o ativo.
// O corpo vem do serviço de completions; na falha, usa o template fixo.
func (s *AssistantService) DraftEmail(id int64) (EmailDraft, error) {
	asset, found, err := s.Store.GetAsset(id)
	if err != nil {
		return EmailDraft{}, err
	}
	if !found {
		return EmailDraft{}, ErrAssetNotFound
	}

	displayName := asset.AssetID
	if asset.Name != nil {
		displayName = *asset.Name
	}
	subject := "Regarding your company asset: " + displayName

	prompt := fmt.Sprintf(
		"Draft a polite, concise recovery email to %s (%s) about asset %s (%s) last seen on %s. "+
			"Include a suggested next step and a friendly closing.",
		strOr(asset.Owner, "the owner"), strOr(asset.OwnerEmail, "unknown email"),
		asset.AssetID, strOr(asset.Name, ""), timeOrUnknown(asset.LastSeen),
	)

	body, err := s.Gateway.Complete(prompt)
	if err != nil {
		s.Logger.Warnw("serviço de completions indisponível, usando template de email", "erro", err)
		body = fallbackEmailBody(asset)
	}

	return EmailDraft{Subject: subject, Body: body, To: asset.OwnerEmail}, nil
}

func fallbackEmailBody(asset models.Asset) string {
	device := asset.AssetID
	if asset.Name != nil {
		device = *asset.Name
	}
	return fmt.Sprintf(
		"Hi %s,\n\n"+
			"Our records show that the device %s was last seen at %s. "+
			"If you still have it, please confirm. If not, please reply with any info you have "+
			"about its whereabouts so we can take the next steps to recover it.\n\n"+
			"Next step: reply to this email or visit the asset portal to confirm its status.\n\n"+
			"Thanks,\nAsset Recovery Team",
		strOr(asset.Owner, "there"), device, timeOr(asset.LastSeen, "an unknown time"),
	)
}

// SendEmail simula o envio do email de recuperação: gera o rascunho, grava a
// entrada no log de envios e, opcionalmente, simula a recuperação do ativo.
// Retorna a entrada de log e o status final do ativo.
func (s *AssistantService) SendEmail(id int64, simulateRecovery bool) (map[string]interface{}, string, error) {
	asset, found, err := s.Store.GetAsset(id)
	if err != nil {
		return nil, "", err
	}
	if !found {
		return nil, "", ErrAssetNotFound
	}

	draft, err := s.DraftEmail(id)
	if err != nil {
		return nil, "", err
	}

	entry := map[string]interface{}{
		"asset_id":    asset.AssetID,
		"asset_db_id": asset.ID,
		"to":          draft.To,
		"subject":     draft.Subject,
		"body":        draft.Body,
		"sent_at":     time.Now().UTC().Format(time.RFC3339),
		"simulated":   true,
	}

	status := asset.Status
	if simulateRecovery {
		recovered, err := s.Lifecycle.MarkRecovered(id)
		if err != nil {
			return nil, "", err
		}
		status = recovered.Status
		entry["simulated_recovery"] = true
	}

	if err := s.EmailLog.Append(entry); err != nil {
		return nil, "", err
	}
	if simulateRecovery {
		note := map[string]interface{}{
			"note": fmt.Sprintf("Simulated recovery for asset %s at %s",
				asset.AssetID, time.Now().UTC().Format(time.RFC3339)),
		}
		if err := s.EmailLog.Append(note); err != nil {
			return nil, "", err
		}
	}

	s.Logger.Infow("email de recuperação simulado", "asset_id", asset.AssetID, "to", draft.To)
	return entry, status, nil
}

func strOrUnknown(v *string) string {
	return strOr(v, "unknown")
}

func strOr(v *string, fallback string) string {
	if v == nil || *v == "" {
		return fallback
	}
	return *v
}

func timeOrUnknown(v *time.Time) string {
	return timeOr(v, "unknown")
}

func timeOr(v *time.Time, fallback string) string {
	if v == nil {
		return fallback
	}
	return v.UTC().Format(time.RFC3339)
}

func floatOrUnknown(v *float64) string {
	if v == nil {
		return "unknown"
	}
	return fmt.Sprintf("%.2f", *v)
}

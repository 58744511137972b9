package services

import (
	"strings"
	"time"

	"github.com/ferreirogomes/recupera/models"

	"go.uber.org/zap"
)

// Layouts aceitos para o campo last_seen em uploads, do mais ao menos específico.
var lastSeenLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// IngestionService normaliza linhas brutas de upload em massa e as persiste
// como um lote atômico.
type IngestionService struct {
	Store  Store
	Logger *zap.SugaredLogger
}

// NewIngestionService cria uma nova instância do serviço de ingestão.
func NewIngestionService(store Store, logger *zap.SugaredLogger) *IngestionService {
	return &IngestionService{Store: store, Logger: logger}
}

// NormalizeRows converte linhas chave-valor brutas em cargas de criação válidas.
// Valores vazios ou só de espaços viram ausentes; um last_seen não parseável
// segue como texto bruto para nova tentativa no BulkCreate. Linhas são
// independentes e a ordem de entrada é preservada.
func (s *IngestionService) NormalizeRows(rows []map[string]string) []models.AssetPayload {
	payloads := make([]models.AssetPayload, 0, len(rows))
	for _, row := range rows {
		var p models.AssetPayload
		for key, value := range row {
			v := strings.TrimSpace(value)
			if v == "" {
				continue // Células vazias são ausentes, nunca ""
			}
			switch key {
			case "asset_id":
				p.AssetID = &v
			case "name":
				p.Name = &v
			case "category":
				p.Category = &v
			case "owner":
				p.Owner = &v
			case "owner_email":
				p.OwnerEmail = &v
			case "location":
				p.Location = &v
			case "notes":
				p.Notes = &v
			case "last_seen":
				if ts, ok := parseLastSeen(v); ok {
					p.LastSeen = ts
				} else {
					p.LastSeenRaw = v
				}
			default:
				// Colunas desconhecidas são ignoradas
			}
		}
		payloads = append(payloads, p)
	}
	return payloads
}

// BulkCreate persiste o lote inteiro em uma única transação. Antes de gravar,
// tenta mais uma vez converter last_seen bruto; se falhar de novo, o campo
// fica ausente — uma linha nunca é rejeitada por um campo malformado.
func (s *IngestionService) BulkCreate(payloads []models.AssetPayload) ([]models.Asset, error) {
	for i := range payloads {
		if payloads[i].LastSeen == nil && payloads[i].LastSeenRaw != "" {
			if ts, ok := parseLastSeen(payloads[i].LastSeenRaw); ok {
				payloads[i].LastSeen = ts
			} else {
				s.Logger.Warnw("last_seen não parseável, armazenando como ausente",
					"valor", payloads[i].LastSeenRaw)
			}
			payloads[i].LastSeenRaw = ""
		}
	}

	created, err := s.Store.InsertAssets(payloads)
	if err != nil {
		return nil, err
	}
	s.Logger.Infow("lote de ativos criado", "quantidade", len(created))
	return created, nil
}

func parseLastSeen(value string) (*time.Time, bool) {
	for _, layout := range lastSeenLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			ts = ts.UTC()
			return &ts, true
		}
	}
	return nil, false
}

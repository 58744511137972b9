package services

import (
	"errors"
	"time"

	"github.com/ferreirogomes/recupera/models"
)

// ErrAssetNotFound indica que o identificador não resolve para nenhum ativo.
var ErrAssetNotFound = errors.New("ativo não encontrado")

// LifecycleService aplica as transições de status e as escritas de avaliação.
// Nenhuma transição valida o status anterior: qualquer movimento é legal
// (inclusive Recovered → Missing), como no comportamento de origem.
type LifecycleService struct {
	Store Store
}

// NewLifecycleService cria uma nova instância do gerenciador de ciclo de vida.
func NewLifecycleService(store Store) *LifecycleService {
	return &LifecycleService{Store: store}
}

// FlagMissing marca o ativo como Missing, independente do status anterior.
func (s *LifecycleService) FlagMissing(id int64) (models.Asset, error) {
	return s.setStatus(id, models.StatusMissing)
}

// MarkRecovered marca o ativo como Recovered, independente do status anterior.
func (s *LifecycleService) MarkRecovered(id int64) (models.Asset, error) {
	return s.setStatus(id, models.StatusRecovered)
}

func (s *LifecycleService) setStatus(id int64, status string) (models.Asset, error) {
	asset, found, err := s.Store.GetAsset(id)
	if err != nil {
		return models.Asset{}, err
	}
	if !found {
		return models.Asset{}, ErrAssetNotFound
	}

	asset.Status = status
	asset.UpdatedAt = time.Now().UTC()
	return s.Store.UpdateAsset(asset)
}

// ApplyValuation grava a estimativa de valor e a sugestão de destinação,
// sem alterar o status.
func (s *LifecycleService) ApplyValuation(id int64, value float64, disposition string) (models.Asset, error) {
	asset, found, err := s.Store.GetAsset(id)
	if err != nil {
		return models.Asset{}, err
	}
	if !found {
		return models.Asset{}, ErrAssetNotFound
	}

	asset.ValueEstimate = &value
	asset.DispositionSuggestion = &disposition
	asset.UpdatedAt = time.Now().UTC()
	return s.Store.UpdateAsset(asset)
}

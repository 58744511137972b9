package services

import (
	"github.com/ferreirogomes/recupera/models"
	"github.com/ferreirogomes/recupera/storage"
)

// Store é a capacidade de persistência consumida pelos serviços.
// storage.DB é a implementação de produção; os testes usam mocks.
type Store interface {
	InsertAsset(p models.AssetPayload) (models.Asset, error)
	InsertAssets(payloads []models.AssetPayload) ([]models.Asset, error)
	GetAsset(id int64) (models.Asset, bool, error)
	UpdateAsset(asset models.Asset) (models.Asset, error)
	QueryAssets(f storage.QueryFilter) ([]models.Asset, error)
	RecentAssets(limit int) ([]models.Asset, error)
}

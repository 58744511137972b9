package services_test

import (
	"time"

	"github.com/ferreirogomes/recupera/models"
	"github.com/ferreirogomes/recupera/storage"

	"github.com/stretchr/testify/mock"
)

// MockStore é uma implementação mock de services.Store para testes de unidade
type MockStore struct {
	mock.Mock
}

func (m *MockStore) InsertAsset(p models.AssetPayload) (models.Asset, error) {
	args := m.Called(p)
	return args.Get(0).(models.Asset), args.Error(1)
}

func (m *MockStore) InsertAssets(payloads []models.AssetPayload) ([]models.Asset, error) {
	args := m.Called(payloads)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Asset), args.Error(1)
}

func (m *MockStore) GetAsset(id int64) (models.Asset, bool, error) {
	args := m.Called(id)
	return args.Get(0).(models.Asset), args.Bool(1), args.Error(2)
}

// UpdateAsset ecoa o ativo recebido quando não há erro, como o banco real faz.
func (m *MockStore) UpdateAsset(asset models.Asset) (models.Asset, error) {
	args := m.Called(asset)
	if args.Error(1) != nil {
		return models.Asset{}, args.Error(1)
	}
	return asset, nil
}

func (m *MockStore) QueryAssets(f storage.QueryFilter) ([]models.Asset, error) {
	args := m.Called(f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Asset), args.Error(1)
}

func (m *MockStore) RecentAssets(limit int) ([]models.Asset, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Asset), args.Error(1)
}

// MockGateway é uma implementação mock de services.CompletionGateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Complete(prompt string) (string, error) {
	args := m.Called(prompt)
	return args.String(0), args.Error(1)
}

// MockEmailSink captura as entradas gravadas no log de emails
type MockEmailSink struct {
	mock.Mock
	Entries []map[string]interface{}
}

func (m *MockEmailSink) Append(entry map[string]interface{}) error {
	args := m.Called(entry)
	m.Entries = append(m.Entries, entry)
	return args.Error(0)
}

func strPtr(s string) *string        { return &s }
func floatPtr(f float64) *float64    { return &f }
func timePtr(t time.Time) *time.Time { return &t }

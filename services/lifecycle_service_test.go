package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/ferreirogomes/recupera/models"
	"github.com/ferreirogomes/recupera/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// TestFlagMissingIdempotent verifica que reaplicar a transição produz o mesmo estado
func TestFlagMissingIdempotent(t *testing.T) {
	store := new(MockStore)
	lifecycle := services.NewLifecycleService(store)

	asset := models.Asset{ID: 1, AssetID: "a-1", Status: models.StatusActive}
	var updates []models.Asset
	store.On("GetAsset", int64(1)).Return(asset, true, nil)
	store.On("UpdateAsset", mock.AnythingOfType("models.Asset")).
		Return(models.Asset{}, nil).
		Run(func(args mock.Arguments) {
			updates = append(updates, args.Get(0).(models.Asset))
		})

	_, err := lifecycle.FlagMissing(1)
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	_, err = lifecycle.FlagMissing(1)
	require.NoError(t, err)

	require.Len(t, updates, 2)
	assert.Equal(t, models.StatusMissing, updates[0].Status)
	assert.Equal(t, models.StatusMissing, updates[1].Status)
	assert.True(t, updates[1].UpdatedAt.After(updates[0].UpdatedAt),
		"updated_at deve avançar na reaplicação")
}

// TestMarkRecoveredFromAnyStatus verifica que qualquer transição é legal,
// inclusive Recovered → Missing
func TestMarkRecoveredFromAnyStatus(t *testing.T) {
	store := new(MockStore)
	lifecycle := services.NewLifecycleService(store)

	var updated models.Asset
	store.On("UpdateAsset", mock.AnythingOfType("models.Asset")).
		Return(models.Asset{}, nil).
		Run(func(args mock.Arguments) { updated = args.Get(0).(models.Asset) })

	store.On("GetAsset", int64(2)).Return(models.Asset{ID: 2, Status: models.StatusMissing}, true, nil).Once()
	_, err := lifecycle.MarkRecovered(2)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRecovered, updated.Status)

	store.On("GetAsset", int64(2)).Return(models.Asset{ID: 2, Status: models.StatusRecovered}, true, nil).Once()
	_, err = lifecycle.FlagMissing(2)
	require.NoError(t, err)
	assert.Equal(t, models.StatusMissing, updated.Status)
}

// TestApplyValuationKeepsStatus verifica que a escrita de avaliação não toca o status
func TestApplyValuationKeepsStatus(t *testing.T) {
	store := new(MockStore)
	lifecycle := services.NewLifecycleService(store)

	asset := models.Asset{ID: 3, Status: models.StatusMissing, CreatedAt: time.Now().UTC().Add(-time.Hour)}
	store.On("GetAsset", int64(3)).Return(asset, true, nil)

	var updated models.Asset
	store.On("UpdateAsset", mock.AnythingOfType("models.Asset")).
		Return(models.Asset{}, nil).
		Run(func(args mock.Arguments) { updated = args.Get(0).(models.Asset) })

	_, err := lifecycle.ApplyValuation(3, 420.50, services.DispositionRepair)

	require.NoError(t, err)
	assert.Equal(t, models.StatusMissing, updated.Status)
	require.NotNil(t, updated.ValueEstimate)
	assert.Equal(t, 420.50, *updated.ValueEstimate)
	require.NotNil(t, updated.DispositionSuggestion)
	assert.Equal(t, services.DispositionRepair, *updated.DispositionSuggestion)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))
}

// TestTransitionsNotFound verifica o erro para identificadores que não resolvem
func TestTransitionsNotFound(t *testing.T) {
	store := new(MockStore)
	lifecycle := services.NewLifecycleService(store)
	store.On("GetAsset", int64(404)).Return(models.Asset{}, false, nil)

	_, err := lifecycle.FlagMissing(404)
	assert.ErrorIs(t, err, services.ErrAssetNotFound)

	_, err = lifecycle.MarkRecovered(404)
	assert.ErrorIs(t, err, services.ErrAssetNotFound)

	_, err = lifecycle.ApplyValuation(404, 100, services.DispositionRepair)
	assert.ErrorIs(t, err, services.ErrAssetNotFound)
}

// TestTransitionStoreError verifica que falhas do banco propagam sem tradução
func TestTransitionStoreError(t *testing.T) {
	store := new(MockStore)
	lifecycle := services.NewLifecycleService(store)
	dbErr := errors.New("conexão perdida")
	store.On("GetAsset", int64(5)).Return(models.Asset{}, false, dbErr)

	_, err := lifecycle.FlagMissing(5)
	assert.ErrorIs(t, err, dbErr)
}

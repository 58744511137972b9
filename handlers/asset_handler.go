package handlers

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/ferreirogomes/recupera/models"
	"github.com/ferreirogomes/recupera/services"
	"github.com/ferreirogomes/recupera/storage"
)

// AssetHandler lida com requisições HTTP relacionadas a ativos.
type AssetHandler struct {
	Ingestion *services.IngestionService
	Lifecycle *services.LifecycleService
	Valuation *services.ValuationService
	Store     services.Store
}

// NewAssetHandler cria uma nova instância do handler de ativos.
func NewAssetHandler(ingestion *services.IngestionService, lifecycle *services.LifecycleService, valuation *services.ValuationService, store services.Store) *AssetHandler {
	return &AssetHandler{
		Ingestion: ingestion,
		Lifecycle: lifecycle,
		Valuation: valuation,
		Store:     store,
	}
}

// CreateAsset cria um único ativo.
// POST /api/assets
func (h *AssetHandler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	var payload models.AssetPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	asset, err := h.Store.InsertAsset(payload)
	if err != nil {
		serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, asset)
}

// BulkUpload cria ativos em massa a partir de um arquivo CSV.
// POST /api/assets/bulk_upload
func (h *AssetHandler) BulkUpload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Arquivo de upload ausente", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".csv") {
		http.Error(w, "Apenas arquivos CSV são suportados", http.StatusBadRequest)
		return
	}

	rows, err := readCSVRows(file)
	if err != nil {
		http.Error(w, "Arquivo CSV malformado: "+err.Error(), http.StatusBadRequest)
		return
	}

	payloads := h.Ingestion.NormalizeRows(rows)
	created, err := h.Ingestion.BulkCreate(payloads)
	if err != nil {
		serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"created": len(created)})
}

// readCSVRows lê o CSV guiado pelo cabeçalho, uma linha por mapa coluna→valor.
// Colunas desconhecidas seguem no mapa e são ignoradas pela normalização.
func readCSVRows(r io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, err
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	rows := []map[string]string{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ListAssets lista ativos com filtros, busca e paginação.
// GET /api/assets
func (h *AssetHandler) ListAssets(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := 100
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 1000 {
			http.Error(w, "limit deve estar entre 1 e 1000", http.StatusBadRequest)
			return
		}
		limit = n
	}
	offset := 0
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			http.Error(w, "offset deve ser >= 0", http.StatusBadRequest)
			return
		}
		offset = n
	}

	assets, err := h.Store.QueryAssets(storage.QueryFilter{
		Status:  q.Get("status"),
		Owner:   q.Get("owner"),
		AssetID: q.Get("asset_id"),
		Search:  q.Get("search"),
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, assets)
}

// FlagMissing marca um ativo como Missing.
// POST /api/assets/{id}/flag_missing
func (h *AssetHandler) FlagMissing(w http.ResponseWriter, r *http.Request) {
	id, ok := assetIDParam(w, r)
	if !ok {
		return
	}

	asset, err := h.Lifecycle.FlagMissing(id)
	if err != nil {
		serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"id": asset.ID, "status": asset.Status})
}

// MarkRecovered marca um ativo como Recovered.
// POST /api/assets/{id}/mark_recovered
func (h *AssetHandler) MarkRecovered(w http.ResponseWriter, r *http.Request) {
	id, ok := assetIDParam(w, r)
	if !ok {
		return
	}

	asset, err := h.Lifecycle.MarkRecovered(id)
	if err != nil {
		serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"id": asset.ID, "status": asset.Status})
}

// EstimateValue calcula e persiste a avaliação de valor de um ativo.
// POST /api/assets/{id}/estimate_value
func (h *AssetHandler) EstimateValue(w http.ResponseWriter, r *http.Request) {
	id, ok := assetIDParam(w, r)
	if !ok {
		return
	}

	result, err := h.Valuation.EstimateValue(id)
	if err != nil {
		serviceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

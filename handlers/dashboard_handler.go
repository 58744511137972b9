package handlers

import (
	"net/http"

	"github.com/ferreirogomes/recupera/models"
	"github.com/ferreirogomes/recupera/services"
	"github.com/ferreirogomes/recupera/storage"
)

// DashboardHandler produz os KPIs e os gráficos do painel.
type DashboardHandler struct {
	Store services.Store
}

// NewDashboardHandler cria uma nova instância do handler do painel.
func NewDashboardHandler(store services.Store) *DashboardHandler {
	return &DashboardHandler{Store: store}
}

// Dashboard retorna totais por status e o histograma de faixas de valor.
// GET /api/dashboard
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	assets, err := h.Store.QueryAssets(storage.QueryFilter{Limit: 10000})
	if err != nil {
		serviceError(w, err)
		return
	}

	missing, recovered := 0, 0
	statusCounts := map[string]int{}
	buckets := map[string]int{"<100": 0, "100-499": 0, "500-999": 0, "1000+": 0, "unknown": 0}

	for _, a := range assets {
		statusCounts[a.Status]++
		switch a.Status {
		case models.StatusMissing:
			missing++
		case models.StatusRecovered:
			recovered++
		}
		buckets[valueBucket(a.ValueEstimate)]++
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"kpis": map[string]int{
			"total_assets": len(assets),
			"missing":      missing,
			"recovered":    recovered,
		},
		"charts": map[string]interface{}{
			"status_breakdown": statusCounts,
			"value_buckets":    buckets,
		},
	})
}

// valueBucket classifica a estimativa de valor nas faixas fixas do painel.
// Estimativa ausente cai sempre em "unknown".
func valueBucket(v *float64) string {
	switch {
	case v == nil:
		return "unknown"
	case *v < 100:
		return "<100"
	case *v < 500:
		return "100-499"
	case *v < 1000:
		return "500-999"
	default:
		return "1000+"
	}
}

package services

import (
	"math"
	"math/rand"
	"strings"
	"time"
)

// Valores base por categoria; categorias desconhecidas usam o padrão.
var categoryBaseValues = map[string]float64{
	"laptop":  1200,
	"phone":   700,
	"monitor": 200,
	"printer": 150,
}

const defaultBaseValue = 300

// Sugestões de destinação conforme as faixas de valor.
const (
	DispositionRecycle = "Recycle"
	DispositionRepair  = "Repair/Refurbish"
	DispositionRecover = "Attempt Recovery for Reuse/Sale"
)

// Estimate é o resultado de uma avaliação de valor.
type Estimate struct {
	RuleBased   float64 `json:"rule_based"`
	MLStub      float64 `json:"ml_stub"`
	Final       float64 `json:"final"`
	Disposition string  `json:"disposition"`
}

// ValuationService calcula o valor estimado e a destinação sugerida de um ativo.
// Jitter é a fonte de aleatoriedade do ajuste estocástico, isolada para que os
// testes possam fixar o sorteio.
type ValuationService struct {
	Store     Store
	Lifecycle *LifecycleService
	Jitter    func() float64 // Sorteio uniforme em [-0.15, 0.15]
}

// NewValuationService cria o motor de avaliação com a fonte de aleatoriedade padrão.
func NewValuationService(store Store, lifecycle *LifecycleService) *ValuationService {
	return &ValuationService{
		Store:     store,
		Lifecycle: lifecycle,
		Jitter: func() float64 {
			return -0.15 + rand.Float64()*0.30
		},
	}
}

// Compute aplica o algoritmo de avaliação a partir dos atributos do ativo:
// valor base por categoria, depreciação de 20% ao ano (piso em 20% do base)
// e um ajuste estocástico que simula um estimador secundário não confiável.
func (s *ValuationService) Compute(category *string, lastSeen *time.Time, now time.Time) Estimate {
	cat := ""
	if category != nil {
		cat = strings.ToLower(*category)
	}
	ruleBased, ok := categoryBaseValues[cat]
	if !ok {
		ruleBased = defaultBaseValue
	}

	if lastSeen != nil {
		years := now.Sub(*lastSeen).Hours() / 24 / 365.0
		if years < 0 {
			years = 0 // last_seen no futuro não valoriza o ativo
		}
		ruleBased = ruleBased * math.Max(0.2, 1-0.2*years)
	}

	mlStub := ruleBased * (1 + s.Jitter())
	final := round2((ruleBased + mlStub) / 2)

	var disposition string
	switch {
	case final < 100:
		disposition = DispositionRecycle
	case final < 500:
		disposition = DispositionRepair
	default:
		disposition = DispositionRecover
	}

	return Estimate{
		RuleBased:   round2(ruleBased),
		MLStub:      round2(mlStub),
		Final:       final,
		Disposition: disposition,
	}
}

// EstimateValue calcula a avaliação do ativo e a persiste via ApplyValuation.
func (s *ValuationService) EstimateValue(id int64) (Estimate, error) {
	asset, found, err := s.Store.GetAsset(id)
	if err != nil {
		return Estimate{}, err
	}
	if !found {
		return Estimate{}, ErrAssetNotFound
	}

	result := s.Compute(asset.Category, asset.LastSeen, time.Now().UTC())
	if _, err := s.Lifecycle.ApplyValuation(id, result.Final, result.Disposition); err != nil {
		return Estimate{}, err
	}
	return result, nil
}

// round2 arredonda para 2 casas decimais.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

package models

import "time"

// Status possíveis de um ativo no ciclo de recuperação.
const (
	StatusActive    = "Active"
	StatusMissing   = "Missing"
	StatusRecovered = "Recovered"
)

// Asset representa um item de hardware de TI rastreado pelo ciclo de recuperação.
type Asset struct {
	ID                    int64      `db:"id" json:"id"`
	AssetID               string     `db:"asset_id" json:"asset_id"` // Identificador externo único (UUID gerado se ausente)
	Name                  *string    `db:"name" json:"name"`
	Category              *string    `db:"category" json:"category"` // Ex: "laptop", "phone"
	Owner                 *string    `db:"owner" json:"owner"`
	OwnerEmail            *string    `db:"owner_email" json:"owner_email"`
	LastSeen              *time.Time `db:"last_seen" json:"last_seen"`
	Location              *string    `db:"location" json:"location"`
	Status                string     `db:"status" json:"status"` // Active / Missing / Recovered
	ValueEstimate         *float64   `db:"value_estimate" json:"value_estimate"`
	DispositionSuggestion *string    `db:"disposition_suggestion" json:"disposition_suggestion"`
	Notes                 *string    `db:"notes" json:"notes"`
	CreatedAt             time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt             time.Time  `db:"updated_at" json:"updated_at"`
}

// AssetPayload é a carga de criação de um ativo, antes da atribuição de ID pelo banco.
// LastSeenRaw carrega o texto original de last_seen quando o parse inicial falhou,
// permitindo uma nova tentativa na camada de ingestão.
type AssetPayload struct {
	AssetID     *string    `json:"asset_id"`
	Name        *string    `json:"name"`
	Category    *string    `json:"category"`
	Owner       *string    `json:"owner"`
	OwnerEmail  *string    `json:"owner_email"`
	LastSeen    *time.Time `json:"last_seen"`
	LastSeenRaw string     `json:"-"`
	Location    *string    `json:"location"`
	Notes       *string    `json:"notes"`
}

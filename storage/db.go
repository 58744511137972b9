package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ferreirogomes/recupera/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	migrate "github.com/rubenv/sql-migrate"
)

// DB representa a conexão com o banco de dados PostgreSQL.
type DB struct {
	*sqlx.DB
}

// QueryFilter são os filtros aceitos pela listagem de ativos.
// Campos vazios são ignorados. Limit <= 0 usa o padrão de 100.
type QueryFilter struct {
	Status  string // Igualdade exata (Active/Missing/Recovered)
	Owner   string // Substring, case-insensitive
	AssetID string // Igualdade exata do identificador externo
	Search  string // Substring em name, owner e location
	Limit   int
	Offset  int
}

// NewDB conecta-se ao PostgreSQL e executa as migrações.
func NewDB(dataSourceName string) (*DB, error) {
	db, err := sqlx.Connect("postgres", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("falha ao conectar ao banco de dados: %w", err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("falha ao pingar o banco de dados: %w", err)
	}

	if err := runMigrations(db.DB); err != nil {
		return nil, fmt.Errorf("falha ao executar migrações: %w", err)
	}

	return &DB{db}, nil
}

// runMigrations executa as migrações usando sql-migrate.
func runMigrations(db *sql.DB) error {
	migrations := &migrate.FileMigrationSource{
		Dir: "./storage/migrations",
	}

	n, err := migrate.Exec(db, "postgres", migrations, migrate.Up)
	if err != nil {
		return fmt.Errorf("erro ao aplicar migrações: %w", err)
	}
	if n > 0 {
		log.Printf("Aplicadas %d migrações ao banco de dados.", n)
	}
	return nil
}

const insertAssetQuery = `
	INSERT INTO assets (asset_id, name, category, owner, owner_email, last_seen,
	                    location, status, value_estimate, disposition_suggestion,
	                    notes, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	RETURNING id`

// InsertAsset persiste um novo ativo. Gera o asset_id quando ausente e
// atribui status Active e os timestamps de criação.
func (d *DB) InsertAsset(p models.AssetPayload) (models.Asset, error) {
	asset := assetFromPayload(p)
	err := d.QueryRow(insertAssetQuery,
		asset.AssetID, asset.Name, asset.Category, asset.Owner, asset.OwnerEmail,
		asset.LastSeen, asset.Location, asset.Status, asset.ValueEstimate,
		asset.DispositionSuggestion, asset.Notes, asset.CreatedAt, asset.UpdatedAt,
	).Scan(&asset.ID)
	if err != nil {
		return models.Asset{}, fmt.Errorf("falha ao inserir ativo: %w", err)
	}
	return asset, nil
}

// InsertAssets persiste um lote de ativos em uma única transação:
// ou o lote inteiro é gravado, ou nada é.
func (d *DB) InsertAssets(payloads []models.AssetPayload) ([]models.Asset, error) {
	tx, err := d.Beginx()
	if err != nil {
		return nil, fmt.Errorf("falha ao iniciar transação: %w", err)
	}
	defer tx.Rollback()

	created := make([]models.Asset, 0, len(payloads))
	for _, p := range payloads {
		asset := assetFromPayload(p)
		err := tx.QueryRow(insertAssetQuery,
			asset.AssetID, asset.Name, asset.Category, asset.Owner, asset.OwnerEmail,
			asset.LastSeen, asset.Location, asset.Status, asset.ValueEstimate,
			asset.DispositionSuggestion, asset.Notes, asset.CreatedAt, asset.UpdatedAt,
		).Scan(&asset.ID)
		if err != nil {
			return nil, fmt.Errorf("falha ao inserir ativo do lote: %w", err)
		}
		created = append(created, asset)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("falha ao confirmar transação do lote: %w", err)
	}
	return created, nil
}

// GetAsset busca um ativo pelo ID numérico do banco.
func (d *DB) GetAsset(id int64) (models.Asset, bool, error) {
	var asset models.Asset
	err := d.Get(&asset, `SELECT * FROM assets WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Asset{}, false, nil
	}
	if err != nil {
		return models.Asset{}, false, fmt.Errorf("falha ao buscar ativo: %w", err)
	}
	return asset, true, nil
}

// UpdateAsset grava os campos mutáveis de um ativo já existente.
func (d *DB) UpdateAsset(asset models.Asset) (models.Asset, error) {
	query := `
		UPDATE assets
		SET name = $1, category = $2, owner = $3, owner_email = $4, last_seen = $5,
		    location = $6, status = $7, value_estimate = $8,
		    disposition_suggestion = $9, notes = $10, updated_at = $11
		WHERE id = $12`
	_, err := d.Exec(query,
		asset.Name, asset.Category, asset.Owner, asset.OwnerEmail, asset.LastSeen,
		asset.Location, asset.Status, asset.ValueEstimate,
		asset.DispositionSuggestion, asset.Notes, asset.UpdatedAt, asset.ID,
	)
	if err != nil {
		return models.Asset{}, fmt.Errorf("falha ao atualizar ativo: %w", err)
	}
	return asset, nil
}

// QueryAssets lista ativos aplicando os filtros, em ordem de inserção.
func (d *DB) QueryAssets(f QueryFilter) ([]models.Asset, error) {
	var (
		conditions []string
		args       []interface{}
	)
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Status != "" {
		conditions = append(conditions, "status = "+arg(f.Status))
	}
	if f.Owner != "" {
		conditions = append(conditions, "owner ILIKE "+arg("%"+f.Owner+"%"))
	}
	if f.AssetID != "" {
		conditions = append(conditions, "asset_id = "+arg(f.AssetID))
	}
	if f.Search != "" {
		s := arg("%" + f.Search + "%")
		conditions = append(conditions, fmt.Sprintf("(name ILIKE %s OR owner ILIKE %s OR location ILIKE %s)", s, s, s))
	}

	query := `SELECT * FROM assets`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 100
	}
	query += " ORDER BY id" + " LIMIT " + arg(limit) + " OFFSET " + arg(f.Offset)

	assets := []models.Asset{}
	if err := d.Select(&assets, query, args...); err != nil {
		return nil, fmt.Errorf("falha ao listar ativos: %w", err)
	}
	return assets, nil
}

// RecentAssets retorna os últimos ativos criados, mais recentes primeiro.
func (d *DB) RecentAssets(limit int) ([]models.Asset, error) {
	assets := []models.Asset{}
	err := d.Select(&assets, `SELECT * FROM assets ORDER BY id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("falha ao buscar ativos recentes: %w", err)
	}
	return assets, nil
}

// assetFromPayload monta um Asset novo a partir da carga de criação.
func assetFromPayload(p models.AssetPayload) models.Asset {
	now := time.Now().UTC()
	assetID := ""
	if p.AssetID != nil {
		assetID = *p.AssetID
	}
	if assetID == "" {
		assetID = uuid.New().String()
	}
	return models.Asset{
		AssetID:    assetID,
		Name:       p.Name,
		Category:   p.Category,
		Owner:      p.Owner,
		OwnerEmail: p.OwnerEmail,
		LastSeen:   p.LastSeen,
		Location:   p.Location,
		Notes:      p.Notes,
		Status:     models.StatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

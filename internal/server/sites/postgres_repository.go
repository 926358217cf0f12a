package sites

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sitenexus/sitenexus/internal/common"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) (*PostgresRepository, error) {
	return &PostgresRepository{db: db}, nil
}

func marshalInventory(inventory []InventoryItem) ([]byte, error) {
	if inventory == nil {
		inventory = []InventoryItem{}
	}
	return json.Marshal(inventory)
}

func scanSite(row *sql.Row) (*Site, error) {
	site := &Site{}
	var inventory []byte

	err := row.Scan(&site.ID, &site.Name, &site.Latitude, &site.Longitude, &inventory, &site.OwnerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	if err := json.Unmarshal(inventory, &site.Inventory); err != nil {
		return nil, fmt.Errorf("error decoding inventory: %v", err)
	}

	return site, nil
}

func (r *PostgresRepository) Create(ctx context.Context, site *Site) (*Site, error) {

	inventory, err := marshalInventory(site.Inventory)
	if err != nil {
		return nil, fmt.Errorf("error encoding inventory: %v", err)
	}

	query :=
		`INSERT INTO sites (id, name, latitude, longitude, inventory, owner_id)
         VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id
		 `

	err = r.db.QueryRowContext(ctx, query,
		site.ID, site.Name, site.Latitude, site.Longitude, inventory, site.OwnerID).Scan(&site.ID)

	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return site, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*Site, error) {
	query :=
		`SELECT id, name, latitude, longitude, inventory, owner_id FROM sites
		 WHERE id = $1
		 `

	return scanSite(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*Site, error) {
	query :=
		`SELECT id, name, latitude, longitude, inventory, owner_id FROM sites
		 WHERE owner_id = $1
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}
	defer rows.Close()

	result := []*Site{}
	for rows.Next() {
		site := &Site{}
		var inventory []byte

		if err := rows.Scan(&site.ID, &site.Name, &site.Latitude, &site.Longitude, &inventory, &site.OwnerID); err != nil {
			return nil, fmt.Errorf("error performing sql request: %v", err)
		}
		if err := json.Unmarshal(inventory, &site.Inventory); err != nil {
			return nil, fmt.Errorf("error decoding inventory: %v", err)
		}

		result = append(result, site)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return result, nil
}

func (r *PostgresRepository) ReplaceInventory(ctx context.Context, id int64, items []InventoryItem) (*Site, error) {

	inventory, err := marshalInventory(items)
	if err != nil {
		return nil, fmt.Errorf("error encoding inventory: %v", err)
	}

	query :=
		`UPDATE sites SET inventory = $1
		 WHERE id = $2
		 RETURNING id, name, latitude, longitude, inventory, owner_id
		 `

	return scanSite(r.db.QueryRowContext(ctx, query, inventory, id))
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query :=
		`DELETE FROM sites
		 WHERE id = $1
		 RETURNING id
		 `

	var deletedID int64
	err := r.db.QueryRowContext(ctx, query, id).Scan(&deletedID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("error performing sql request: %v", err)
	}

	return nil
}

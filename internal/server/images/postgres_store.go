package images

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sitenexus/sitenexus/internal/common"
)

// PostgresStore keeps the image in the users table, as the original schema
// did (blob plus content type on the user document).
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Put(ctx context.Context, userID string, data []byte, contentType string) error {

	query :=
		`UPDATE users SET profile_image = $1, profile_image_type = $2
		 WHERE id = $3
		 RETURNING id
		 `

	var id string
	err := s.db.QueryRowContext(ctx, query, data, contentType, userID).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("error performing sql request: %v", err)
	}

	return nil
}

func (s *PostgresStore) Get(ctx context.Context, userID string) ([]byte, string, error) {

	query :=
		`SELECT profile_image, profile_image_type FROM users
		 WHERE id = $1
		 `

	var (
		data        []byte
		contentType sql.NullString
	)
	err := s.db.QueryRowContext(ctx, query, userID).Scan(&data, &contentType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", common.ErrorNotFound
		}
		return nil, "", fmt.Errorf("error performing sql request: %v", err)
	}

	if len(data) == 0 {
		return nil, "", common.ErrorNotFound
	}

	return data, contentType.String, nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
)

var ErrProgramNotFound = errors.New("program not found")

// ProgramRepository is a thin read accessor over generated training
// programs. Program content is produced by an upstream service; this
// API only needs names for display.
type ProgramRepository struct {
	db *sql.DB
}

// NewProgramRepository creates a new ProgramRepository.
func NewProgramRepository(db *sql.DB) *ProgramRepository {
	return &ProgramRepository{db: db}
}

// GetName retrieves the display name of a program by its identifier.
func (r *ProgramRepository) GetName(ctx context.Context, id string) (string, error) {
	var name string
	err := r.db.QueryRowContext(ctx, `SELECT name FROM programs WHERE id = ?`, id).Scan(&name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrProgramNotFound
		}
		return "", err
	}
	return name, nil
}

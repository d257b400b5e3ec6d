package repository

import (
	"context"
	"errors"
	"time"

	"pharmaflux/internal/database"
	"pharmaflux/internal/domain/contract"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PostgresContractRepository struct {
	db database.DB
}

func NewPostgresContractRepository(db database.DB) *PostgresContractRepository {
	return &PostgresContractRepository{db: db}
}

const contractColumns = `id, mission_id, candidate_id, employer_id, document,
	candidate_signed_at, employer_signed_at, created_at`

func (r *PostgresContractRepository) CreateIfAbsent(ctx context.Context, c contract.Contract) (bool, error) {
	n, err := r.db.Exec(ctx,
		`INSERT INTO contracts (id, mission_id, candidate_id, employer_id, document)
		 VALUES ($1,$2,$3,$4,$5)
		 ON CONFLICT (mission_id) DO NOTHING`,
		c.ID, c.MissionID, c.CandidateID, c.EmployerID, c.Document,
	)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *PostgresContractRepository) GetByID(ctx context.Context, id uuid.UUID) (contract.Contract, error) {
	row := r.db.QueryRow(ctx, `SELECT `+contractColumns+` FROM contracts WHERE id = $1`, id)
	return scanContract(row)
}

func (r *PostgresContractRepository) GetByMission(ctx context.Context, missionID uuid.UUID) (contract.Contract, error) {
	row := r.db.QueryRow(ctx, `SELECT `+contractColumns+` FROM contracts WHERE mission_id = $1`, missionID)
	return scanContract(row)
}

func (r *PostgresContractRepository) SignByCandidate(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.sign(ctx, `UPDATE contracts SET candidate_signed_at = $2
		WHERE id = $1 AND candidate_signed_at IS NULL`, id, at)
}

func (r *PostgresContractRepository) SignByEmployer(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.sign(ctx, `UPDATE contracts SET employer_signed_at = $2
		WHERE id = $1 AND employer_signed_at IS NULL`, id, at)
}

func (r *PostgresContractRepository) sign(ctx context.Context, query string, id uuid.UUID, at time.Time) error {
	n, err := r.db.Exec(ctx, query, id, at.UTC())
	if err != nil {
		return err
	}
	if n == 0 {
		var exists bool
		row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM contracts WHERE id = $1)`, id)
		if scanErr := row.Scan(&exists); scanErr == nil && exists {
			return contract.ErrAlreadySigned
		}
		return contract.ErrNotFound
	}
	return nil
}

func scanContract(row scanner) (contract.Contract, error) {
	var c contract.Contract
	err := row.Scan(
		&c.ID, &c.MissionID, &c.CandidateID, &c.EmployerID, &c.Document,
		&c.CandidateSignedAt, &c.EmployerSignedAt, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return contract.Contract{}, contract.ErrNotFound
		}
		return contract.Contract{}, err
	}
	return c, nil
}

package repository

import (
	"context"
	"errors"
	"time"

	"pharmaflux/internal/database"
	"pharmaflux/internal/domain/application"
	"pharmaflux/internal/domain/mission"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

const applicationColumns = `id, candidate_id, mission_id, status, created_at, updated_at`

func (r *PostgresApplicationRepository) Create(ctx context.Context, a application.Application) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO applications (id, candidate_id, mission_id, status)
		 VALUES ($1,$2,$3,$4)`,
		a.ID, a.CandidateID, a.MissionID, string(a.Status),
	)
	if isUniqueViolation(err) {
		return application.ErrDuplicate
	}
	return err
}

func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (application.Application, error) {
	row := r.db.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	return scanApplication(row)
}

func (r *PostgresApplicationRepository) ListByMission(ctx context.Context, missionID uuid.UUID) ([]application.Application, error) {
	return r.list(ctx, `SELECT `+applicationColumns+` FROM applications
		WHERE mission_id = $1 ORDER BY created_at DESC`, missionID)
}

func (r *PostgresApplicationRepository) ListByCandidate(ctx context.Context, candidateID uuid.UUID) ([]application.Application, error) {
	return r.list(ctx, `SELECT `+applicationColumns+` FROM applications
		WHERE candidate_id = $1 ORDER BY created_at DESC`, candidateID)
}

func (r *PostgresApplicationRepository) CandidateIDsByMission(ctx context.Context, missionID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx,
		`SELECT candidate_id FROM applications WHERE mission_id = $1`, missionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresApplicationRepository) CreateProposedBatch(ctx context.Context, missionID uuid.UUID, candidateIDs []uuid.UUID) (int64, error) {
	if missionID == uuid.Nil || len(candidateIDs) == 0 {
		return 0, nil
	}
	// ON CONFLICT keeps re-runs and concurrent runs idempotent: the unique
	// index decides, not the caller's exclusion set.
	return r.db.Exec(ctx,
		`INSERT INTO applications (id, candidate_id, mission_id, status)
		 SELECT gen_random_uuid(), c, $1, $2 FROM unnest($3::uuid[]) AS c
		 ON CONFLICT (candidate_id, mission_id) DO NOTHING`,
		missionID, string(application.StatusProposed), candidateIDs,
	)
}

func (r *PostgresApplicationRepository) Accept(ctx context.Context, applicationID, missionID uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	now := time.Now().UTC()

	n, err := tx.Exec(ctx,
		`UPDATE missions SET status = $2, updated_at = $3 WHERE id = $1 AND status = $4`,
		missionID, string(mission.StatusAssigned), now, string(mission.StatusOpen),
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return application.ErrMissionNotOpen
	}

	n, err = tx.Exec(ctx,
		`UPDATE applications SET status = $2, updated_at = $3 WHERE id = $1 AND status = $4`,
		applicationID, string(application.StatusAccepted), now, string(application.StatusProposed),
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return application.ErrNotProposed
	}

	// Dangling proposals on an assigned mission are meaningless; close them.
	_, err = tx.Exec(ctx,
		`UPDATE applications SET status = $2, updated_at = $3
		 WHERE mission_id = $1 AND id <> $4 AND status = $5`,
		missionID, string(application.StatusRejected), now,
		applicationID, string(application.StatusProposed),
	)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PostgresApplicationRepository) RejectIfProposed(ctx context.Context, applicationID uuid.UUID) (bool, error) {
	n, err := r.db.Exec(ctx,
		`UPDATE applications SET status = $2, updated_at = $3 WHERE id = $1 AND status = $4`,
		applicationID, string(application.StatusRejected), time.Now().UTC(),
		string(application.StatusProposed),
	)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *PostgresApplicationRepository) list(ctx context.Context, query string, arg any) ([]application.Application, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanApplication(row scanner) (application.Application, error) {
	var a application.Application
	var status string
	err := row.Scan(&a.ID, &a.CandidateID, &a.MissionID, &status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return application.Application{}, application.ErrNotFound
		}
		return application.Application{}, err
	}
	a.Status = application.Status(status)
	return a, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

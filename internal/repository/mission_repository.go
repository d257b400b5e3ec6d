package repository

import (
	"context"
	"errors"

	"pharmaflux/internal/database"
	"pharmaflux/internal/domain/mission"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PostgresMissionRepository struct {
	db database.DB
}

func NewPostgresMissionRepository(db database.DB) *PostgresMissionRepository {
	return &PostgresMissionRepository{db: db}
}

const missionColumns = `id, employer_id, title, COALESCE(description, ''), facility_type,
	COALESCE(location, ''), lat, lon, start_date, end_date, start_time, end_time,
	hourly_rate, status, created_at, updated_at`

func (r *PostgresMissionRepository) Create(ctx context.Context, m mission.Mission) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO missions (id, employer_id, title, description, facility_type,
			location, lat, lon, start_date, end_date, start_time, end_time,
			hourly_rate, status)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
		m.ID, m.EmployerID, m.Title, m.Description, string(m.FacilityType),
		m.Location, m.Lat, m.Lon, m.StartDate, m.EndDate, m.StartTime, m.EndTime,
		m.HourlyRate, string(m.Status),
	)
	return err
}

func (r *PostgresMissionRepository) GetByID(ctx context.Context, id uuid.UUID) (mission.Mission, error) {
	row := r.db.QueryRow(ctx, `SELECT `+missionColumns+` FROM missions WHERE id = $1`, id)
	return scanMission(row)
}

func (r *PostgresMissionRepository) ListByEmployer(ctx context.Context, employerID uuid.UUID) ([]mission.Mission, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+missionColumns+` FROM missions
		 WHERE employer_id = $1
		 ORDER BY created_at DESC`,
		employerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]mission.Mission, 0)
	for rows.Next() {
		m, err := scanMission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresMissionRepository) ListOpen(ctx context.Context) ([]mission.WithEmployer, error) {
	rows, err := r.db.Query(ctx,
		`SELECT m.id, m.employer_id, m.title, COALESCE(m.description, ''), m.facility_type,
			COALESCE(m.location, ''), m.lat, m.lon, m.start_date, m.end_date,
			m.start_time, m.end_time, m.hourly_rate, m.status, m.created_at, m.updated_at,
			COALESCE(p.company_name, p.full_name), p.email
		 FROM missions m
		 JOIN profiles p ON p.id = m.employer_id
		 WHERE m.status = $1
		 ORDER BY m.created_at DESC`,
		string(mission.StatusOpen),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]mission.WithEmployer, 0)
	for rows.Next() {
		var m mission.WithEmployer
		var facility, status string
		err := rows.Scan(
			&m.ID, &m.EmployerID, &m.Title, &m.Description, &facility,
			&m.Location, &m.Lat, &m.Lon, &m.StartDate, &m.EndDate,
			&m.StartTime, &m.EndTime, &m.HourlyRate, &status, &m.CreatedAt, &m.UpdatedAt,
			&m.EmployerName, &m.EmployerEmail,
		)
		if err != nil {
			return nil, err
		}
		m.FacilityType = mission.FacilityType(facility)
		m.Status = mission.Status(status)
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanMission(row scanner) (mission.Mission, error) {
	var m mission.Mission
	var facility, status string
	err := row.Scan(
		&m.ID, &m.EmployerID, &m.Title, &m.Description, &facility,
		&m.Location, &m.Lat, &m.Lon, &m.StartDate, &m.EndDate,
		&m.StartTime, &m.EndTime, &m.HourlyRate, &status, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return mission.Mission{}, mission.ErrNotFound
		}
		return mission.Mission{}, err
	}
	m.FacilityType = mission.FacilityType(facility)
	m.Status = mission.Status(status)
	return m, nil
}

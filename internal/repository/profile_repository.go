package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"pharmaflux/internal/database"
	"pharmaflux/internal/domain/profile"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PostgresProfileRepository struct {
	db database.DB
}

func NewPostgresProfileRepository(db database.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

const profileColumns = `id, auth_id, role, full_name, email, COALESCE(phone, ''),
	lat, lon, COALESCE(skill_tags, '[]'), COALESCE(availability, '[]'),
	COALESCE(company_name, ''), COALESCE(registration_number, ''),
	COALESCE(address, ''), COALESCE(hr_contact, ''), onboarding_done,
	created_at, updated_at`

func (r *PostgresProfileRepository) Create(ctx context.Context, p profile.Profile) error {
	avail, err := json.Marshal(p.Availability)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx,
		`INSERT INTO profiles (id, auth_id, role, full_name, email, phone, lat, lon,
			skill_tags, availability, company_name, registration_number, address,
			hr_contact, onboarding_done)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`,
		p.ID, p.AuthID, string(p.Role), p.FullName, p.Email, p.Phone,
		p.Lat, p.Lon, p.SkillTags, avail,
		p.CompanyName, p.RegistrationNumber, p.Address, p.HRContact, p.OnboardingDone,
	)
	return err
}

func (r *PostgresProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (profile.Profile, error) {
	row := r.db.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id)
	return scanProfile(row)
}

func (r *PostgresProfileRepository) GetByAuthID(ctx context.Context, authID uuid.UUID) (profile.Profile, error) {
	row := r.db.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE auth_id = $1`, authID)
	return scanProfile(row)
}

func (r *PostgresProfileRepository) Update(ctx context.Context, id uuid.UUID, in profile.UpdateInput) error {
	var avail []byte
	if in.Availability != nil {
		b, err := json.Marshal(in.Availability)
		if err != nil {
			return err
		}
		avail = b
	}

	n, err := r.db.Exec(ctx,
		`UPDATE profiles SET
			full_name = COALESCE($2, full_name),
			phone = COALESCE($3, phone),
			lat = COALESCE($4, lat),
			lon = COALESCE($5, lon),
			skill_tags = COALESCE($6, skill_tags),
			availability = COALESCE($7, availability),
			company_name = COALESCE($8, company_name),
			registration_number = COALESCE($9, registration_number),
			address = COALESCE($10, address),
			hr_contact = COALESCE($11, hr_contact),
			onboarding_done = COALESCE($12, onboarding_done),
			updated_at = $13
		 WHERE id = $1`,
		id, in.FullName, in.Phone, in.Lat, in.Lon, in.SkillTags, avail,
		in.CompanyName, in.RegistrationNumber, in.Address, in.HRContact,
		in.OnboardingDone, time.Now().UTC(),
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return profile.ErrNotFound
	}
	return nil
}

func (r *PostgresProfileRepository) ListCandidates(ctx context.Context) ([]profile.Profile, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE role = $1 ORDER BY created_at`,
		string(profile.RoleCandidate),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]profile.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProfile(row scanner) (profile.Profile, error) {
	var p profile.Profile
	var role string
	var avail []byte
	err := row.Scan(
		&p.ID, &p.AuthID, &role, &p.FullName, &p.Email, &p.Phone,
		&p.Lat, &p.Lon, &p.SkillTags, &avail,
		&p.CompanyName, &p.RegistrationNumber, &p.Address, &p.HRContact,
		&p.OnboardingDone, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return profile.Profile{}, profile.ErrNotFound
		}
		return profile.Profile{}, err
	}
	p.Role = profile.Role(role)
	if len(avail) > 0 {
		if err := json.Unmarshal(avail, &p.Availability); err != nil {
			return profile.Profile{}, err
		}
	}
	return p, nil
}

package seeder

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"pharmaflux/internal/database"
)

// Fixed IDs keep the seed idempotent across runs.
const (
	demoEmployerAccountID  = "4f1c2a10-0000-4000-8000-000000000001"
	demoEmployerProfileID  = "4f1c2a10-0000-4000-8000-000000000002"
	demoCandidateAccountID = "4f1c2a10-0000-4000-8000-000000000003"
	demoCandidateProfileID = "4f1c2a10-0000-4000-8000-000000000004"
	demoMissionID          = "4f1c2a10-0000-4000-8000-000000000005"

	demoPassword = "demo-password"
)

type DemoAccountsSeeder struct{}

func (DemoAccountsSeeder) Name() string { return "demo_accounts" }

func (DemoAccountsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "accounts", "id", "email", "password_hash"); err != nil {
		return err
	}
	if err := EnsureTableColumns(ctx, db, "profiles", "id", "auth_id", "role", "full_name", "email", "skill_tags", "availability"); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	accounts := []struct {
		ID    string
		Email string
	}{
		{ID: demoEmployerAccountID, Email: "pharmacie.lafayette@example.com"},
		{ID: demoCandidateAccountID, Email: "marie.dubois@example.com"},
	}
	for _, a := range accounts {
		if _, err := tx.Exec(ctx,
			`INSERT INTO accounts (id, email, password_hash) VALUES ($1, $2, $3) ON CONFLICT (email) DO NOTHING`,
			a.ID, a.Email, string(hash),
		); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO profiles (id, auth_id, role, full_name, email, company_name, address, hr_contact, lat, lon, onboarding_done)
		 VALUES ($1, $2, 'employer', 'Pharmacie Lafayette', 'pharmacie.lafayette@example.com', 'Pharmacie Lafayette', '12 Rue de Rivoli, Paris', 'rh@lafayette.example.com', 48.8556, 2.3575, TRUE)
		 ON CONFLICT (auth_id) DO NOTHING`,
		demoEmployerProfileID, demoEmployerAccountID,
	); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO profiles (id, auth_id, role, full_name, email, phone, lat, lon, skill_tags, availability, onboarding_done)
		 VALUES ($1, $2, 'candidate', 'Marie Dubois', 'marie.dubois@example.com', '+33600000000', 48.8606, 2.3376,
		         '["pharmacy", "hospital"]'::jsonb,
		         '[{"start_date": "2026-01-01T00:00:00Z", "end_date": "2026-12-31T00:00:00Z", "start_time": "08:00", "end_time": "20:00"}]'::jsonb,
		         TRUE)
		 ON CONFLICT (auth_id) DO NOTHING`,
		demoCandidateProfileID, demoCandidateAccountID,
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

type DemoMissionsSeeder struct{}

func (DemoMissionsSeeder) Name() string { return "demo_missions" }

func (DemoMissionsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "missions", "id", "employer_id", "title", "facility_type", "status", "start_date", "end_date"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	if _, err := tx.Exec(ctx,
		`INSERT INTO missions (id, employer_id, title, description, facility_type, location, lat, lon, start_date, end_date, start_time, end_time, hourly_rate, status)
		 VALUES ($1, $2, 'Remplacement pharmacien', 'Remplacement pour la semaine du 15.', 'pharmacy', '12 Rue de Rivoli, Paris', 48.8556, 2.3575,
		         '2026-09-15', '2026-09-19', '09:00', '19:00', 45.00, 'open')
		 ON CONFLICT (id) DO NOTHING`,
		demoMissionID, demoEmployerProfileID,
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

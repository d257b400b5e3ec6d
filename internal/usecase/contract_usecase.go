package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pharmaflux/internal/domain/application"
	"pharmaflux/internal/domain/contract"
	"pharmaflux/internal/domain/mission"
	"pharmaflux/internal/domain/profile"
	"pharmaflux/internal/infrastructure/docgen"
	"pharmaflux/internal/infrastructure/mailer"
	"pharmaflux/internal/infrastructure/metrics"
	"pharmaflux/internal/ws"
)

var ErrNoAcceptedApplication = errors.New("mission has no accepted application")

type ContractUsecase interface {
	Generate(ctx context.Context, missionID uuid.UUID) error
	GetForMission(ctx context.Context, actor profile.Profile, missionID uuid.UUID) (contract.Contract, error)
	Sign(ctx context.Context, actor profile.Profile, contractID uuid.UUID) (contract.Contract, error)
}

type Contracts struct {
	contracts    contract.Repository
	missions     mission.Repository
	applications application.Repository
	profiles     profile.Repository
	mail         mailer.Mailer
	logger       *zap.Logger
}

func NewContractUsecase(
	contracts contract.Repository,
	missions mission.Repository,
	applications application.Repository,
	profiles profile.Repository,
	mail mailer.Mailer,
	logger *zap.Logger,
) *Contracts {
	if mail == nil {
		mail = mailer.Noop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Contracts{
		contracts:    contracts,
		missions:     missions,
		applications: applications,
		profiles:     profiles,
		mail:         mail,
		logger:       logger,
	}
}

// Generate creates the mission's contract once an application is
// accepted. Idempotent: the unique index on contracts.mission_id makes a
// second run a no-op even when two runs race.
func (u *Contracts) Generate(ctx context.Context, missionID uuid.UUID) error {
	if missionID == uuid.Nil {
		return ErrValidation
	}

	if _, err := u.contracts.GetByMission(ctx, missionID); err == nil {
		return nil
	} else if !errors.Is(err, contract.ErrNotFound) {
		return err
	}

	m, err := u.missions.GetByID(ctx, missionID)
	if err != nil {
		return err
	}

	accepted, err := u.acceptedApplication(ctx, missionID)
	if err != nil {
		return err
	}

	candidate, err := u.profiles.GetByID(ctx, accepted.CandidateID)
	if err != nil {
		return err
	}
	employer, err := u.profiles.GetByID(ctx, m.EmployerID)
	if err != nil {
		return err
	}

	doc, err := docgen.Render(docgen.ContractData{
		MissionTitle:  m.Title,
		FacilityType:  string(m.FacilityType),
		Location:      m.Location,
		StartDate:     m.StartDate,
		EndDate:       m.EndDate,
		StartTime:     m.StartTime,
		EndTime:       m.EndTime,
		HourlyRate:    m.HourlyRate,
		CandidateName: candidate.FullName,
		EmployerName:  employer.FullName,
		CompanyName:   employer.CompanyName,
	})
	if err != nil {
		return err
	}

	created, err := u.contracts.CreateIfAbsent(ctx, contract.Contract{
		ID:          uuid.New(),
		MissionID:   missionID,
		CandidateID: candidate.ID,
		EmployerID:  employer.ID,
		Document:    doc,
	})
	if err != nil {
		return err
	}
	if !created {
		// Lost a race with a concurrent run; the winner's row stands.
		return nil
	}

	metrics.ContractsGenerated.Inc()
	u.logger.Info("contract generated", zap.String("mission_id", missionID.String()))

	ws.NotifyApplication(candidate.ID, ws.EventContractReady, accepted.ID, missionID, string(accepted.Status))
	ws.NotifyApplication(employer.ID, ws.EventContractReady, accepted.ID, missionID, string(accepted.Status))

	subject := fmt.Sprintf("Contrat disponible: %s", m.Title)
	body := fmt.Sprintf("Le contrat pour la mission %q est disponible sur votre tableau de bord.", m.Title)
	if err := u.mail.Send(ctx, []string{candidate.Email, employer.Email}, subject, body); err != nil {
		// Notification failure never fails generation.
		u.logger.Warn("contract notification failed", zap.Error(err))
	}

	return nil
}

func (u *Contracts) GetForMission(ctx context.Context, actor profile.Profile, missionID uuid.UUID) (contract.Contract, error) {
	if actor.ID == uuid.Nil {
		return contract.Contract{}, ErrUnauthorized
	}
	c, err := u.contracts.GetByMission(ctx, missionID)
	if err != nil {
		return contract.Contract{}, err
	}
	if actor.ID != c.CandidateID && actor.ID != c.EmployerID {
		return contract.Contract{}, ErrForbidden
	}
	return c, nil
}

func (u *Contracts) Sign(ctx context.Context, actor profile.Profile, contractID uuid.UUID) (contract.Contract, error) {
	if actor.ID == uuid.Nil {
		return contract.Contract{}, ErrUnauthorized
	}
	c, err := u.contracts.GetByID(ctx, contractID)
	if err != nil {
		return contract.Contract{}, err
	}

	now := time.Now().UTC()
	switch actor.ID {
	case c.CandidateID:
		err = u.contracts.SignByCandidate(ctx, contractID, now)
	case c.EmployerID:
		err = u.contracts.SignByEmployer(ctx, contractID, now)
	default:
		return contract.Contract{}, ErrForbidden
	}
	if err != nil {
		return contract.Contract{}, err
	}

	return u.contracts.GetByID(ctx, contractID)
}

func (u *Contracts) acceptedApplication(ctx context.Context, missionID uuid.UUID) (application.Application, error) {
	apps, err := u.applications.ListByMission(ctx, missionID)
	if err != nil {
		return application.Application{}, err
	}
	for _, a := range apps {
		if a.Status == application.StatusAccepted {
			return a, nil
		}
	}
	return application.Application{}, ErrNoAcceptedApplication
}

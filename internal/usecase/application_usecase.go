package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pharmaflux/internal/domain/application"
	"pharmaflux/internal/domain/mission"
	"pharmaflux/internal/domain/profile"
	"pharmaflux/internal/infrastructure/cache"
	"pharmaflux/internal/infrastructure/metrics"
	"pharmaflux/internal/worker"
	"pharmaflux/internal/ws"
)

var (
	ErrDuplicateApplication = errors.New("application already exists for this mission")
	ErrInvalidTransition    = errors.New("application is in a terminal state")
	ErrInvalidStatus        = errors.New("status must be accepted or rejected")
	ErrMissionNotOpen       = errors.New("mission is no longer open")
)

// ContractGenerator produces the contract for an assigned mission.
// Satisfied by the contract usecase.
type ContractGenerator interface {
	Generate(ctx context.Context, missionID uuid.UUID) error
}

type ApplicationUsecase interface {
	Apply(ctx context.Context, actor profile.Profile, missionID uuid.UUID) (application.Application, error)
	UpdateStatus(ctx context.Context, actor profile.Profile, applicationID uuid.UUID, newStatus application.Status) (application.Application, error)
	ListMine(ctx context.Context, actor profile.Profile) ([]application.Application, error)
	ListForMission(ctx context.Context, actor profile.Profile, missionID uuid.UUID) ([]application.Application, error)
}

type Applications struct {
	applications application.Repository
	missions     mission.Repository
	cache        *cache.Redis
	tasks        Enqueuer
	contracts    ContractGenerator
	logger       *zap.Logger
}

func NewApplicationUsecase(
	applications application.Repository,
	missions mission.Repository,
	cacheClient *cache.Redis,
	tasks Enqueuer,
	contracts ContractGenerator,
	logger *zap.Logger,
) *Applications {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Applications{
		applications: applications,
		missions:     missions,
		cache:        cacheClient,
		tasks:        tasks,
		contracts:    contracts,
		logger:       logger,
	}
}

func (u *Applications) Apply(ctx context.Context, actor profile.Profile, missionID uuid.UUID) (application.Application, error) {
	if actor.ID == uuid.Nil {
		return application.Application{}, ErrUnauthorized
	}
	if !actor.IsCandidate() {
		return application.Application{}, ErrForbidden
	}
	if missionID == uuid.Nil {
		return application.Application{}, ErrValidation
	}

	m, err := u.missions.GetByID(ctx, missionID)
	if err != nil {
		return application.Application{}, err
	}
	if m.Status != mission.StatusOpen {
		return application.Application{}, ErrMissionNotOpen
	}

	a := application.Application{
		ID:          uuid.New(),
		CandidateID: actor.ID,
		MissionID:   missionID,
		Status:      application.StatusProposed,
	}
	if err := u.applications.Create(ctx, a); err != nil {
		if errors.Is(err, application.ErrDuplicate) {
			return application.Application{}, ErrDuplicateApplication
		}
		u.logger.Error("application create failed", zap.Error(err))
		return application.Application{}, ErrInternal
	}

	metrics.ApplicationsProposed.Inc()
	created, err := u.applications.GetByID(ctx, a.ID)
	if err != nil {
		return a, nil
	}
	return created, nil
}

func (u *Applications) UpdateStatus(ctx context.Context, actor profile.Profile, applicationID uuid.UUID, newStatus application.Status) (application.Application, error) {
	if actor.ID == uuid.Nil {
		return application.Application{}, ErrUnauthorized
	}
	if applicationID == uuid.Nil {
		return application.Application{}, ErrValidation
	}
	if newStatus != application.StatusAccepted && newStatus != application.StatusRejected {
		return application.Application{}, ErrInvalidStatus
	}

	a, err := u.applications.GetByID(ctx, applicationID)
	if err != nil {
		return application.Application{}, err
	}

	m, err := u.missions.GetByID(ctx, a.MissionID)
	if err != nil {
		return application.Application{}, err
	}
	if err := u.authorizeDecision(actor, a, m); err != nil {
		return application.Application{}, err
	}

	if !application.CanTransition(a.Status, newStatus) {
		return application.Application{}, ErrInvalidTransition
	}

	switch newStatus {
	case application.StatusAccepted:
		err = u.accept(ctx, a, m)
	case application.StatusRejected:
		err = u.reject(ctx, a)
	}
	if err != nil {
		return application.Application{}, err
	}

	updated, err := u.applications.GetByID(ctx, applicationID)
	if err != nil {
		u.logger.Error("application reload failed", zap.Error(err))
		return application.Application{}, ErrInternal
	}

	metrics.ApplicationsDecided.WithLabelValues(string(newStatus)).Inc()
	ws.NotifyApplication(a.CandidateID, ws.EventApplicationDecided, a.ID, a.MissionID, string(updated.Status))
	ws.NotifyApplication(m.EmployerID, ws.EventApplicationDecided, a.ID, a.MissionID, string(updated.Status))

	return updated, nil
}

func (u *Applications) ListMine(ctx context.Context, actor profile.Profile) ([]application.Application, error) {
	if actor.ID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	if !actor.IsCandidate() {
		return nil, ErrForbidden
	}
	out, err := u.applications.ListByCandidate(ctx, actor.ID)
	if err != nil {
		u.logger.Error("application list failed", zap.Error(err))
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Applications) ListForMission(ctx context.Context, actor profile.Profile, missionID uuid.UUID) ([]application.Application, error) {
	if actor.ID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	m, err := u.missions.GetByID(ctx, missionID)
	if err != nil {
		return nil, err
	}
	if !actor.IsEmployer() || m.EmployerID != actor.ID {
		return nil, ErrForbidden
	}
	out, err := u.applications.ListByMission(ctx, missionID)
	if err != nil {
		u.logger.Error("application list failed", zap.Error(err))
		return nil, ErrInternal
	}
	return out, nil
}

// accept runs the transactional accept and schedules contract generation.
// The repository transaction carries the compare-and-swap on both the
// mission and the application, so exactly one accept can win per mission.
func (u *Applications) accept(ctx context.Context, a application.Application, m mission.Mission) error {
	if err := u.applications.Accept(ctx, a.ID, a.MissionID); err != nil {
		switch {
		case errors.Is(err, application.ErrMissionNotOpen):
			return ErrMissionNotOpen
		case errors.Is(err, application.ErrNotProposed):
			return ErrInvalidTransition
		}
		u.logger.Error("application accept failed", zap.Error(err))
		return ErrInternal
	}

	metrics.MissionsAssigned.Inc()
	_ = u.cache.InvalidateMissionCaches(ctx)

	if u.tasks != nil && u.contracts != nil {
		missionID := a.MissionID
		u.tasks.Enqueue(worker.Task{
			Name: "contract-generation",
			Run: func(taskCtx context.Context) error {
				return u.contracts.Generate(taskCtx, missionID)
			},
		})
	}
	return nil
}

func (u *Applications) reject(ctx context.Context, a application.Application) error {
	ok, err := u.applications.RejectIfProposed(ctx, a.ID)
	if err != nil {
		u.logger.Error("application reject failed", zap.Error(err))
		return ErrInternal
	}
	if !ok {
		return ErrInvalidTransition
	}
	return nil
}

func (u *Applications) authorizeDecision(actor profile.Profile, a application.Application, m mission.Mission) error {
	switch {
	case actor.IsCandidate():
		if a.CandidateID != actor.ID {
			return ErrForbidden
		}
	case actor.IsEmployer():
		if m.EmployerID != actor.ID {
			return ErrForbidden
		}
	default:
		return ErrForbidden
	}
	return nil
}

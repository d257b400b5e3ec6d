package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pharmaflux/internal/domain/application"
	"pharmaflux/internal/domain/matching"
	"pharmaflux/internal/domain/mission"
	"pharmaflux/internal/domain/profile"
	"pharmaflux/internal/infrastructure/cache"
	"pharmaflux/internal/infrastructure/metrics"
	"pharmaflux/internal/ws"
)

// Matching proposes eligible candidates to a freshly created mission.
// Runs are idempotent: the exclusion set trims the insert batch, and the
// (candidate_id, mission_id) unique index absorbs anything the exclusion
// set missed, so concurrent runs cannot double-propose.
type Matching struct {
	missions     mission.Repository
	profiles     profile.Repository
	applications application.Repository
	engine       matching.Engine
	cache        *cache.Redis
	logger       *zap.Logger
}

func NewMatchingUsecase(
	missions mission.Repository,
	profiles profile.Repository,
	applications application.Repository,
	engine matching.Engine,
	cacheClient *cache.Redis,
	logger *zap.Logger,
) *Matching {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matching{
		missions:     missions,
		profiles:     profiles,
		applications: applications,
		engine:       engine,
		cache:        cacheClient,
		logger:       logger,
	}
}

func (u *Matching) Run(ctx context.Context, missionID uuid.UUID) error {
	if missionID == uuid.Nil {
		return ErrValidation
	}

	ok, _ := u.cache.AcquireMatchingLock(ctx, missionID.String(), 30*time.Second)
	if !ok {
		u.logger.Debug("matching already running", zap.String("mission_id", missionID.String()))
		return nil
	}
	defer u.cache.ReleaseMatchingLock(ctx, missionID.String())

	m, err := u.missions.GetByID(ctx, missionID)
	if err != nil {
		metrics.MatchingRuns.WithLabelValues("error").Inc()
		return err
	}
	if m.Status != mission.StatusOpen {
		// A retried run can land after the mission was assigned.
		u.logger.Info("skipping matching, mission no longer open",
			zap.String("mission_id", missionID.String()),
			zap.String("status", string(m.Status)),
		)
		metrics.MatchingRuns.WithLabelValues("skipped").Inc()
		return nil
	}

	candidates, err := u.profiles.ListCandidates(ctx)
	if err != nil {
		metrics.MatchingRuns.WithLabelValues("error").Inc()
		return err
	}

	eligible := matching.Filter(u.engine, candidates, m)
	if len(eligible) == 0 {
		metrics.MatchingRuns.WithLabelValues("empty").Inc()
		return nil
	}

	existing, err := u.applications.CandidateIDsByMission(ctx, missionID)
	if err != nil {
		metrics.MatchingRuns.WithLabelValues("error").Inc()
		return err
	}
	fresh := subtract(eligible, existing)
	if len(fresh) == 0 {
		metrics.MatchingRuns.WithLabelValues("empty").Inc()
		return nil
	}

	inserted, err := u.applications.CreateProposedBatch(ctx, missionID, fresh)
	if err != nil {
		metrics.MatchingRuns.WithLabelValues("error").Inc()
		return err
	}

	metrics.MatchingRuns.WithLabelValues("ok").Inc()
	metrics.ApplicationsProposed.Add(float64(inserted))
	u.logger.Info("matching run complete",
		zap.String("mission_id", missionID.String()),
		zap.Int("eligible", len(eligible)),
		zap.Int64("proposed", inserted),
	)

	for _, candidateID := range fresh {
		ws.NotifyApplication(candidateID, ws.EventApplicationProposed, uuid.Nil, missionID, string(application.StatusProposed))
	}

	return nil
}

func subtract(ids, exclude []uuid.UUID) []uuid.UUID {
	if len(exclude) == 0 {
		return ids
	}
	skip := make(map[uuid.UUID]struct{}, len(exclude))
	for _, id := range exclude {
		skip[id] = struct{}{}
	}
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := skip[id]; ok {
			continue
		}
		out = append(out, id)
	}
	return out
}

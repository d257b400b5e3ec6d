package v1

import (
	"go.uber.org/zap"

	"github.com/gofiber/fiber/v3"

	"pharmaflux/internal/config"
	"pharmaflux/internal/database"
	"pharmaflux/internal/delivery/http/handler"
	"pharmaflux/internal/delivery/http/middleware"
	"pharmaflux/internal/domain/matching"
	"pharmaflux/internal/infrastructure/cache"
	"pharmaflux/internal/infrastructure/geocode"
	"pharmaflux/internal/infrastructure/mailer"
	"pharmaflux/internal/pkg/jwt"
	"pharmaflux/internal/repository"
	"pharmaflux/internal/usecase"
	authuc "pharmaflux/internal/usecase/auth"
	profileuc "pharmaflux/internal/usecase/profile"
	"pharmaflux/internal/ws"
)

// Deps carries the shared infrastructure the v1 routes build on.
type Deps struct {
	Config   config.Config
	DB       database.DB
	Cache    *cache.Redis
	Geocoder geocode.Client
	Mailer   mailer.Mailer
	Tasks    usecase.Enqueuer
	Matcher  *usecase.Matching
	Hub      *ws.Hub
	Logger   *zap.Logger
}

// Register wires the v1 API. Repositories and usecases are constructed
// here so each request-scoped concern shares the same pool and cache.
func Register(r fiber.Router, d Deps) {
	accounts := repository.NewPostgresAccountRepository(d.DB)
	profiles := repository.NewPostgresProfileRepository(d.DB)
	missions := repository.NewPostgresMissionRepository(d.DB)
	applications := repository.NewPostgresApplicationRepository(d.DB)
	contracts := repository.NewPostgresContractRepository(d.DB)

	jwtSvc := jwt.NewHMACService(
		d.Config.JWT.AccessSecret,
		d.Config.JWT.RefreshSecret,
		d.Config.JWT.AccessExpiresIn,
		d.Config.JWT.RefreshExpiresIn,
	)

	matcher := d.Matcher
	if matcher == nil {
		engine := matching.NewEngine(matching.Criteria{RadiusKm: d.Config.Matching.RadiusKm})
		matcher = usecase.NewMatchingUsecase(missions, profiles, applications, engine, d.Cache, d.Logger)
	}

	defaultCoords := geocode.Coordinates{
		Lat: d.Config.Geocoder.DefaultLat,
		Lon: d.Config.Geocoder.DefaultLon,
	}

	contractUC := usecase.NewContractUsecase(contracts, missions, applications, profiles, d.Mailer, d.Logger)
	missionUC := usecase.NewMissionUsecase(missions, d.Geocoder, d.Cache, d.Tasks, matcher, defaultCoords, d.Logger)
	applicationUC := usecase.NewApplicationUsecase(applications, missions, d.Cache, d.Tasks, contractUC, d.Logger)

	authSvc := authuc.NewService(accounts, profiles)
	profileSvc := profileuc.NewService(profiles)

	actor := handler.NewActorResolver(profileSvc)
	authHandler := handler.NewAuthHandler(authSvc, profileSvc, jwtSvc)
	profileHandler := handler.NewProfileHandler(profileSvc, actor)
	missionHandler := handler.NewMissionHandler(missionUC, actor)
	applicationHandler := handler.NewApplicationHandler(applicationUC, actor)
	contractHandler := handler.NewContractHandler(contractUC, actor)

	authHandler.RegisterRoutes(r.Group("/auth"))

	authMW := middleware.NewAuthMiddleware(jwtSvc).Middleware()

	me := r.Group("/me", authMW)
	profileHandler.RegisterRoutes(me)

	missionsGroup := r.Group("/missions", authMW)
	missionHandler.RegisterRoutes(missionsGroup)
	applicationHandler.RegisterMissionRoutes(missionsGroup)
	contractHandler.RegisterMissionRoutes(missionsGroup)

	applicationsGroup := r.Group("/applications", authMW)
	applicationHandler.RegisterRoutes(applicationsGroup)

	contractsGroup := r.Group("/contracts", authMW)
	contractHandler.RegisterRoutes(contractsGroup)

	if d.Hub != nil {
		wsHandler := ws.NewHandler(d.Hub, d.Logger)
		r.Get("/events", wsHandler.HandleEvents, authMW)
	}
}

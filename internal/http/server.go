package http

import (
	"log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"tritogether/internal/auth"
	"tritogether/internal/config"
	"tritogether/internal/http/activities"
	"tritogether/internal/http/athletes"
	httpauth "tritogether/internal/http/auth"
	"tritogether/internal/http/authn"
	"tritogether/internal/http/coaches"
	"tritogether/internal/http/common"
	"tritogether/internal/http/notifications"
	"tritogether/internal/ratelimit"
	"tritogether/internal/repo/gormdb"
	"tritogether/internal/usecase"
)

type Server struct {
	cfg           config.Config
	r             *gin.Engine
	auth          *usecase.AuthService
	athletes      *usecase.AthleteService
	coaches       *usecase.CoachService
	activities    *usecase.ActivityService
	pairing       *usecase.PairingService
	authenticator common.Authenticator
	limiter       ratelimit.RateLimiter
}

type ServerDeps struct {
	Auth          *usecase.AuthService
	Athletes      *usecase.AthleteService
	Coaches       *usecase.CoachService
	Activities    *usecase.ActivityService
	Pairing       *usecase.PairingService
	Authenticator common.Authenticator
	Limiter       ratelimit.RateLimiter
}

func NewServer(cfg config.Config, db *gorm.DB, mail usecase.RecoverySender, limiter ratelimit.RateLimiter) *Server {
	athleteRepo := gormdb.NewAthleteRepository(db)
	coachRepo := gormdb.NewCoachRepository(db)
	credentialRepo := gormdb.NewCredentialRepository(db)
	notificationRepo := gormdb.NewNotificationRepository(db)
	activityRepo := gormdb.NewActivityRepository(db)
	disciplineRepo := gormdb.NewDisciplineRepository(db)

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.JWTExpiry)
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)

	return NewServerWithDeps(cfg, ServerDeps{
		Auth:          usecase.NewAuthService(credentialRepo, athleteRepo, coachRepo, tokens, hasher, mail),
		Athletes:      usecase.NewAthleteService(athleteRepo, credentialRepo, hasher),
		Coaches:       usecase.NewCoachService(coachRepo, athleteRepo, credentialRepo, hasher),
		Activities:    usecase.NewActivityService(activityRepo, athleteRepo, disciplineRepo),
		Pairing:       usecase.NewPairingService(notificationRepo, athleteRepo, coachRepo, hasher),
		Authenticator: httpauth.NewBearerAuthenticator(tokens),
		Limiter:       limiter,
	})
}

func NewServerWithDeps(cfg config.Config, deps ServerDeps) *Server {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(common.RequestIDMiddleware())

	s := &Server{
		cfg:           cfg,
		r:             r,
		auth:          deps.Auth,
		athletes:      deps.Athletes,
		coaches:       deps.Coaches,
		activities:    deps.Activities,
		pairing:       deps.Pairing,
		authenticator: deps.Authenticator,
		limiter:       deps.Limiter,
	}
	s.routes()
	return s
}

func (s *Server) Run() error {
	addr := s.cfg.HTTPAddr
	if addr == "" {
		addr = ":3000"
	}
	log.Printf("tritogether api listening on %s", addr)
	return s.r.Run(addr)
}

func (s *Server) routes() {
	s.r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	authnHandler := authn.NewHandler(s.auth)
	athleteHandler := athletes.NewHandler(s.athletes, s.pairing)
	coachHandler := coaches.NewHandler(s.coaches)
	activityHandler := activities.NewHandler(s.activities)
	notificationHandler := notifications.NewHandler(s.pairing)

	limited := func(routeID string) gin.HandlerFunc {
		return common.RateLimitMiddleware(s.limiter, routeID, s.cfg.RateLimitRequests, s.cfg.RateLimitWindow)
	}

	// credential endpoints are reachable without a session
	s.r.POST("/signin", limited("signin"), authnHandler.HandleSignIn)
	s.r.POST("/reset-password", limited("reset-password"), authnHandler.HandleResetPassword)
	s.r.PUT("/change-password", authnHandler.HandleChangePassword)

	// self registration
	s.r.POST("/athletes", athleteHandler.HandleRegister)
	s.r.POST("/coaches", coachHandler.HandleRegister)

	authed := s.r.Group("/", common.AuthMiddleware(s.authenticator))
	{
		authed.GET("/athletes", athleteHandler.HandleList)
		authed.GET("/athletes/:id", athleteHandler.HandleGet)
		authed.PUT("/athletes/:id", athleteHandler.HandleUpdate)
		authed.DELETE("/athletes/:id", athleteHandler.HandleDelete)
		authed.PUT("/athletes/:id/coach", athleteHandler.HandleSetCoach)

		authed.GET("/athletes/:id/activities", activityHandler.HandleListMonth)
		authed.POST("/athletes/:id/activities", activityHandler.HandleCreate)
		authed.GET("/athletes/:id/activities/:activity_id", activityHandler.HandleGet)
		authed.PUT("/athletes/:id/activities/:activity_id", activityHandler.HandleUpdate)
		authed.DELETE("/athletes/:id/activities/:activity_id", activityHandler.HandleDelete)

		authed.GET("/athletes/:id/notifications", notificationHandler.HandleListForAthlete)
		authed.POST("/athletes/:id/notifications", notificationHandler.HandleRequest)
		authed.PUT("/athletes/:id/notifications/:notification_id", notificationHandler.HandleResolve)

		authed.GET("/coaches", coachHandler.HandleList)
		authed.GET("/coaches/:id", coachHandler.HandleGet)
		authed.PUT("/coaches/:id", coachHandler.HandleUpdate)
		authed.DELETE("/coaches/:id", coachHandler.HandleDelete)
		authed.GET("/coaches/:id/athletes", coachHandler.HandleListAthletes)
		authed.GET("/coaches/:id/notifications", notificationHandler.HandleListForCoach)

		authed.GET("/disciplines", activityHandler.HandleListDisciplines)
	}
}

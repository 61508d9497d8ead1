package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/symposio/conference-api/docs"
	v1 "github.com/symposio/conference-api/internal/api/handler/v1"
	"github.com/symposio/conference-api/internal/api/middleware"
	"github.com/symposio/conference-api/internal/config"
	"github.com/symposio/conference-api/internal/mailqueue"
	"github.com/symposio/conference-api/internal/repository"
	"github.com/symposio/conference-api/internal/repository/dao"
	"github.com/symposio/conference-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine

	redisClient *redis.Client
}

func NewServer(conf *config.AppConfig, db *gorm.DB, redisClient *redis.Client) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config:      conf,
		Router:      engine,
		redisClient: redisClient,
	}

	s.MountMiddlewares()

	authHandler := s.initAuthHandler(db)
	conferenceHandler := s.initConferenceHandler(db)
	sessionHandler := s.initSessionHandler(db)
	registrationHandler := s.initRegistrationHandler(db)
	checkInHandler := s.initCheckInHandler(db)
	s.MountHandlers(authHandler, conferenceHandler, sessionHandler, registrationHandler, checkInHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	adminDAO := dao.NewAdminDAO(db)
	repo := repository.NewAdminRepository(adminDAO)
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initConferenceHandler(db *gorm.DB) *v1.ConferenceHandler {
	conferenceDAO := dao.NewConferenceDAO(db)
	repo := repository.NewConferenceRepository(conferenceDAO)
	svc := service.NewConferenceService(repo)
	handler := v1.NewConferenceHandler(svc)

	return handler
}

func (s *Server) initSessionHandler(db *gorm.DB) *v1.SessionHandler {
	repo := repository.NewSessionRepository(dao.NewSessionDAO(db))
	conferenceRepo := repository.NewConferenceRepository(dao.NewConferenceDAO(db))
	registrationRepo := repository.NewRegistrationRepository(dao.NewRegistrationDAO(db))
	svc := service.NewSessionService(repo, conferenceRepo, registrationRepo)
	handler := v1.NewSessionHandler(svc)

	return handler
}

func (s *Server) initRegistrationHandler(db *gorm.DB) *v1.RegistrationHandler {
	repo := repository.NewRegistrationRepository(dao.NewRegistrationDAO(db))
	sessionRepo := repository.NewSessionRepository(dao.NewSessionDAO(db))
	conferenceRepo := repository.NewConferenceRepository(dao.NewConferenceDAO(db))

	var mail service.MailQueue
	if s.redisClient != nil {
		mail = mailqueue.New(s.redisClient, s.Config.Mailer.QueueKey, s.Config.Mailer.EnqueueTimeout)
	}

	svc := service.NewRegistrationService(repo, sessionRepo, conferenceRepo, mail, s.Config.Registration)
	handler := v1.NewRegistrationHandler(svc)

	return handler
}

func (s *Server) initCheckInHandler(db *gorm.DB) *v1.CheckInHandler {
	repo := repository.NewCheckInRepository(dao.NewCheckInDAO(db))
	registrationRepo := repository.NewRegistrationRepository(dao.NewRegistrationDAO(db))
	sessionRepo := repository.NewSessionRepository(dao.NewSessionDAO(db))
	svc := service.NewCheckInService(repo, registrationRepo, sessionRepo, s.Config.CheckIn)
	handler := v1.NewCheckInHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	conferenceHandler *v1.ConferenceHandler,
	sessionHandler *v1.SessionHandler,
	registrationHandler *v1.RegistrationHandler,
	checkInHandler *v1.CheckInHandler,
) {
	const basePath = "/api/v1"

	public := s.Router.Group(basePath)
	{
		public.POST("/auth/signup", authHandler.HandleSignup)
		public.POST("/auth/login", authHandler.HandleLogin)

		public.GET("/conferences", conferenceHandler.HandleListConferences)
		public.GET("/conferences/:slug", conferenceHandler.HandleGetConference)
		public.GET("/conferences/:slug/sessions", sessionHandler.HandleListSessions)
		public.GET("/sessions/capacity", sessionHandler.HandleSessionCapacities)
		public.GET("/sessions/selectable", sessionHandler.HandleSelectableSessions)

		public.POST("/registrations/batch",
			middleware.RateLimit(s.redisClient, s.Config.Registration.RateLimitPerMinute),
			registrationHandler.HandleBatchRegister)
		public.POST("/registrations/confirm", registrationHandler.HandleConfirmRegistration)
	}

	admin := s.Router.Group(basePath+"/admin", middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		admin.POST("/conferences", conferenceHandler.HandleCreateConference)
		admin.PUT("/conferences/:slug", conferenceHandler.HandleUpdateConference)

		admin.POST("/sessions", sessionHandler.HandleCreateSession)
		admin.PUT("/sessions/:sessionID", sessionHandler.HandleUpdateSession)
		admin.DELETE("/sessions/:sessionID", sessionHandler.HandleDeleteSession)

		admin.GET("/sessions/:sessionID/registrations", registrationHandler.HandleListRegistrationsBySession)
		admin.GET("/conferences/:slug/registrations", registrationHandler.HandleListRegistrationsByConference)
		admin.DELETE("/registrations/:registrationID", registrationHandler.HandleDeleteRegistration)

		admin.POST("/check-ins", checkInHandler.HandleCheckIn)
		admin.POST("/bulk-checkin-registrations", checkInHandler.HandleBulkCheckIn)
		admin.GET("/sessions/:sessionID/check-ins", checkInHandler.HandleListCheckIns)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Conference Registration API"
	docs.SwaggerInfo.Description = "Session registration, capacity and check-in API for conferences."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}

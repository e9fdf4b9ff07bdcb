package main

import (
	"context"
	"os"
	"time"

	"gymbeauty/internal/config"
	"gymbeauty/internal/database"
	"gymbeauty/internal/handler"
	"gymbeauty/internal/middleware"
	"gymbeauty/internal/mirror"
	"gymbeauty/internal/repository"
	"gymbeauty/internal/service"
	"gymbeauty/internal/syncer"
	"gymbeauty/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Gym & Beauty Salon API
// @version         1.0
// @description     Membership, check-in, salon and point-of-sale backend with an optional Firestore mirror.
// @host            localhost:5000
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Info().Msg("no configs/.env file found, using environment")
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if gin.Mode() != gin.ReleaseMode {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	cfg := config.Load()

	db, err := database.NewConnection(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	log.Info().Str("driver", cfg.DBDriver).Msg("connected to database")

	// The mirror client is created once at startup and shared. An absent
	// credential set degrades the process to local-only mode; credentials that
	// are present but unusable are a deployment error and abort startup.
	var (
		mirrorClient *mirror.Client
		dataSyncer   *syncer.Syncer
	)
	if cfg.Firebase.Configured() {
		mirrorClient, err = mirror.NewClient(context.Background(), cfg.Firebase)
		if err != nil {
			log.Fatal().Err(err).Msg("mirror store initialization failed")
		}
		dataSyncer = syncer.New(db, mirrorClient)
		log.Info().Str("project", mirrorClient.ProjectID()).Msg("mirror store connected")
	} else {
		log.Warn().Strs("missing", cfg.Firebase.MissingFields()).Msg("mirror store not configured, running local-only")
	}

	wsHub := websocket.NewHub()
	go wsHub.Run()

	txManager := repository.NewTransactionManager(db)
	memberRepo := repository.NewMemberRepository(db)
	checkinRepo := repository.NewCheckInRepository(db)
	membershipRepo := repository.NewMembershipRepository(db)
	beautyRepo := repository.NewBeautyServiceRepository(db)
	gymInfoRepo := repository.NewGymInfoRepository(db)
	healthRepo := repository.NewBeautyHealthRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	userRepo := repository.NewUserRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	movementRepo := repository.NewMovementRepository(db)
	saleRepo := repository.NewSaleRepository(db)

	// A nil *mirror.Client must stay a nil interface inside the services.
	var memberMirror service.MemberMirror
	var beautyMirror service.BeautyMirror
	if mirrorClient != nil {
		memberMirror = mirrorClient
		beautyMirror = mirrorClient
	}

	memberService := service.NewMemberService(memberRepo, checkinRepo, membershipRepo, beautyRepo, gymInfoRepo, healthRepo, paymentRepo, txManager, memberMirror)
	checkinService := service.NewCheckInService(memberRepo, checkinRepo, wsHub)
	membershipService := service.NewMembershipService(memberRepo, membershipRepo, txManager)
	beautyService := service.NewBeautyService(memberRepo, beautyRepo, txManager, beautyMirror)
	paymentService := service.NewPaymentService(memberRepo, paymentRepo)
	statsService := service.NewStatsService(memberRepo, checkinRepo, membershipRepo, beautyRepo)
	userService := service.NewUserService(userRepo)
	appointmentService := service.NewAppointmentService(appointmentRepo, staffRepo, roomRepo, memberRepo, txManager)
	inventoryService := service.NewInventoryService(productRepo, categoryRepo, movementRepo, txManager, wsHub)
	saleService := service.NewSaleService(saleRepo, productRepo, movementRepo, memberRepo, txManager, wsHub)

	authHandler := handler.NewAuthHandler(userService)
	memberHandler := handler.NewMemberHandler(memberService)
	checkinHandler := handler.NewCheckInHandler(checkinService)
	membershipHandler := handler.NewMembershipHandler(membershipService, paymentService)
	beautyHandler := handler.NewBeautyHandler(beautyService)
	statsHandler := handler.NewStatsHandler(statsService, membershipService)
	syncHandler := handler.NewSyncHandler(dataSyncer, cfg.Firebase, wsHub)
	appointmentHandler := handler.NewAppointmentHandler(appointmentService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	saleHandler := handler.NewSaleHandler(saleService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log.Logger))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:5174"}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK", "mirror": mirrorClient != nil})
	})

	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	api := router.Group("/api")
	authHandler.RegisterRoutes(api)
	memberHandler.RegisterRoutes(api)
	checkinHandler.RegisterRoutes(api)
	membershipHandler.RegisterRoutes(api)
	beautyHandler.RegisterRoutes(api)
	statsHandler.RegisterRoutes(api)
	syncHandler.RegisterRoutes(api)
	appointmentHandler.RegisterRoutes(api)
	inventoryHandler.RegisterRoutes(api)
	saleHandler.RegisterRoutes(api)

	log.Info().Str("addr", cfg.Addr()).Msg("server listening")
	if err := router.Run(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

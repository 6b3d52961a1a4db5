package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/ventas-ops/internal/application/assignment"
	"github.com/tu-usuario/ventas-ops/internal/application/audit"
	"github.com/tu-usuario/ventas-ops/internal/application/auth"
	appauthz "github.com/tu-usuario/ventas-ops/internal/application/authz"
	"github.com/tu-usuario/ventas-ops/internal/application/reports"
	"github.com/tu-usuario/ventas-ops/internal/application/sales"
	"github.com/tu-usuario/ventas-ops/internal/application/usecase"
	infracache "github.com/tu-usuario/ventas-ops/internal/infrastructure/cache"
	infrapdf "github.com/tu-usuario/ventas-ops/internal/infrastructure/pdf"
	"github.com/tu-usuario/ventas-ops/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/ventas-ops/internal/interfaces/http"
	"github.com/tu-usuario/ventas-ops/pkg/config"
	"github.com/tu-usuario/ventas-ops/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	permRepo := postgres.NewPermissionRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	catalogRepo := postgres.NewCatalogRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	auditRec := audit.NewRecorder(auditRepo, log)

	// Caché de permisos: opcional, solo si REDIS_ADDR está definido.
	var ruleCache appauthz.RuleCache
	if cfg.Redis.Enabled() {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("Redis no responde, arrancando sin caché de permisos")
		} else {
			ruleCache = infracache.NewPermissionCache(redisClient, cfg.Redis.TTL, log)
			log.Info().Str("addr", cfg.Redis.Addr).Msg("caché de permisos habilitada")
		}
	}

	permSvc := appauthz.NewService(permRepo, userRepo, ruleCache, auditRec, log)
	catalogUC := usecase.NewCatalogUseCase(catalogRepo)

	// Estado pendiente para el ranking de carga: env var manda; si no, se
	// resuelve desde el catálogo.
	pendingStatusID := cfg.Assignment.PendingStatusID
	if pendingStatusID == "" {
		pendingStatusID, err = catalogUC.ResolvePendingStatusID(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("resolver estado pendiente del catálogo")
		}
		if pendingStatusID == "" {
			log.Warn().Msg("ningún estado marcado como pendiente; el ranking de carga contará cero")
		}
	}

	engine := assignment.NewEngine(userRepo, saleRepo, pendingStatusID, cfg.Assignment.CandidateTimeout, log)

	salesUC := sales.NewUseCase(saleRepo, permSvc, engine, auditRec)
	maintenanceUC := sales.NewMaintenanceUseCase(saleRepo, txRunner, auditRec)
	userUC := usecase.NewUserUseCase(userRepo, permSvc, auditRec)

	pdfGenerator := infrapdf.NewMarotoReportGenerator()
	reportUC := reports.NewPDFUseCase(saleRepo, pdfGenerator)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Ventas Ops API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		Permissions:   permSvc,
		SalesUC:       salesUC,
		MaintenanceUC: maintenanceUC,
		UserUC:        userUC,
		CatalogUC:     catalogUC,
		ReportUC:      reportUC,
		Audit:         auditRec,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

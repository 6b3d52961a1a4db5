// seed_permissions siembra las reglas por defecto de la matriz de permisos:
// las pestañas base (ventas, panel general, reportes, resumen) permitidas para
// todos los roles excepto creator, que no lleva reglas.
//
// Es idempotente: una clave que ya tiene cualquier regla no se toca, así las
// decisiones de los administradores sobreviven a re-ejecuciones y deploys.
//
// Uso: go run ./cmd/seed_permissions
package main

import (
	"context"
	"time"

	"github.com/tu-usuario/ventas-ops/internal/application/audit"
	appauthz "github.com/tu-usuario/ventas-ops/internal/application/authz"
	domauthz "github.com/tu-usuario/ventas-ops/internal/domain/authz"
	"github.com/tu-usuario/ventas-ops/internal/infrastructure/postgres"
	"github.com/tu-usuario/ventas-ops/pkg/config"
	"github.com/tu-usuario/ventas-ops/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	permRepo := postgres.NewPermissionRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	auditRec := audit.NewRecorder(auditRepo, log)

	svc := appauthz.NewService(permRepo, userRepo, nil, auditRec, log)

	for _, tab := range domauthz.DefaultTabs {
		if err := svc.SeedDefaults(ctx, tab, domauthz.SeedableRoles, true); err != nil {
			log.Fatal().Err(err).Str("resource_key", tab).Msg("sembrar defaults")
		}
	}

	log.Info().Int("tabs", len(domauthz.DefaultTabs)).Msg("seeding de permisos completado")
}

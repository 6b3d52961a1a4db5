package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/ventas-ops/internal/application/audit"
	"github.com/tu-usuario/ventas-ops/internal/application/auth"
	appauthz "github.com/tu-usuario/ventas-ops/internal/application/authz"
	"github.com/tu-usuario/ventas-ops/internal/application/reports"
	"github.com/tu-usuario/ventas-ops/internal/application/sales"
	"github.com/tu-usuario/ventas-ops/internal/application/usecase"
	domauthz "github.com/tu-usuario/ventas-ops/internal/domain/authz"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	Permissions   *appauthz.Service
	SalesUC       *sales.UseCase
	MaintenanceUC *sales.MaintenanceUseCase
	UserUC        *usecase.UserUseCase
	CatalogUC     *usecase.CatalogUseCase
	ReportUC      *reports.PDFUseCase
	Audit         *audit.Recorder
	JWTSecret     string
}

// Router registra las rutas de la API. Las operaciones destructivas y los
// reportes llevan su regla button:* de la matriz como middleware; el resto de
// autorización fina ocurre dentro de los casos de uso.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Permisos (protegido)
	perms := protected.Group("/permissions")
	permHandler := NewPermissionHandler(deps.Permissions)
	perms.Get("/", permHandler.List)
	perms.Get("/check", permHandler.Check)
	perms.Put("/", permHandler.Upsert)

	// Ventas (protegido)
	salesGroup := protected.Group("/sales", RequirePermission(domauthz.ResTabSales, deps.Permissions))
	saleHandler := NewSaleHandler(deps.SalesUC, deps.MaintenanceUC)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Post("/clear", RequirePermission(domauthz.ResButtonClearBD, deps.Permissions), saleHandler.Clear)
	salesGroup.Post("/restore", RequirePermission(domauthz.ResButtonRestoreBD, deps.Permissions), saleHandler.Restore)
	salesGroup.Delete("/", RequirePermission(domauthz.ResButtonDeleteBD, deps.Permissions), saleHandler.Truncate)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Patch("/:id/field", saleHandler.UpdateField)

	// Usuarios (protegido)
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id/role", userHandler.UpdateRole)
	users.Put("/:id/active", userHandler.ToggleActive)
	users.Put("/:id/skills", userHandler.SetSkills)

	// Catálogos (protegido; altas solo desde la pestaña de configuración)
	catalogs := protected.Group("/catalogs")
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	catalogs.Get("/products", catalogHandler.ListProducts)
	catalogs.Get("/statuses", catalogHandler.ListStatuses)
	catalogs.Get("/campaigns", catalogHandler.ListCampaigns)
	configGate := RequirePermission(domauthz.ResTabConfig, deps.Permissions)
	catalogs.Post("/products", configGate, catalogHandler.CreateProduct)
	catalogs.Post("/statuses", configGate, catalogHandler.CreateStatus)
	catalogs.Post("/campaigns", configGate, catalogHandler.CreateCampaign)

	// Auditoría (protegido, tab admin)
	auditGroup := protected.Group("/audit-logs", RequirePermission(domauthz.ResTabAuditLogs, deps.Permissions))
	auditHandler := NewAuditHandler(deps.Audit)
	auditGroup.Get("/", auditHandler.List)

	// Reportes (protegido)
	reportsGroup := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reportsGroup.Get("/sales", RequirePermission(domauthz.ResButtonTeamReport, deps.Permissions), reportHandler.SalesReport)
}

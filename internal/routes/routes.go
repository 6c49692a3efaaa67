package routes

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-system/internal/controllers"
	"inventory-system/internal/repositories"
	"inventory-system/internal/services"
	"inventory-system/pkg/middleware"
	"inventory-system/pkg/service"
)

// Controllers groups every HTTP handler set mounted under /api.
type Controllers struct {
	Office   *controllers.OfficeController
	Persona  *controllers.PersonaController
	Category *controllers.CategoryController
	Material *controllers.MaterialController
	Report   *controllers.ReportController
}

// InitRouter wires repositories, services and controllers on top of the pool
// and mounts them. jwtSvc may be nil, in which case no route is guarded.
func InitRouter(
	e *echo.Echo,
	dbConn *pgxpool.Pool,
	publisher services.EventPublisher,
	jwtSvc service.JWTService,
	timeout time.Duration,
	logger *zap.Logger,
) {
	logger.Info("InitRouter: creating routes")

	txManager := repositories.NewTxManager(dbConn, logger)

	officeRepo := repositories.NewOfficeRepository(dbConn, logger)
	personaRepo := repositories.NewPersonaRepository(dbConn, logger)
	categoryRepo := repositories.NewCategoryRepository(dbConn, logger)
	materialRepo := repositories.NewMaterialRepository(dbConn, logger)
	historyRepo := repositories.NewAssignmentHistoryRepository(dbConn, logger)

	officeService := services.NewOfficeService(officeRepo, materialRepo, txManager, logger)
	personaService := services.NewPersonaService(personaRepo, officeRepo, txManager, logger)
	categoryService := services.NewCategoryService(categoryRepo, txManager, logger)
	materialService := services.NewMaterialService(
		materialRepo, categoryRepo, officeRepo, personaRepo, historyRepo,
		txManager, publisher, logger,
	)
	reportService := services.NewReportService(materialRepo, logger)

	ctrls := Controllers{
		Office:   controllers.NewOfficeController(officeService, timeout, logger),
		Persona:  controllers.NewPersonaController(personaService, timeout, logger),
		Category: controllers.NewCategoryController(categoryService, timeout, logger),
		Material: controllers.NewMaterialController(materialService, timeout, logger),
		Report:   controllers.NewReportController(reportService, timeout, logger),
	}

	RegisterRoutes(e, ctrls, WriteGuards(jwtSvc, logger))

	logger.Info("InitRouter: routes created", zap.Bool("auth", jwtSvc != nil))
}

// WriteGuards returns the middleware chain for mutating routes: a valid
// bearer token with a writing role. Nil when auth is disabled.
func WriteGuards(jwtSvc service.JWTService, logger *zap.Logger) []echo.MiddlewareFunc {
	if jwtSvc == nil {
		return nil
	}
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)
	return []echo.MiddlewareFunc{authMW.Auth, authMW.RequireWriter}
}

func RegisterRoutes(e *echo.Echo, ctrls Controllers, guards []echo.MiddlewareFunc) {
	api := e.Group("/api")

	runOfficeRouter(api, ctrls.Office, guards)
	runPersonaRouter(api, ctrls.Persona, guards)
	runCategoryRouter(api, ctrls.Category, guards)
	// Export is registered before /materiales/:id.
	runReportRouter(api, ctrls.Report)
	runMaterialRouter(api, ctrls.Material, guards)
}

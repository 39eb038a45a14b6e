package bootstrap

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/locvowork/sheetpreview/internal/config"
	"github.com/locvowork/sheetpreview/internal/domain"
	"github.com/locvowork/sheetpreview/internal/handler"
	"github.com/locvowork/sheetpreview/internal/logger"
	"github.com/locvowork/sheetpreview/internal/repository"
	"github.com/locvowork/sheetpreview/internal/service"
	"github.com/locvowork/sheetpreview/internal/state"
	"github.com/locvowork/sheetpreview/pkg/googlecloud"
	"github.com/locvowork/sheetpreview/pkg/preview"
)

type App struct {
	Echo  *echo.Echo
	Store *state.Store
	GCP   *googlecloud.Client
}

func NewApp() *App {
	return &App{
		Echo: echo.New(),
	}
}

func (a *App) Initialize(ctx context.Context) error {
	// Load environment configuration
	if err := config.LoadEnvConfig(); err != nil {
		return fmt.Errorf("failed to load env config: %w", err)
	}

	// Initialize logging
	logger.InitLogging(config.DefaultEnvConfig.LOG_FILE_PATH)
	if err := logger.SetLevel(config.DefaultEnvConfig.LOG_LEVEL); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	logger.InfoLog(ctx, "Environment variables loaded successfully")

	layout, err := preview.LoadLayout(config.DefaultEnvConfig.PREVIEW_LAYOUT_PATH)
	if err != nil {
		return fmt.Errorf("failed to load preview layout: %w", err)
	}

	// Upload log: Datastore when a project is configured, memory otherwise
	var uploads domain.UploadRepository
	if projectID := config.DefaultEnvConfig.GCP_PROJECT_ID; projectID != "" {
		gcpClient, err := googlecloud.NewClient(ctx, projectID)
		if err != nil {
			return fmt.Errorf("failed to initialize GCP client: %w", err)
		}
		a.GCP = gcpClient
		uploads = repository.NewUploadRepository(gcpClient)
		logger.InfoLog(ctx, "Upload log stored in Datastore project %s", projectID)
	} else {
		uploads = repository.NewMemoryUploadRepository(config.DefaultEnvConfig.UPLOAD_LOG_LIMIT)
	}

	// Initialize dependencies
	a.Store = state.NewStore()
	sheetSvc := service.NewSheetService(a.Store, uploads, layout)
	sheetHandler := handler.NewSheetHandler(sheetSvc, config.DefaultEnvConfig.UPLOAD_LOG_LIMIT)

	// Register Middlewares
	a.RegisterMiddlewares()

	// Register Routes
	a.RegisterRoutes(sheetHandler)

	return nil
}

func (a *App) RegisterMiddlewares() {
	a.Echo.Use(middleware.RequestID())
	a.Echo.Use(requestContext)
	a.Echo.Use(middleware.Logger())
	a.Echo.Use(middleware.Recover())
	a.Echo.Use(middleware.CORS())
	a.Echo.Use(middleware.BodyLimit(config.DefaultEnvConfig.MAX_UPLOAD_SIZE))
}

// requestContext puts the request id into the request context for logging.
func requestContext(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
			req := c.Request()
			c.SetRequest(req.WithContext(logger.WithRequestID(req.Context(), id)))
		}
		return next(c)
	}
}

func (a *App) RegisterRoutes(sheetHandler *handler.SheetHandler) {
	a.Echo.GET("/", sheetHandler.IndexHandler)

	sheetGroup := a.Echo.Group("/api/sheets")
	sheetGroup.POST("", sheetHandler.UploadHandler)
	sheetGroup.GET("/current", sheetHandler.CurrentHandler)
	sheetGroup.GET("/export", sheetHandler.ExportHandler)
	sheetGroup.GET("/preview", sheetHandler.PreviewHandler)

	a.Echo.GET("/api/uploads", sheetHandler.UploadsHandler)
}

func (a *App) Run() error {
	defer logger.Close()
	defer a.Store.Close()
	if a.GCP != nil {
		defer a.GCP.Close()
	}
	return a.Echo.Start(":" + config.DefaultEnvConfig.APP_PORT)
}

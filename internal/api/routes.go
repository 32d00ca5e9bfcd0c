package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"cvBuilder/internal/api/middleware"
	"cvBuilder/internal/auth"
	"cvBuilder/internal/cv"
	"cvBuilder/internal/notify"
	"cvBuilder/internal/store"
)

// Dependencies 汇总路由所需的服务；字段为 nil 的可选依赖会关闭对应能力。
type Dependencies struct {
	DB             *gorm.DB
	Sessions       *auth.SessionService
	Workspace      *cv.Workspace
	Records        *store.RecordRepository
	Publisher      notify.Publisher
	Photos         PhotoProcessor
	RateCounter    RateCounter
	Exporter       Exporter
	Enqueuer       TaskEnqueuer
	Objects        ExportObjects
	Purger         SessionPurger
	WsHandler      *WsHandler
	Logger         *slog.Logger
	MaxPhotoBytes  int64
	UploadsPerHour int
	Export         ExportOptions
}

// RegisterRoutes 注册 /v1 下的业务路由。
func RegisterRoutes(router *gin.Engine, deps Dependencies) {
	publisher := deps.Publisher
	if publisher == nil {
		publisher = notify.NopPublisher{}
	}

	sessionHandler := NewSessionHandler(deps.Sessions, deps.Workspace, deps.DB, deps.Purger, deps.Logger)
	cvHandler := NewCVHandler(deps.Workspace, deps.Records, publisher, deps.Logger)
	photoHandler := NewPhotoHandler(deps.Workspace, deps.Photos, publisher, deps.RateCounter, deps.Logger, deps.MaxPhotoBytes, deps.UploadsPerHour)
	exportHandler := NewExportHandler(deps.DB, deps.Workspace, deps.Exporter, deps.Enqueuer, deps.Objects, publisher, deps.Logger, deps.Export)
	sessionMiddleware := middleware.SessionMiddleware(deps.Sessions)

	v1 := router.Group("/v1")
	{
		v1.POST("/sessions", sessionHandler.Create)
		v1.DELETE("/sessions", sessionMiddleware, sessionHandler.End)
		if deps.WsHandler != nil {
			v1.GET("/ws", deps.WsHandler.HandleConnection)
		}

		cvGroup := v1.Group("/cv")
		cvGroup.Use(sessionMiddleware)
		{
			cvGroup.GET("", cvHandler.GetRecord)
			cvGroup.PUT("/personal", cvHandler.UpdatePersonal)
			cvGroup.GET("/preview", cvHandler.Preview)
			cvGroup.POST("/save", cvHandler.Save)
			cvGroup.POST("/load", cvHandler.Load)
			cvGroup.GET("/columns/:section", cvHandler.Columns)

			cvGroup.POST("/photo", photoHandler.Upload)
			cvGroup.DELETE("/photo", cvHandler.ClearPhoto)

			cvGroup.GET("/export", exportHandler.Download)
			cvGroup.POST("/exports", exportHandler.Enqueue)
			cvGroup.GET("/exports/:id", exportHandler.Status)
			cvGroup.GET("/exports/:id/download-link", exportHandler.DownloadLink)
			cvGroup.GET("/exports/:id/file", exportHandler.File)

			cvGroup.POST("/:section", cvHandler.AddEntry)
			cvGroup.POST("/:section/reorder", cvHandler.Reorder)
			cvGroup.PUT("/:section/:id", cvHandler.UpdateEntry)
			cvGroup.DELETE("/:section/:id", cvHandler.RemoveEntry)
		}
	}
}

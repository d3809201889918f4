package router

import (
	"html/template"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fleettrack/internal/server/handlers"
	"fleettrack/internal/server/templates"
)

// New wires the Gin engine with required routes and middlewares.
func New(records *handlers.RecordHandler, exports *handlers.ExportHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.SetHTMLTemplate(template.Must(template.ParseFS(templates.FS, "*.html")))

	r.GET("/", records.Index)
	r.GET("/search", records.SearchPage)
	r.GET("/update", records.UpdateForm)
	r.POST("/update", records.SubmitUpdate)
	r.GET("/delete", records.DeleteForm)
	r.POST("/delete", records.DeleteRecords)
	r.GET("/download/csv", exports.DownloadCSV)
	r.GET("/download/excel", exports.DownloadExcel)
	r.GET("/download/pdf", exports.DownloadPDF)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}

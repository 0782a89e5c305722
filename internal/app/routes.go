package app

import (
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/zeroclick/core/internal/middleware"
	"github.com/zeroclick/core/internal/modules/extraction"
	"github.com/zeroclick/core/internal/modules/genai"
	"github.com/zeroclick/core/internal/modules/ingestion"
	"github.com/zeroclick/core/internal/modules/records"
	"github.com/zeroclick/core/internal/modules/search"
	"github.com/zeroclick/core/internal/modules/uploads"
	pkgredis "github.com/zeroclick/core/internal/pkg/redis"
	"github.com/zeroclick/core/internal/pkg/response"
)

func (a *App) registerRoutes(rc *pkgredis.Client, model genai.Client, s3Client *s3.Client) {
	r := a.router
	cfg := a.cfg

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	store := records.NewStore(a.db)
	extractor := extraction.NewExtractor(model, store, cfg.CRM.VoiceTranscriptMax, a.logger)
	guard := search.NewGuard(model, cfg.CRM.FullTableName(), cfg.CRM.QueryRowLimit, a.logger)
	transcriber := ingestion.NewWhisperTranscriber(s3Client, cfg.Transcribe)
	pipeline := ingestion.NewPipeline(a.db, rc, transcriber, extractor, a.logger)
	broker := uploads.NewBroker(s3.NewPresignClient(s3Client), cfg.Storage)

	idempotenceMW := middleware.Idempotence(rc.Raw())

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		response.OK(c, gin.H{"status": "ok", "time": time.Now().UTC(), "env": cfg.Env})
	})

	extraction.NewHandler(extractor, a.logger).RegisterRoutes(api, idempotenceMW)
	search.NewHandler(guard, store, a.logger).RegisterRoutes(api)
	records.NewHandler(store, a.logger).RegisterRoutes(api)
	uploads.NewHandler(broker, a.logger).RegisterRoutes(api)
	ingestion.NewHandler(pipeline, a.logger).RegisterRoutes(api)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"name": "zeroclick-core", "status": "running"})
	})
}

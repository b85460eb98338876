package assembly

import (
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/txix-open/isp-kit/http/httpcli"
	"github.com/txix-open/isp-kit/log"

	"ai-assist-service/cache"
	"ai-assist-service/conf"
	"ai-assist-service/handler"
	"ai-assist-service/middleware"
	"ai-assist-service/repository"
	"ai-assist-service/service"
)

type Locator struct {
	logger log.Logger
}

func NewLocator(logger log.Logger) Locator {
	return Locator{
		logger: logger,
	}
}

func (l Locator) Handler(config conf.Remote, redisCli redis.UniversalClient) http.Handler {
	quotaRepo := repository.NewQuota(redisCli)
	quotaService := service.NewQuota(quotaRepo, config.DailyLimit.RequestsPerDay, l.logger)

	dispatcher := service.NewDispatcher(httpcli.New(), config.Gemini.AttemptTimeout(), l.logger)
	resolver := service.NewResolver(config.DailyLimit.RequestsPerDay)
	answerCache := cache.NewAnswers(time.Duration(config.Caching.AnswerInSec) * time.Second)
	assistant := service.NewAssistant(quotaService, dispatcher, resolver, answerCache, config.Gemini.Candidates())

	assistantHandler := handler.NewAssistant(assistant, quotaService)

	middlewares := []middleware.Middleware{
		middleware.RequestId(config.EnableClientRequestIdForwarding),
		middleware.Logger(
			l.logger,
			config.Logging.RequestLogEnable,
			config.Logging.BodyLogEnable,
			config.Logging.ForceUnescapingUnicode,
		),
		middleware.ErrorHandler(l.logger),
		middleware.DeviceIdentity(),
	}
	generateMiddlewares := middlewares
	if config.Throttling != nil {
		throttlingRepo := repository.NewThrottling(redisCli)
		throttlingService := service.NewThrottling(throttlingRepo, config.Throttling.RequestsPerSeconds)
		generateMiddlewares = append(generateMiddlewares, middleware.Throttling(throttlingService))
	}

	maxRequestBodySize := config.Http.MaxRequestBodySizeInMb * 1024 * 1024 //nolint:gomnd

	mux := http.NewServeMux()
	mux.Handle("POST /api/assistant/generate", middleware.Entrypoint(
		maxRequestBodySize,
		middleware.Chain(middleware.HandlerFunc(assistantHandler.Generate), generateMiddlewares...),
		l.logger,
	))
	mux.Handle("GET /api/assistant/quota", middleware.Entrypoint(
		maxRequestBodySize,
		middleware.Chain(middleware.HandlerFunc(assistantHandler.Quota), middlewares...),
		l.logger,
	))

	return mux
}

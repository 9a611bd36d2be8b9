package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"meanrevert/internal/domain"
	"meanrevert/internal/logger"
	"meanrevert/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

type ApiHandler struct {
	MeanReversionService service.MeanReversionService
	PerformanceService   service.PerformanceService
	Metrics              *Metrics
}

func NewApiHandler(mrs service.MeanReversionService, ps service.PerformanceService) *ApiHandler {
	return &ApiHandler{
		MeanReversionService: mrs,
		PerformanceService:   ps,
		Metrics:              NewMetrics(),
	}
}

func (m ApiHandler) InitializeRouterEngine() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())
	router.Use(requestIDMiddleware)
	router.Use(m.Metrics.Middleware)

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "welcome to meanrevert"})
	})
	router.POST("/screen", m.screen)
	router.POST("/compare", m.compare)
	router.GET("/metrics", gin.WrapH(m.Metrics.Handler()))

	return router
}

func (m ApiHandler) StartApi(port int) error {
	return m.InitializeRouterEngine().Run(fmt.Sprintf(":%d", port))
}

func returnErrorJson(err error, c *gin.Context) {
	returnErrorJsonCode(err, c, statusFor(err))
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	logger.FromContext(c.Request.Context()).Errorw("request failed", "status", code, "error", err)
	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidDateRange),
		errors.Is(err, domain.ErrEmptyPortfolio),
		errors.Is(err, domain.ErrInsufficientData):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrDataUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// requestIDMiddleware tags the request and its logger with an id,
// reusing the caller's when one is sent
func requestIDMiddleware(c *gin.Context) {
	requestID := c.GetHeader(RequestIDHeader)
	if requestID == "" {
		requestID = uuid.New().String()
	}
	c.Writer.Header().Set(RequestIDHeader, requestID)

	log := logger.FromContext(c.Request.Context()).With(
		"requestID", requestID,
		"method", c.Request.Method,
		"route", c.Request.URL.Path,
	)
	c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context(), log))

	start := time.Now()
	c.Next()
	log.Infow("request completed", "status", c.Writer.Status(), "durationMs", time.Since(start).Milliseconds())
}

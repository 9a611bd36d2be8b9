package api

import (
	"fmt"

	"meanrevert/internal/calculator"
	"meanrevert/internal/domain"
	"meanrevert/internal/service"

	"github.com/gin-gonic/gin"
)

type comparePortfolioEntry struct {
	Symbol string  `json:"symbol" binding:"required"`
	Name   string  `json:"name" binding:"required"`
	Weight float64 `json:"weight"`
}

type compareRequest struct {
	Portfolio []comparePortfolioEntry `json:"portfolio" binding:"required,min=1"`
	Start     string                  `json:"start" binding:"required"`
	End       string                  `json:"end" binding:"required"`
	Capital   float64                 `json:"capital" binding:"required,gt=0"`
}

type metricsResponse struct {
	AnnualizedReturn float64 `json:"annualizedReturn"`
	AnnualizedStdev  float64 `json:"annualizedStdev"`
	SharpeRatio      float64 `json:"sharpeRatio"`
	MaxDrawdown      float64 `json:"maxDrawdown"`
}

type seriesResponse struct {
	Symbol  string           `json:"symbol,omitempty"`
	Name    string           `json:"name"`
	Values  []float64        `json:"values"`
	Metrics *metricsResponse `json:"metrics"`
}

type compareResponse struct {
	Axis       []float64          `json:"axis"`
	Ticks      []int              `json:"ticks"`
	References []seriesResponse   `json:"references"`
	Portfolio  seriesResponse     `json:"portfolio"`
	Holdings   map[string]float64 `json:"holdings"`
	Capital    float64            `json:"capital"`
}

func (h ApiHandler) compare(c *gin.Context) {
	var requestBody compareRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	entries := make([]domain.PortfolioEntry, 0, len(requestBody.Portfolio))
	for _, e := range requestBody.Portfolio {
		entries = append(entries, domain.PortfolioEntry{
			Symbol: e.Symbol,
			Name:   e.Name,
			Weight: e.Weight,
		})
	}

	result, err := h.PerformanceService.Compare(c.Request.Context(), service.CompareInput{
		Portfolio: entries,
		Start:     requestBody.Start,
		End:       requestBody.End,
		Capital:   requestBody.Capital,
	})
	if err != nil {
		returnErrorJson(fmt.Errorf("failed to compare portfolio: %w", err), c)
		return
	}

	c.JSON(200, toCompareResponse(result))
}

func toMetricsResponse(m *calculator.CalculateMetricsResult) *metricsResponse {
	if m == nil {
		return nil
	}
	return &metricsResponse{
		AnnualizedReturn: m.AnnualizedReturn,
		AnnualizedStdev:  m.AnnualizedStdev,
		SharpeRatio:      m.SharpeRatio,
		MaxDrawdown:      m.MaxDrawdown,
	}
}

func toCompareResponse(result *service.CompareResult) compareResponse {
	out := compareResponse{
		Axis:       result.Axis,
		Ticks:      result.Ticks,
		References: []seriesResponse{},
		Portfolio: seriesResponse{
			Name:    "portfolio",
			Values:  result.Portfolio,
			Metrics: toMetricsResponse(result.PortfolioMetrics),
		},
		Holdings: map[string]float64{},
		Capital:  result.Capital,
	}
	for _, ref := range result.References {
		out.References = append(out.References, seriesResponse{
			Symbol:  ref.Symbol,
			Name:    ref.Name,
			Values:  ref.Values,
			Metrics: toMetricsResponse(ref.Metrics),
		})
	}
	for name, shares := range result.Holdings {
		out.Holdings[name] = shares.InexactFloat64()
	}
	return out
}

package api

import (
	"fmt"
	"time"

	"meanrevert/internal/repository"
	"meanrevert/internal/service"

	"github.com/gin-gonic/gin"
)

type screenCompany struct {
	Symbol string `json:"symbol" binding:"required"`
	Name   string `json:"name"`
}

type screenRequest struct {
	Companies []screenCompany `json:"companies" binding:"required,min=1"`
	Start     string          `json:"start" binding:"required"`
	End       string          `json:"end" binding:"required"`
	Threshold float64         `json:"threshold" binding:"required"`
}

type classifiedCompanyResponse struct {
	Symbol       string  `json:"symbol"`
	Name         string  `json:"name"`
	CurrentPrice float64 `json:"currentPrice"`
	Mu           float64 `json:"mu"`
	ZScore       float64 `json:"zScore"`
	Weight       float64 `json:"weight"`
}

type companyResponse struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

type screenResponse struct {
	Total        int                         `json:"total"`
	Read         int                         `json:"read"`
	NonReverting []companyResponse           `json:"nonReverting"`
	Reverting    []companyResponse           `json:"reverting"`
	Long         []classifiedCompanyResponse `json:"long"`
	Short        []classifiedCompanyResponse `json:"short"`
	Allocation   map[string]float64          `json:"allocation"`
}

func (h ApiHandler) screen(c *gin.Context) {
	var requestBody screenRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	start, err := time.Parse(time.DateOnly, requestBody.Start)
	if err != nil {
		returnErrorJsonCode(fmt.Errorf("invalid start date: %w", err), c, 400)
		return
	}
	end, err := time.Parse(time.DateOnly, requestBody.End)
	if err != nil {
		returnErrorJsonCode(fmt.Errorf("invalid end date: %w", err), c, 400)
		return
	}
	if requestBody.Threshold <= 0 || requestBody.Threshold >= 1 {
		returnErrorJsonCode(fmt.Errorf("threshold must be between 0 and 1, got %f", requestBody.Threshold), c, 400)
		return
	}

	listings := make([]repository.CompanyListing, 0, len(requestBody.Companies))
	for _, company := range requestBody.Companies {
		listings = append(listings, repository.CompanyListing{
			Symbol: company.Symbol,
			Name:   company.Name,
		})
	}

	result, err := h.MeanReversionService.Screen(c.Request.Context(), service.ScreenInput{
		Companies: listings,
		Start:     start,
		End:       end,
		Threshold: requestBody.Threshold,
	})
	if err != nil {
		returnErrorJson(fmt.Errorf("failed to screen companies: %w", err), c)
		return
	}
	if h.Metrics != nil {
		h.Metrics.RecordScreen(result.Total-result.Read, len(result.NonReverting), len(result.Long), len(result.Short))
	}

	c.JSON(200, toScreenResponse(result))
}

func toScreenResponse(result *service.ScreenResult) screenResponse {
	out := screenResponse{
		Total:        result.Total,
		Read:         result.Read,
		NonReverting: []companyResponse{},
		Reverting:    []companyResponse{},
		Long:         []classifiedCompanyResponse{},
		Short:        []classifiedCompanyResponse{},
		Allocation:   map[string]float64{},
	}
	for _, c := range result.NonReverting {
		out.NonReverting = append(out.NonReverting, companyResponse{Symbol: c.Symbol, Name: c.Name})
	}
	for _, c := range result.Reverting {
		out.Reverting = append(out.Reverting, companyResponse{Symbol: c.Symbol, Name: c.Name})
	}
	for _, c := range result.Long {
		out.Long = append(out.Long, classifiedCompanyResponse{
			Symbol:       c.Symbol,
			Name:         c.Name,
			CurrentPrice: c.CurrentPrice(),
			Mu:           c.Mu,
			ZScore:       c.ZScore,
			Weight:       result.Allocation[c.Identifier()],
		})
	}
	for _, c := range result.Short {
		out.Short = append(out.Short, classifiedCompanyResponse{
			Symbol:       c.Symbol,
			Name:         c.Name,
			CurrentPrice: c.CurrentPrice(),
			Mu:           c.Mu,
			ZScore:       c.ZScore,
			Weight:       result.Allocation[c.Identifier()],
		})
	}
	for id, w := range result.Allocation {
		out.Allocation[id] = w
	}
	return out
}

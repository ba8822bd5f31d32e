package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"equity-intel/internal/intelligence"
	"equity-intel/internal/sentiment"
)

// DefaultConfidence is used when a request omits confidence
const DefaultConfidence = 50.0

const maxTickerLen = 15

// intelligenceRequest is the POST body
type intelligenceRequest struct {
	Ticker     string             `json:"ticker" binding:"required"`
	Prediction string             `json:"prediction" binding:"required"`
	Confidence *float64           `json:"confidence" binding:"omitempty,min=0,max=100"`
	Indicators map[string]float64 `json:"indicators"`
	Closes     []float64          `json:"closes"`
}

// queryIndicators maps query parameters to indicator keys
var queryIndicators = map[string]string{
	"ma20":   sentiment.KeyMA20,
	"ma50":   sentiment.KeyMA50,
	"rsi":    sentiment.KeyRSI,
	"macd":   sentiment.KeyMACD,
	"return": sentiment.KeyReturn,
	"volume": sentiment.KeyVolume,
}

func validTicker(ticker string) bool {
	t := strings.TrimSpace(ticker)
	if t == "" || len(t) > maxTickerLen {
		return false
	}
	for _, r := range t {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		case r == '.', r == '-', r == '^', r == '=':
		default:
			return false
		}
	}
	return true
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

func (s *Server) getIntelligence(c *gin.Context) {
	ticker := c.Param("ticker")
	if !validTicker(ticker) {
		badRequest(c, fmt.Sprintf("invalid ticker %q", ticker))
		return
	}

	prediction := c.Query("prediction")
	if strings.TrimSpace(prediction) == "" {
		badRequest(c, "prediction is required")
		return
	}

	confidence := DefaultConfidence
	if v := c.Query("confidence"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || !intelligence.ValidConfidence(f) {
			badRequest(c, "confidence must be a number between 0 and 100")
			return
		}
		confidence = f
	}

	indicators := sentiment.Indicators{}
	for param, key := range queryIndicators {
		v := c.Query(param)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			badRequest(c, fmt.Sprintf("%s must be a number", param))
			return
		}
		indicators[key] = f
	}

	s.respond(c, intelligence.Request{
		Ticker:     ticker,
		Prediction: prediction,
		Indicators: indicators,
		Confidence: confidence,
	})
}

func (s *Server) postIntelligence(c *gin.Context) {
	var body intelligenceRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err.Error())
		return
	}
	if !validTicker(body.Ticker) {
		badRequest(c, fmt.Sprintf("invalid ticker %q", body.Ticker))
		return
	}

	confidence := DefaultConfidence
	if body.Confidence != nil {
		if !intelligence.ValidConfidence(*body.Confidence) {
			badRequest(c, "confidence must be a number between 0 and 100")
			return
		}
		confidence = *body.Confidence
	}

	s.respond(c, intelligence.Request{
		Ticker:     body.Ticker,
		Prediction: body.Prediction,
		Indicators: sentiment.Indicators(body.Indicators),
		Confidence: confidence,
		Closes:     body.Closes,
	})
}

func (s *Server) respond(c *gin.Context, req intelligence.Request) {
	report := s.runner.RunIntelligence(c.Request.Context(), req)
	if report == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no report produced"})
		return
	}
	c.JSON(http.StatusOK, report)
}

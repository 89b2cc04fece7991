package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/b3stream/internal/domain/dto"
	"github.com/guttosm/b3stream/internal/service"
)

const (
	defaultLimit = 100
	maxLimit     = 1000
)

// Handler provides HTTP handlers for collected trade endpoints.
//
// Responsibilities:
//   - Validate incoming HTTP query parameters
//   - Interact with the service layer for data access
//   - Translate results into response DTOs
//   - Return structured JSON responses with appropriate HTTP status codes
type Handler struct {
	svc service.TradesService
}

// NewHandler constructs a new Handler instance.
//
// Parameters:
//   - svc (service.TradesService): Service dependency used for querying trades.
//
// Returns:
//   - *Handler: A handler ready to be registered with the router.
func NewHandler(svc service.TradesService) *Handler {
	return &Handler{svc: svc}
}

// GetTrades handles GET /api/v1/trades requests.
//
// Query Parameters:
//   - ticker (string, required): Instrument symbol (e.g., "CBIO"). Uppercased.
//   - limit (int, optional): Max rows to return (default 100, cap 1000).
//
// Responses:
//   - 200 OK: Returns TradesResponse with the most recent rows, newest first.
//   - 400 Bad Request: Missing or invalid query parameters.
//   - 404 Not Found: No trades collected for the given ticker.
//   - 500 Internal Server Error: Failure in the service or database layer.
func (h *Handler) GetTrades(c *gin.Context) {
	ticker := strings.ToUpper(strings.TrimSpace(c.Query("ticker")))
	if ticker == "" {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("ticker is required", nil))
		return
	}

	limit := defaultLimit
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid limit, expected positive integer", err))
			return
		}
		if n > maxLimit {
			n = maxLimit
		}
		limit = n
	}

	rows, err := h.svc.ListTrades(c.Request.Context(), ticker, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to fetch trades", err))
		return
	}
	if len(rows) == 0 {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("no data found", nil))
		return
	}

	resp := dto.TradesResponse{
		Ticker: ticker,
		Count:  len(rows),
		Trades: make([]dto.TradeRow, 0, len(rows)),
	}
	for _, r := range rows {
		resp.Trades = append(resp.Trades, dto.TradeRow{
			Date:     r.Date,
			Time:     r.Time,
			Ticker:   r.Ticker,
			Quantity: r.Quantity,
			Price:    r.Price,
			Volume:   r.Volume,
			Type:     r.Type,
			Canceled: r.Canceled,
		})
	}

	c.JSON(http.StatusOK, resp)
}

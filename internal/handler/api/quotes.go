package api

import (
	"time"

	models "FreightIQ/internal/domain/models"
	"FreightIQ/internal/usecase"
	xhttp "FreightIQ/pkg/http"
	xlogger "FreightIQ/pkg/logger"

	"github.com/labstack/echo/v4"
)

// QuotesHandler exposes the quoting API over Echo.
type QuotesHandler struct {
	logger    *xlogger.Logger
	quoter    *usecase.Quoter
	recorder  *usecase.EventRecorder
	analytics *usecase.AnalyticsService
}

func NewQuotesHandler(
	logger *xlogger.Logger,
	quoter *usecase.Quoter,
	recorder *usecase.EventRecorder,
	analytics *usecase.AnalyticsService,
) *QuotesHandler {
	return &QuotesHandler{logger: logger, quoter: quoter, recorder: recorder, analytics: analytics}
}

func (h *QuotesHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.POST("/predict-rate", h.PredictRate)
	g.POST("/confirm-booking", h.ConfirmBooking)
	g.POST("/decline-quote", h.DeclineQuote)
	g.GET("/analytics", h.Analytics)
	g.GET("/health", h.Health)
}

func (h *QuotesHandler) PredictRate(c echo.Context) error {
	req := &models.PredictRateRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, "origin, destination, cargoType and weight are required", verr)
	}

	quote, err := h.quoter.GetQuote(c.Request().Context(), req.QuoteRequest())
	if err != nil {
		h.logger.Error("predict rate failed", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, quote)
}

func (h *QuotesHandler) ConfirmBooking(c echo.Context) error {
	req := &models.ConfirmBookingRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, "requestId, bookingId and finalPrice are required", verr)
	}

	ev, err := h.recorder.ConfirmBooking(c.Request().Context(), *req)
	if err != nil {
		h.logger.Error("confirm booking failed", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"success":   true,
		"message":   "Booking confirmed",
		"bookingId": ev.BookingID,
		"timestamp": ev.LoggedAt,
	})
}

func (h *QuotesHandler) DeclineQuote(c echo.Context) error {
	req := &models.DeclineQuoteRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, "requestId is required", verr)
	}

	ev, err := h.recorder.DeclineQuote(c.Request().Context(), *req)
	if err != nil {
		h.logger.Error("decline quote failed", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"success":   true,
		"message":   "Quote declined",
		"timestamp": ev.LoggedAt,
	})
}

func (h *QuotesHandler) Analytics(c echo.Context) error {
	report, err := h.analytics.Report(c.Request().Context())
	if err != nil {
		h.logger.Error("analytics failed", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, report)
}

func (h *QuotesHandler) Health(c echo.Context) error {
	status := "healthy"
	if err := h.recorder.Health(c.Request().Context()); err != nil {
		status = "degraded"
		h.logger.Warn("store health check failed", xlogger.Error(err))
	}
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"status":    status,
		"service":   "freight-rate-api",
		"timestamp": time.Now().UTC(),
	})
}

package ws

import (
	"net/http"
	"time"

	models "FreightIQ/internal/domain/models"
	domsvc "FreightIQ/internal/domain/service"
	xhttp "FreightIQ/pkg/http"
	xlogger "FreightIQ/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// MarketFeedHandler streams live market snapshots for one lane over a
// WebSocket. Each tick re-samples current conditions, so consecutive
// frames differ the same way repeated REST calls would.
type MarketFeedHandler struct {
	logger   *xlogger.Logger
	market   domsvc.MarketSource
	interval time.Duration

	upgrader websocket.Upgrader
}

func NewMarketFeedHandler(logger *xlogger.Logger, market domsvc.MarketSource, interval time.Duration) *MarketFeedHandler {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &MarketFeedHandler{
		logger:   logger,
		market:   market,
		interval: interval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

func (h *MarketFeedHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/market-feed", h.Stream)
}

func (h *MarketFeedHandler) Stream(c echo.Context) error {
	req := &models.MarketFeedRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, "origin and destination are required", verr)
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx := c.Request().Context()
	h.logger.Info("market feed opened",
		xlogger.String("origin", req.Origin),
		xlogger.String("destination", req.Destination),
		xlogger.String("remote", conn.RemoteAddr().String()),
	)

	// Drain incoming frames so close/ping frames are processed.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	if err := h.writeSnapshot(c, conn, req); err != nil {
		return nil
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-done:
			h.logger.Info("market feed closed", xlogger.String("remote", conn.RemoteAddr().String()))
			return nil
		case <-ticker.C:
			if err := h.writeSnapshot(c, conn, req); err != nil {
				return nil
			}
		}
	}
}

func (h *MarketFeedHandler) writeSnapshot(c echo.Context, conn *websocket.Conn, req *models.MarketFeedRequest) error {
	md, err := h.market.MarketData(c.Request().Context(), req.Origin, req.Destination, req.CargoType)
	if err != nil {
		h.logger.Warn("market feed sample failed", xlogger.Error(err))
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	if err := conn.WriteJSON(md); err != nil {
		h.logger.Warn("market feed write failed", xlogger.Error(err))
		return err
	}
	return nil
}

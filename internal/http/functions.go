package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/meki101/mekitech.co.ke/internal/logger"
	"github.com/meki101/mekitech.co.ke/internal/model"
	"github.com/meki101/mekitech.co.ke/internal/notify"
	"go.uber.org/zap"
)

var functionCORSHeaders = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Methods": "GET, POST, PUT, DELETE, OPTIONS",
	"Access-Control-Allow-Headers": "Content-Type, Authorization, X-Client-Info, Apikey",
}

// functionCORS sets permissive CORS headers on every response and answers
// preflight requests with 200.
func functionCORS(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		h := c.Response().Header()
		for k, v := range functionCORSHeaders {
			h.Set(k, v)
		}
		if c.Request().Method == http.MethodOptions {
			return c.NoContent(http.StatusOK)
		}
		return next(c)
	}
}

// sendInquiryConfirmationHandler builds the client and admin emails for an
// inquiry and reports success. No mail is sent.
func sendInquiryConfirmationHandler(emails *notify.Builder) echo.HandlerFunc {
	return func(c echo.Context) error {
		body, err := io.ReadAll(io.LimitReader(c.Request().Body, 1<<20))
		if err != nil {
			return functionError(c, err)
		}
		var inq model.InquiryEnvelope
		if err := json.Unmarshal(body, &inq); err != nil {
			return functionError(c, err)
		}

		msgs, err := emails.Build(inq)
		if err != nil {
			return functionError(c, err)
		}
		logger.Log.Info("inquiry confirmation prepared",
			zap.String("inquiry_id", inq.ID),
			zap.String("client_to", msgs.Client.To),
			zap.String("admin_to", msgs.Admin.To),
			zap.Int("client_bytes", len(msgs.Client.HTML)),
			zap.Int("admin_bytes", len(msgs.Admin.HTML)),
		)

		return c.JSON(http.StatusOK, map[string]any{
			"success":    true,
			"message":    "Confirmation emails prepared; delivery is disabled",
			"inquiry_id": inq.ID,
		})
	}
}

func functionError(c echo.Context, err error) error {
	logger.Log.Warn("send-inquiry-confirmation failed", zap.Error(err))
	return c.JSON(http.StatusBadRequest, map[string]any{
		"success": false,
		"error":   err.Error(),
	})
}

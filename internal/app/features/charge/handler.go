// internal/app/features/charge/handler.go
package charge

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/congregate/internal/app/system/apierr"
	"github.com/dalemusser/congregate/internal/app/system/httpjson"
	"github.com/dalemusser/congregate/internal/app/system/payments"
	"github.com/dalemusser/congregate/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Handler proxies one-off charges to the payment provider.
type Handler struct {
	Payments *payments.Client
	Log      *zap.Logger
}

func NewHandler(p *payments.Client, logger *zap.Logger) *Handler {
	return &Handler{Payments: p, Log: logger}
}

type chargeRequest struct {
	Amount      int64  `json:"amount"` // smallest currency unit
	Currency    string `json:"currency"`
	Source      string `json:"source"`
	Description string `json:"description"`
}

// HandleCharge handles POST /charge.
func (h *Handler) HandleCharge(w http.ResponseWriter, r *http.Request) {
	var req chargeRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	if req.Amount <= 0 {
		httpjson.WriteError(w, h.Log, apierr.New(apierr.Validation, "amount must be a positive integer"))
		return
	}
	if strings.TrimSpace(req.Currency) == "" || strings.TrimSpace(req.Source) == "" {
		httpjson.WriteError(w, h.Log, apierr.New(apierr.Validation, "currency and source fields are required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	res, err := h.Payments.Charge(ctx, payments.ChargeRequest{
		Amount:      req.Amount,
		Currency:    req.Currency,
		Source:      req.Source,
		Description: req.Description,
	})
	if err != nil {
		httpjson.WriteError(w, h.Log, apierr.Wrap(apierr.Provider, "charge failed", err))
		return
	}

	h.Log.Info("charge completed",
		zap.String("charge_id", res.ID),
		zap.Int64("amount", req.Amount),
		zap.String("currency", req.Currency))
	httpjson.Write(w, http.StatusOK, res)
}

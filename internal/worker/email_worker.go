package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/infra"
	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/model"

	"github.com/rs/zerolog/log"
)

// LowStockAlertPayload is the job envelope for post-closure restock emails.
type LowStockAlertPayload struct {
	ToEmail  string                  `json:"to_email"`
	Business string                  `json:"business"`
	Date     string                  `json:"date"`
	Products []model.LowStockProduct `json:"products"`
}

// LowStockWorker sends the restock alert email queued after a daily closure.
type LowStockWorker struct {
	mailer *infra.Mailer
}

func NewLowStockWorker(mailer *infra.Mailer) *LowStockWorker {
	return &LowStockWorker{mailer: mailer}
}

func (w *LowStockWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload LowStockAlertPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		// A malformed payload will never succeed; log and drop.
		log.Error().Err(err).Msg("low_stock_worker: invalid payload")
		return nil
	}
	if payload.ToEmail == "" || len(payload.Products) == 0 {
		return nil
	}

	subject := fmt.Sprintf("[%s] Low stock after closure %s", payload.Business, payload.Date)
	if err := w.mailer.Send(payload.ToEmail, subject, buildAlertBody(payload)); err != nil {
		return fmt.Errorf("send low stock alert: %w", err)
	}
	log.Info().
		Str("to", payload.ToEmail).
		Int("products", len(payload.Products)).
		Msg("low stock alert sent")
	return nil
}

func buildAlertBody(p LowStockAlertPayload) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Daily closure %s left the following products at or below their minimum stock:\n\n", p.Date)
	for _, prod := range p.Products {
		fmt.Fprintf(&b, "  - %s: %d on hand (minimum %d), suggested order %d\n",
			prod.ProductName, prod.CurrentStock, prod.MinStock, prod.SuggestedOrder)
	}
	b.WriteString("\nThis alert was generated automatically by the closure process.\n")
	return b.String()
}

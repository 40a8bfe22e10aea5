package worker

// receipt_worker.go
// Renders a PDF receipt for every committed sale into the receipt directory.

import (
	"context"
	"encoding/json"
	"fmt"

	"pdv/internal/infra"
	"pdv/internal/model"

	"github.com/rs/zerolog/log"
)

// ReceiptJobPayload carries the immutable sale snapshot, so the worker never
// reads the live state.
type ReceiptJobPayload struct {
	Sale model.Sale `json:"sale"`
}

type ReceiptWorker struct {
	storeName   string
	storagePath string
}

func NewReceiptWorker(storeName, storagePath string) *ReceiptWorker {
	return &ReceiptWorker{storeName: storeName, storagePath: storagePath}
}

func (w *ReceiptWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload ReceiptJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("receipt_worker: invalid payload: %w", err)
	}
	if payload.Sale.ID == "" {
		return fmt.Errorf("receipt_worker: payload without sale id")
	}
	path, err := infra.WriteReceiptFile(&payload.Sale, w.storeName, w.storagePath)
	if err != nil {
		return fmt.Errorf("receipt_worker: %w", err)
	}
	log.Info().Str("pdf", path).Str("sale_id", payload.Sale.ID).Msg("receipt_worker: PDF generated")
	return nil
}

package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"pdv/internal/dto"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// StockAlertsKey is a Redis hash of productId → latest alert JSON.
const StockAlertsKey = "alerts:stock"

// StockAlertWorker records the latest low-stock alert per product.
type StockAlertWorker struct {
	rdb *redis.Client
}

func NewStockAlertWorker(rdb *redis.Client) *StockAlertWorker {
	return &StockAlertWorker{rdb: rdb}
}

func (w *StockAlertWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var alert dto.StockAlert
	if err := json.Unmarshal(raw, &alert); err != nil {
		return fmt.Errorf("stock_alert_worker: invalid payload: %w", err)
	}
	if alert.ProductID == "" {
		return fmt.Errorf("stock_alert_worker: payload without product id")
	}
	if err := w.rdb.HSet(ctx, StockAlertsKey, alert.ProductID, string(raw)).Err(); err != nil {
		return fmt.Errorf("stock_alert_worker: %w", err)
	}
	log.Warn().
		Str("product_id", alert.ProductID).
		Str("product", alert.Name).
		Int("total_stock", alert.TotalStock).
		Int("min_stock", alert.MinStock).
		Msg("stock_alert_worker: product at or below minimum stock")
	return nil
}

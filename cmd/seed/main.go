// cmd/seed/main.go: seeds a demo catalog into the configured storage.
// Usage: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"pdv/internal/config"
	"pdv/internal/dto"
	"pdv/internal/repository"
	"pdv/internal/service"
	"pdv/internal/store"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type demoProduct struct {
	input  dto.ProductInput
	stocks []dto.FormValue // per demo warehouse, in order
}

var demoWarehouses = []dto.FormValue{"Loja Centro", "Depósito Norte"}

var demoCatalog = []demoProduct{
	{dto.ProductInput{Name: "Café torrado 500g", Category: "Mercearia", SKU: "CAF-500", Barcode: "7891000100103", Price: "24.90", Cost: "15.20", MinStock: "10"}, []dto.FormValue{"18", "40"}},
	{dto.ProductInput{Name: "Açúcar refinado 1kg", Category: "Mercearia", SKU: "ACU-1K", Barcode: "7896000000019", Price: "5.49", Cost: "3.10", MinStock: "20"}, []dto.FormValue{"35", "120"}},
	{dto.ProductInput{Name: "Leite integral 1L", Category: "Laticínios", SKU: "LEI-1L", Unit: "cx", Price: "4.99", Cost: "3.60", MinStock: "24"}, []dto.FormValue{"12", "0"}},
	{dto.ProductInput{Name: "Pão de queijo congelado", Category: "Congelados", SKU: "PDQ-400", Unit: "pct", Price: "16.50", Cost: "9.80"}, []dto.FormValue{"8", "15"}},
	{dto.ProductInput{Name: "Sabão em pó 1kg", Category: "Limpeza", SKU: "SAB-1K", Price: "13.90", Cost: "8.75", Status: "inactive"}, []dto.FormValue{"0", "6"}},
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	repo, backends, err := repository.OpenStateBlobRepository(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open storage")
	}
	defer backends.Close()

	ctx := context.Background()
	ctrl := service.NewController(ctx, store.New(repo, cfg.StorageKey, cfg.DefaultWarehouseName), service.ControllerOptions{
		PaymentMethods: cfg.PaymentMethods(),
	})
	defer ctrl.Close(ctx)

	if n := len(ctrl.Products(dto.ProductFilter{})); n > 0 {
		fmt.Printf("catalog already has %d products, nothing to do\n", n)
		return
	}

	var warehouseIDs []string
	for _, name := range demoWarehouses {
		res, err := ctrl.Dispatch(ctx, dto.AddWarehouse{Name: name})
		if err != nil {
			log.Fatal().Err(err).Str("warehouse", string(name)).Msg("add warehouse")
		}
		warehouseIDs = append(warehouseIDs, res.Warehouse.ID)
	}

	for _, p := range demoCatalog {
		for i, q := range p.stocks {
			if _, err := ctrl.Dispatch(ctx, dto.SetDraftStock{WarehouseID: warehouseIDs[i], Quantity: q}); err != nil {
				log.Fatal().Err(err).Msg("set draft stock")
			}
		}
		res, err := ctrl.Dispatch(ctx, dto.SaveProduct{Input: p.input})
		if err != nil {
			log.Fatal().Err(err).Str("product", string(p.input.Name)).Msg("save product")
		}
		if res.Warning != "" {
			log.Fatal().Str("product", string(p.input.Name)).Msg(res.Warning)
		}
	}

	fmt.Printf("seeded %d warehouses and %d products into %s storage\n", len(warehouseIDs), len(demoCatalog), cfg.StorageDriver)
}

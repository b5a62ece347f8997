package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/samvad-hq/produto-client/internal/config"
	"github.com/samvad-hq/produto-client/internal/domain"
	"github.com/samvad-hq/produto-client/internal/logger"
	"github.com/samvad-hq/produto-client/internal/service"
	"github.com/samvad-hq/produto-client/internal/storage"
	"github.com/samvad-hq/produto-client/pkg/produto"
	"github.com/samvad-hq/produto-client/pkg/publishers"
)

// Runner drives the demonstration: list every product, then look one up by
// id, printing human-readable lines to out. Fetched products are optionally
// written to the snapshot store and exported to the configured publishers.
type Runner struct {
	cfg     *config.Config
	service *service.ProductService
	store   storage.Store
	fanout  *publishers.Fanout
	out     io.Writer
	log     logger.Logger
}

// NewRunner wires the typed client, façade, snapshot store and export sinks from config.
func NewRunner(ctx context.Context, cfg *config.Config, log logger.Logger, out io.Writer) (*Runner, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	log = logger.Ensure(log)
	if out == nil {
		out = io.Discard
	}
	if ctx == nil {
		ctx = context.Background()
	}

	if cfg.AuthToken == "" {
		log.WarnObj("auth token is empty; requests will be sent without Authorization", "api_base_url", cfg.APIBaseURL)
	}
	client := produto.NewClient(cfg.APIBaseURL, cfg.AuthToken, cfg.RequestTimeout)

	store, err := storage.NewStore(cfg.SnapshotType, cfg.BBoltPath, storage.Options{
		ProductTTL:      cfg.SnapshotTTL,
		CleanupInterval: cfg.SnapshotCleanupInterval,
	})
	if err != nil {
		return nil, fmt.Errorf("init snapshot store: %w", err)
	}
	if storage.Enabled(store) {
		log.InfoObj("snapshot store initialized", "snapshot_config", map[string]any{
			"type":        cfg.SnapshotType,
			"path":        cfg.BBoltPath,
			"ttl_seconds": int(cfg.SnapshotTTL.Seconds()),
		})
	}

	fanout, err := buildFanout(ctx, cfg.PublishersFile, log)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	return &Runner{
		cfg:     cfg,
		service: service.NewProductService(client, log),
		store:   store,
		fanout:  fanout,
		out:     out,
		log:     log,
	}, nil
}

func buildFanout(ctx context.Context, path string, log logger.Logger) (*publishers.Fanout, error) {
	if path == "" {
		return publishers.NewFanout(nil), nil
	}

	reg, err := publishers.LoadRegistry(path)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}
	enabled := reg.Enabled()
	pubs, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabled, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}

	summaries := make([]map[string]string, 0, len(enabled))
	for _, c := range enabled {
		summaries = append(summaries, map[string]string{"id": c.ID, "type": c.Type})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(summaries),
		"publishers": summaries,
	})
	return publishers.NewFanout(pubs), nil
}

// Run executes the demonstration sequence once. Façade failures are already
// logged and only change what is printed; the returned error covers output,
// snapshot and export problems.
func (r *Runner) Run(ctx context.Context) error {
	if r == nil || r.service == nil {
		return fmt.Errorf("runner is not initialized")
	}
	start := time.Now()

	var fetched []domain.Product
	var errs []error

	all := r.service.GetAllProducts(ctx)
	if err := r.printAll(all); err != nil {
		errs = append(errs, err)
	}
	if all.OK() {
		fetched = append(fetched, all.Products...)
	}

	id := r.cfg.ProductID
	one := r.service.GetProductByID(ctx, id)
	if err := r.printOne(id, one); err != nil {
		errs = append(errs, err)
	}
	if one.OK() {
		fetched = append(fetched, one.Product)
	}

	if err := r.snapshot(fetched); err != nil {
		errs = append(errs, err)
	}
	if err := r.export(ctx, fetched); err != nil {
		errs = append(errs, err)
	}

	r.log.InfoObj("demonstration completed", "run_meta", map[string]any{
		"all_products_outcome": all.Outcome.String(),
		"products_count":       len(all.Products),
		"product_id":           id,
		"product_outcome":      one.Outcome.String(),
		"elapsed_ms":           time.Since(start).Milliseconds(),
	})
	return errors.Join(errs...)
}

func (r *Runner) printAll(res service.ProductsResult) error {
	if !res.OK() || len(res.Products) == 0 {
		_, err := fmt.Fprintln(r.out, "Nenhum produto encontrado.")
		return err
	}
	if _, err := fmt.Fprintln(r.out, "Todos os produtos:"); err != nil {
		return err
	}
	for _, p := range res.Products {
		if _, err := fmt.Fprintln(r.out, p.String()); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) printOne(id int, res service.ProductResult) error {
	if !res.OK() {
		_, err := fmt.Fprintf(r.out, "Produto com ID %d não encontrado.\n", id)
		return err
	}
	_, err := fmt.Fprintf(r.out, "\nProduto com ID %d:\n%s\n", id, res.Product)
	return err
}

func (r *Runner) snapshot(products []domain.Product) error {
	if !storage.Enabled(r.store) || len(products) == 0 {
		return nil
	}
	if err := r.store.SaveProducts(products); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	r.log.DebugObj("snapshot saved", "snapshot_meta", map[string]any{"products_count": len(products)})
	return nil
}

func (r *Runner) export(ctx context.Context, products []domain.Product) error {
	if r.fanout.Size() == 0 || len(products) == 0 {
		return nil
	}

	var errs []error
	delivered := 0
	for _, p := range products {
		n, err := r.fanout.Publish(ctx, publishers.NewEvent(r.cfg.APIBaseURL, p))
		delivered += n
		if err != nil {
			errs = append(errs, fmt.Errorf("export product %d: %w", p.ID, err))
		}
	}
	r.log.InfoObj("products exported", "export_meta", map[string]any{
		"products_count":   len(products),
		"publishers_count": r.fanout.Size(),
		"deliveries":       delivered,
	})
	return errors.Join(errs...)
}

// Close releases the snapshot store and export sinks, logging any errors encountered.
func (r *Runner) Close() {
	if r == nil {
		return
	}
	if r.store != nil {
		if err := r.store.Close(); err != nil {
			r.log.ErrorObj("snapshot store close failed", "error", err)
		}
	}
	if err := r.fanout.Close(); err != nil {
		r.log.ErrorObj("publishers close failed", "error", err)
	}
}

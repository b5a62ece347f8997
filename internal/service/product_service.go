package service

import (
	"context"
	"errors"

	"github.com/samvad-hq/produto-client/internal/domain"
	"github.com/samvad-hq/produto-client/internal/logger"
	"github.com/samvad-hq/produto-client/pkg/produto"
)

// Outcome classifies how a façade call ended.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeNotFound
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeNotFound:
		return "not_found"
	default:
		return "failed"
	}
}

// ProductAPI is the subset of the typed client the service calls.
type ProductAPI interface {
	AllProducts(ctx context.Context) ([]domain.Product, error)
	ProductByID(ctx context.Context, id int) (domain.Product, error)
}

// ProductsResult is the outcome of GetAllProducts. Products is nil unless Outcome is OutcomeOK.
type ProductsResult struct {
	Products []domain.Product
	Outcome  Outcome
	Err      error
}

// OK reports whether the call succeeded.
func (r ProductsResult) OK() bool { return r.Outcome == OutcomeOK }

// ProductResult is the outcome of GetProductByID. Product is the zero value unless Outcome is OutcomeOK.
type ProductResult struct {
	Product domain.Product
	Outcome Outcome
	Err     error
}

// OK reports whether the call succeeded.
func (r ProductResult) OK() bool { return r.Outcome == OutcomeOK }

// ProductService shields callers from client errors: every failure is logged
// once and reported through the result's Outcome.
type ProductService struct {
	api ProductAPI
	log logger.Logger
}

// NewProductService wires the façade around a typed client.
func NewProductService(api ProductAPI, log logger.Logger) *ProductService {
	return &ProductService{api: api, log: logger.Ensure(log)}
}

// GetAllProducts fetches the full catalog.
func (s *ProductService) GetAllProducts(ctx context.Context) ProductsResult {
	products, err := s.api.AllProducts(ctx)
	if err != nil {
		outcome := classify(err)
		s.log.ErrorObj("failed to get all products", "product_error", map[string]any{
			"operation": produto.OpAllProducts,
			"outcome":   outcome.String(),
			"error":     err.Error(),
		})
		return ProductsResult{Outcome: outcome, Err: err}
	}
	return ProductsResult{Products: products, Outcome: OutcomeOK}
}

// GetProductByID fetches one product.
func (s *ProductService) GetProductByID(ctx context.Context, id int) ProductResult {
	product, err := s.api.ProductByID(ctx, id)
	if err != nil {
		outcome := classify(err)
		s.log.ErrorObj("failed to get product by id", "product_error", map[string]any{
			"operation": produto.OpProductByID,
			"id":        id,
			"outcome":   outcome.String(),
			"error":     err.Error(),
		})
		return ProductResult{Outcome: outcome, Err: err}
	}
	return ProductResult{Product: product, Outcome: OutcomeOK}
}

func classify(err error) Outcome {
	if errors.Is(err, produto.ErrNotFound) {
		return OutcomeNotFound
	}
	return OutcomeFailed
}

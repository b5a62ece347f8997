package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/samvad-hq/produto-client/internal/domain"
	"github.com/samvad-hq/produto-client/internal/logger"
	"github.com/samvad-hq/produto-client/pkg/produto"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeAPI struct {
	products []domain.Product
	product  domain.Product
	err      error
	calls    int
}

func (f *fakeAPI) AllProducts(context.Context) ([]domain.Product, error) {
	f.calls++
	return f.products, f.err
}

func (f *fakeAPI) ProductByID(context.Context, int) (domain.Product, error) {
	f.calls++
	return f.product, f.err
}

func observedService(api ProductAPI) (*ProductService, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return NewProductService(api, logger.FromZap(zap.New(core))), logs
}

func TestGetAllProductsSuccess(t *testing.T) {
	want := []domain.Product{{ID: 1, Name: "Widget", Description: "A widget"}}
	svc, logs := observedService(&fakeAPI{products: want})

	res := svc.GetAllProducts(context.Background())
	if !res.OK() || res.Err != nil {
		t.Fatalf("expected success, got %+v", res)
	}
	if len(res.Products) != 1 || res.Products[0] != want[0] {
		t.Fatalf("unexpected products %+v", res.Products)
	}
	if logs.Len() != 0 {
		t.Fatalf("expected no logs on success, got %d", logs.Len())
	}
}

func TestGetAllProductsFailureLogsOnce(t *testing.T) {
	api := &fakeAPI{err: &produto.TransportError{Operation: produto.OpAllProducts, Err: errors.New("dial tcp: no such host")}}
	svc, logs := observedService(api)

	res := svc.GetAllProducts(context.Background())
	if res.OK() || res.Outcome != OutcomeFailed {
		t.Fatalf("expected failed outcome, got %v", res.Outcome)
	}
	if res.Products != nil {
		t.Fatalf("expected nil products on failure, got %+v", res.Products)
	}
	if api.calls != 1 {
		t.Fatalf("expected a single attempt, got %d", api.calls)
	}
	if logs.Len() != 1 {
		t.Fatalf("expected exactly one log line, got %d", logs.Len())
	}
	fields := logs.All()[0].ContextMap()["product_error"].(map[string]any)
	if !strings.Contains(fields["error"].(string), "no such host") {
		t.Fatalf("log does not describe failure: %v", fields)
	}
}

func TestGetProductByIDNotFoundAgainstServer(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	svc, logs := observedService(produto.NewClient(srv.URL, "tok", time.Second))

	res := svc.GetProductByID(context.Background(), 999)
	if res.Outcome != OutcomeNotFound {
		t.Fatalf("expected not found outcome, got %v (%v)", res.Outcome, res.Err)
	}
	if res.Product != (domain.Product{}) {
		t.Fatalf("expected zero product, got %+v", res.Product)
	}
	if logs.Len() != 1 {
		t.Fatalf("expected exactly one log line, got %d", logs.Len())
	}
	fields := logs.All()[0].ContextMap()["product_error"].(map[string]any)
	if fmt.Sprint(fields["id"]) != "999" {
		t.Fatalf("expected id 999 in log fields, got %v", fields)
	}
}

func TestUnreachableHostBothOperationsFail(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	svc, logs := observedService(produto.NewClient(url, "tok", time.Second))

	all := svc.GetAllProducts(context.Background())
	one := svc.GetProductByID(context.Background(), 1)
	if all.Outcome != OutcomeFailed || one.Outcome != OutcomeFailed {
		t.Fatalf("expected failed outcomes, got %v and %v", all.Outcome, one.Outcome)
	}
	if logs.Len() != 2 {
		t.Fatalf("expected one log line per failed call, got %d", logs.Len())
	}
}

func TestGetProductByIDSuccess(t *testing.T) {
	svc, _ := observedService(&fakeAPI{product: domain.Product{ID: 1, Name: "Widget"}})
	res := svc.GetProductByID(context.Background(), 1)
	if !res.OK() || res.Product.ID != 1 {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestOutcomeString(t *testing.T) {
	if OutcomeOK.String() != "ok" || OutcomeNotFound.String() != "not_found" || OutcomeFailed.String() != "failed" {
		t.Fatalf("unexpected outcome names")
	}
}

package app

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/samvad-hq/produto-client/internal/config"
)

type produtoStub struct {
	mu    sync.Mutex
	paths []string
	auth  []string
}

func (s *produtoStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.paths = append(s.paths, r.URL.Path)
	s.auth = append(s.auth, r.Header.Get("Authorization"))
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/Produto/AllProdutos":
		fmt.Fprint(w, `[{"id":1,"name":"Widget","description":"A widget"}]`)
	case "/Produto/ProdutosById/1":
		fmt.Fprint(w, `{"id":1,"name":"Widget","description":"A widget"}`)
	default:
		http.NotFound(w, r)
	}
}

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		AppName:        "produto-client",
		APIBaseURL:     baseURL,
		AuthToken:      "SeuTokenDeAutorizacaoAqui",
		RequestTimeout: 2 * time.Second,
		ProductID:      1,
		SnapshotType:   "none",
	}
}

func TestRunPrintsProducts(t *testing.T) {
	stub := &produtoStub{}
	srv := httptest.NewServer(stub)
	defer srv.Close()

	var out bytes.Buffer
	runner, err := NewRunner(context.Background(), testConfig(srv.URL), nil, &out)
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	defer runner.Close()

	if err := runner.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := "Todos os produtos:\n" +
		"ID: 1, Nome: Widget, Descrição: A widget\n" +
		"\nProduto com ID 1:\n" +
		"ID: 1, Nome: Widget, Descrição: A widget\n"
	if out.String() != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", out.String(), want)
	}

	if len(stub.paths) != 2 || stub.paths[0] != "/Produto/AllProdutos" || stub.paths[1] != "/Produto/ProdutosById/1" {
		t.Fatalf("expected list then by-id, got %v", stub.paths)
	}
	for _, a := range stub.auth {
		if a != "Bearer SeuTokenDeAutorizacaoAqui" {
			t.Fatalf("unexpected Authorization %q", a)
		}
	}
}

func TestRunEmptyCatalogPrintsNoProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/Produto/AllProdutos":
			fmt.Fprint(w, `[]`)
		case "/Produto/ProdutosById/1":
			fmt.Fprint(w, `{"id":1,"name":"Widget","description":"A widget"}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	var out bytes.Buffer
	runner, err := NewRunner(context.Background(), testConfig(srv.URL), nil, &out)
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	defer runner.Close()

	if err := runner.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := "Nenhum produto encontrado.\n" +
		"\nProduto com ID 1:\n" +
		"ID: 1, Nome: Widget, Descrição: A widget\n"
	if out.String() != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", out.String(), want)
	}
}

func TestRunNotFound(t *testing.T) {
	srv := httptest.NewServer(&produtoStub{})
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.ProductID = 999

	var out bytes.Buffer
	runner, err := NewRunner(context.Background(), cfg, nil, &out)
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	defer runner.Close()

	if err := runner.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "Produto com ID 999 não encontrado.") {
		t.Fatalf("expected not found line, got:\n%s", out.String())
	}
}

func TestRunUnreachableHostCompletes(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	var out bytes.Buffer
	runner, err := NewRunner(context.Background(), testConfig(url), nil, &out)
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	defer runner.Close()

	if err := runner.Run(context.Background()); err != nil {
		t.Fatalf("Run should swallow api failures, got %v", err)
	}
	want := "Nenhum produto encontrado.\nProduto com ID 1 não encontrado.\n"
	if out.String() != want {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}

func TestRunSnapshotsAndExportsFetchedProducts(t *testing.T) {
	api := httptest.NewServer(&produtoStub{})
	defer api.Close()

	var (
		mu     sync.Mutex
		events int
	)
	sink := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		mu.Lock()
		events++
		mu.Unlock()
		w.WriteHeader(http.StatusAccepted)
	}))
	defer sink.Close()

	dir := t.TempDir()
	pubFile := filepath.Join(dir, "publishers.yaml")
	raw := fmt.Sprintf("publishers:\n  - id: hook\n    type: http\n    http:\n      url: %s\n", sink.URL)
	if err := os.WriteFile(pubFile, []byte(raw), 0o644); err != nil {
		t.Fatalf("write publishers file: %v", err)
	}

	cfg := testConfig(api.URL)
	cfg.SnapshotType = "bbolt"
	cfg.BBoltPath = filepath.Join(dir, "catalog.db")
	cfg.SnapshotTTL = time.Hour
	cfg.SnapshotCleanupInterval = time.Hour
	cfg.PublishersFile = pubFile

	runner, err := NewRunner(context.Background(), cfg, nil, nil)
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	defer runner.Close()

	if err := runner.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if events != 2 {
		t.Fatalf("expected one event per fetched product (2), got %d", events)
	}
	p, found, err := runner.store.Product(1)
	if err != nil || !found {
		t.Fatalf("expected product 1 in snapshot, found=%v err=%v", found, err)
	}
	if p.Name != "Widget" {
		t.Fatalf("unexpected snapshot product %+v", p)
	}
}

func TestNewRunnerRejectsBadPublishersFile(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1")
	cfg.PublishersFile = filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := NewRunner(context.Background(), cfg, nil, nil); err == nil {
		t.Fatalf("expected error for missing publishers file")
	}
}

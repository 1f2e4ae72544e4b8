package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-supermercado/internal/adapter/repository"
	"github.com/hugohenrick/pdv-supermercado/internal/domain/inventory"
	"github.com/hugohenrick/pdv-supermercado/internal/domain/product"
	"github.com/shopspring/decimal"
)

// fakeInventoryRepository aplica as operações sobre um único produto em
// memória usando os mesmos construtores de domínio do repositório real
type fakeInventoryRepository struct {
	product   *product.Product
	movements []*inventory.Movement
}

func (f *fakeInventoryRepository) apply(productID string, build func(p *product.Product) (*inventory.Movement, error)) (*product.Product, *inventory.Movement, error) {
	if f.product == nil || f.product.ID != productID {
		return nil, nil, repository.ErrProductNotFound
	}
	m, err := build(f.product)
	if err != nil {
		return nil, nil, err
	}
	f.product.Stock = m.StockAfter
	f.movements = append(f.movements, m)
	return f.product, m, nil
}

func (f *fakeInventoryRepository) Restock(_ context.Context, productID string, quantity int, note string, batch *inventory.BatchInput, actor inventory.Actor) (*product.Product, *inventory.Movement, error) {
	return f.apply(productID, func(p *product.Product) (*inventory.Movement, error) {
		return inventory.NewRestock(p.ID, p.Name, quantity, p.Stock, actor.UserID, actor.Email, note)
	})
}

func (f *fakeInventoryRepository) Adjust(_ context.Context, productID string, newStock int, note string, actor inventory.Actor) (*product.Product, *inventory.Movement, error) {
	return f.apply(productID, func(p *product.Product) (*inventory.Movement, error) {
		return inventory.NewAdjustment(p.ID, p.Name, newStock, p.Stock, actor.UserID, actor.Email, note)
	})
}

func (f *fakeInventoryRepository) WriteOffBatch(_ context.Context, productID, batchID, note string, actor inventory.Actor) (*product.Product, *inventory.Movement, int, error) {
	var removed int
	p, m, err := f.apply(productID, func(p *product.Product) (*inventory.Movement, error) {
		qty, err := p.WriteOffBatch(batchID)
		if err != nil {
			return nil, err
		}
		removed = qty
		return inventory.NewExpiredWriteOff(p.ID, p.Name, qty, p.Stock+qty, actor.UserID, actor.Email, note, batchID)
	})
	return p, m, removed, err
}

func (f *fakeInventoryRepository) List(_ context.Context, _ inventory.ListFilter) ([]*inventory.Movement, error) {
	return f.movements, nil
}

func (f *fakeInventoryRepository) Count(_ context.Context, _ inventory.ListFilter) (int, error) {
	return len(f.movements), nil
}

func newInventoryTestRouter(repo inventory.Repository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	controller := NewInventoryController(repo, nopLogger{})
	router.POST("/products/:id/restock", controller.Restock)
	router.POST("/products/:id/adjust", controller.Adjust)
	router.POST("/products/:id/batches/:batch_id/write-off", controller.WriteOffBatch)
	router.GET("/inventory/movements", controller.ListMovements)
	return router
}

func testProduct(t *testing.T, stock int) *product.Product {
	t.Helper()
	p, err := product.NewProduct("CAF-500", "Café 500g", "", "mercearia", decimal.NewFromFloat(18.50), stock)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	return p
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestRestockSuccess(t *testing.T) {
	p := testProduct(t, 10)
	repo := &fakeInventoryRepository{product: p}
	router := newInventoryTestRouter(repo)

	w := postJSON(router, "/products/"+p.ID+"/restock", `{"quantity":25}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, esperado %d: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var response struct {
		Success  bool `json:"success"`
		Product  struct {
			Stock int `json:"stock"`
		} `json:"product"`
		Movement struct {
			Type        string `json:"type"`
			Change      int    `json:"change"`
			StockBefore int    `json:"stock_before"`
			StockAfter  int    `json:"stock_after"`
		} `json:"movement"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("resposta inválida: %v", err)
	}

	if response.Product.Stock != 35 {
		t.Errorf("stock = %d, esperado 35", response.Product.Stock)
	}
	if response.Movement.Type != "RESTOCK" || response.Movement.Change != 25 {
		t.Errorf("movimentação inesperada: %+v", response.Movement)
	}
	if response.Movement.StockAfter != response.Movement.StockBefore+response.Movement.Change {
		t.Error("stock_after deveria ser stock_before + change")
	}
}

func TestRestockProductNotFound(t *testing.T) {
	router := newInventoryTestRouter(&fakeInventoryRepository{})

	w := postJSON(router, "/products/nao-existe/restock", `{"quantity":5}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, esperado %d", w.Code, http.StatusNotFound)
	}
}

func TestAdjustRequiresNote(t *testing.T) {
	p := testProduct(t, 10)
	router := newInventoryTestRouter(&fakeInventoryRepository{product: p})

	w := postJSON(router, "/products/"+p.ID+"/adjust", `{"stock":7}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, esperado %d", w.Code, http.StatusBadRequest)
	}
}

func TestAdjustNoChange(t *testing.T) {
	p := testProduct(t, 10)
	router := newInventoryTestRouter(&fakeInventoryRepository{product: p})

	w := postJSON(router, "/products/"+p.ID+"/adjust", `{"stock":10,"note":"contagem física"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, esperado %d: %s", w.Code, http.StatusBadRequest, w.Body.String())
	}
}

func TestAdjustSuccess(t *testing.T) {
	p := testProduct(t, 10)
	router := newInventoryTestRouter(&fakeInventoryRepository{product: p})

	w := postJSON(router, "/products/"+p.ID+"/adjust", `{"stock":4,"note":"avaria na prateleira"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, esperado %d: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var response struct {
		Movement struct {
			Type   string `json:"type"`
			Change int    `json:"change"`
		} `json:"movement"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("resposta inválida: %v", err)
	}
	if response.Movement.Type != "ADJUSTMENT" || response.Movement.Change != -6 {
		t.Errorf("movimentação inesperada: %+v", response.Movement)
	}
}

func TestWriteOffEmptyBatch(t *testing.T) {
	p := testProduct(t, 10)
	batch, err := p.AddBatch(5, nil, time.Now().AddDate(0, 0, 30))
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	batch.Quantity = 0

	router := newInventoryTestRouter(&fakeInventoryRepository{product: p})

	w := postJSON(router, "/products/"+p.ID+"/batches/"+batch.ID+"/write-off", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, esperado %d: %s", w.Code, http.StatusBadRequest, w.Body.String())
	}
}

func TestListMovementsInvalidType(t *testing.T) {
	router := newInventoryTestRouter(&fakeInventoryRepository{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/inventory/movements?type=TRANSFER", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, esperado %d", w.Code, http.StatusBadRequest)
	}
}

func TestWriteOffBatchLargerThanStock(t *testing.T) {
	// O lote registra mais unidades do que restam em estoque, pois as
	// vendas debitam o estoque sem consumir lotes
	p := testProduct(t, 5)
	batch, err := p.AddBatch(10, nil, time.Now().AddDate(0, 0, 30))
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	repo := &fakeInventoryRepository{product: p}
	router := newInventoryTestRouter(repo)

	w := postJSON(router, "/products/"+p.ID+"/batches/"+batch.ID+"/write-off", `{"note":"vencidos"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, esperado %d: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var response struct {
		Product struct {
			Stock int `json:"stock"`
		} `json:"product"`
		Movement struct {
			Change      int `json:"change"`
			StockBefore int `json:"stock_before"`
			StockAfter  int `json:"stock_after"`
		} `json:"movement"`
		Removed *int `json:"removed"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("resposta inválida: %v", err)
	}

	if response.Removed == nil || *response.Removed != 5 {
		t.Errorf("removed = %v, esperado 5", response.Removed)
	}
	if response.Movement.Change != -5 || response.Movement.StockBefore != 5 || response.Movement.StockAfter != 0 {
		t.Errorf("movimentação inconsistente: change=%d before=%d after=%d",
			response.Movement.Change, response.Movement.StockBefore, response.Movement.StockAfter)
	}
	if response.Product.Stock != response.Movement.StockAfter {
		t.Errorf("estoque do produto (%d) diverge da movimentação (%d)",
			response.Product.Stock, response.Movement.StockAfter)
	}
}

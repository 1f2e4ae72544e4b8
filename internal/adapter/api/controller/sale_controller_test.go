package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-supermercado/internal/adapter/repository"
	"github.com/hugohenrick/pdv-supermercado/internal/domain/sale"
	"github.com/shopspring/decimal"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Error(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Warn(msg string, keysAndValues ...interface{})  {}

// fakeSaleRepository simula o fechamento de venda preenchendo os retratos
// de produto como o repositório real faria dentro da transação
type fakeSaleRepository struct {
	checkoutErr error
	sales       map[string]*sale.Sale
}

func (f *fakeSaleRepository) Checkout(_ context.Context, s *sale.Sale) error {
	if f.checkoutErr != nil {
		return f.checkoutErr
	}
	for i := range s.Items {
		s.Items[i].ProductName = "Arroz 5kg"
		s.Items[i].SKU = "ARZ-5KG"
		s.Items[i].UnitPrice = decimal.NewFromFloat(25.90)
	}
	s.Finalize()
	return nil
}

func (f *fakeSaleRepository) FindByID(_ context.Context, id string) (*sale.Sale, error) {
	if s, ok := f.sales[id]; ok {
		return s, nil
	}
	return nil, repository.ErrSaleNotFound
}

func (f *fakeSaleRepository) FindByOrderNumber(_ context.Context, orderNumber string) (*sale.Sale, error) {
	for _, s := range f.sales {
		if s.OrderNumber == strings.ToUpper(orderNumber) {
			return s, nil
		}
	}
	return nil, repository.ErrSaleNotFound
}

func (f *fakeSaleRepository) List(_ context.Context, _ sale.ListFilter) ([]*sale.Sale, error) {
	result := []*sale.Sale{}
	for _, s := range f.sales {
		result = append(result, s)
	}
	return result, nil
}

func (f *fakeSaleRepository) Count(_ context.Context, _ sale.ListFilter) (int, error) {
	return len(f.sales), nil
}

func (f *fakeSaleRepository) Cancel(_ context.Context, id string, _, _ string) (*sale.Sale, error) {
	s, ok := f.sales[id]
	if !ok {
		return nil, repository.ErrSaleNotFound
	}
	if err := s.Cancel(); err != nil {
		return nil, err
	}
	return s, nil
}

func newSaleTestRouter(repo sale.Repository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	controller := NewSaleController(repo, nopLogger{})
	router.POST("/sales", controller.Checkout)
	router.GET("/sales/:id", controller.GetByID)
	router.POST("/sales/:id/cancel", controller.Cancel)
	return router
}

func TestCheckoutSuccess(t *testing.T) {
	router := newSaleTestRouter(&fakeSaleRepository{})

	body := `{"items":[{"product_id":"p1","quantity":2}],"payment_method":"card"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/sales", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, esperado %d: %s", w.Code, http.StatusCreated, w.Body.String())
	}

	var response struct {
		Success bool `json:"success"`
		Sale    struct {
			OrderNumber string `json:"order_number"`
			Total       string `json:"total"`
			Items       []struct {
				LineTotal string `json:"line_total"`
			} `json:"items"`
		} `json:"sale"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("resposta inválida: %v", err)
	}

	if !response.Success {
		t.Error("success deveria ser true")
	}
	if !strings.HasPrefix(response.Sale.OrderNumber, "VND-") {
		t.Errorf("order_number = %q, esperado prefixo VND-", response.Sale.OrderNumber)
	}
	if response.Sale.Total != "51.8" {
		t.Errorf("total = %q, esperado 51.8", response.Sale.Total)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	router := newSaleTestRouter(&fakeSaleRepository{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/sales", strings.NewReader(`{"items":[]}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, esperado %d", w.Code, http.StatusBadRequest)
	}
}

func TestCheckoutInvalidQuantity(t *testing.T) {
	router := newSaleTestRouter(&fakeSaleRepository{})

	for _, body := range []string{
		`{"items":[{"product_id":"p1","quantity":0}]}`,
		`{"items":[{"product_id":"p1","quantity":-3}]}`,
		`{"items":[{"product_id":"p1","quantity":10000}]}`,
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/sales", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, esperado %d", body, w.Code, http.StatusBadRequest)
		}
	}
}

func TestCheckoutInvalidPaymentMethod(t *testing.T) {
	router := newSaleTestRouter(&fakeSaleRepository{})

	body := `{"items":[{"product_id":"p1","quantity":1}],"payment_method":"cheque"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/sales", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, esperado %d", w.Code, http.StatusBadRequest)
	}
}

func TestCheckoutInsufficientStock(t *testing.T) {
	repo := &fakeSaleRepository{
		checkoutErr: &repository.InsufficientStockError{
			ProductID:   "p1",
			ProductName: "Arroz 5kg",
			Available:   3,
			Requested:   5,
		},
	}
	router := newSaleTestRouter(repo)

	body := `{"items":[{"product_id":"p1","quantity":5}]}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/sales", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, esperado %d", w.Code, http.StatusBadRequest)
	}

	payload := w.Body.String()
	for _, expected := range []string{"Arroz 5kg", "3", "5"} {
		if !strings.Contains(payload, expected) {
			t.Errorf("resposta deveria conter %q: %s", expected, payload)
		}
	}
}

func TestCheckoutProductNotFound(t *testing.T) {
	repo := &fakeSaleRepository{checkoutErr: repository.ErrProductNotFound}
	router := newSaleTestRouter(repo)

	body := `{"items":[{"product_id":"inexistente","quantity":1}]}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/sales", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, esperado %d", w.Code, http.StatusNotFound)
	}
}

func TestGetSaleNotFound(t *testing.T) {
	router := newSaleTestRouter(&fakeSaleRepository{sales: map[string]*sale.Sale{}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/sales/nao-existe", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, esperado %d", w.Code, http.StatusNotFound)
	}
}

func TestCancelSaleTwice(t *testing.T) {
	s, err := sale.NewSale([]sale.Item{{ProductID: "p1", Quantity: 1}}, "", sale.PaymentCash, "", "")
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	s.Finalize()

	router := newSaleTestRouter(&fakeSaleRepository{sales: map[string]*sale.Sale{s.ID: s}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/sales/"+s.ID+"/cancel", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("primeiro cancelamento: status = %d, esperado %d", w.Code, http.StatusOK)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/sales/"+s.ID+"/cancel", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("segundo cancelamento: status = %d, esperado %d", w.Code, http.StatusBadRequest)
	}
}

func TestCheckoutInternalErrorHidesDetails(t *testing.T) {
	repo := &fakeSaleRepository{
		checkoutErr: errors.New("conexão recusada: 10.0.0.5:5432"),
	}
	router := newSaleTestRouter(repo)

	body := `{"items":[{"product_id":"p1","quantity":1}],"payment_method":"cash"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/sales", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, esperado %d: %s", w.Code, http.StatusInternalServerError, w.Body.String())
	}

	if strings.Contains(w.Body.String(), "10.0.0.5") {
		t.Errorf("resposta expõe detalhes internos: %s", w.Body.String())
	}

	var response struct {
		Details string `json:"details"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("resposta inválida: %v", err)
	}
	if response.Details != "" {
		t.Errorf("details = %q, esperado vazio", response.Details)
	}
}

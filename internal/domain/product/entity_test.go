package product

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func newTestProduct(t *testing.T) *Product {
	t.Helper()

	p, err := NewProduct("ASP100", "Aspirina 100mg", "Analgésico", "Farmácia", decimal.NewFromFloat(5.00), 20)
	if err != nil {
		t.Fatalf("erro ao criar produto: %v", err)
	}
	return p
}

func TestNewProductNormalizesSKU(t *testing.T) {
	p, err := NewProduct(" asp100 ", "Aspirina", "", "", decimal.NewFromFloat(5.00), 10)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if p.SKU != "ASP100" {
		t.Errorf("esperava SKU ASP100, obteve %q", p.SKU)
	}
	if !p.Active {
		t.Error("produto novo deveria estar ativo")
	}
}

func TestNewProductValidation(t *testing.T) {
	cases := []struct {
		name    string
		sku     string
		product string
		price   string
		stock   int
		wantErr error
	}{
		{"nome vazio", "ASP100", "   ", "5.00", 10, ErrEmptyName},
		{"preço negativo", "ASP100", "Aspirina", "-1.00", 10, ErrInvalidPrice},
		{"preço acima do limite", "ASP100", "Aspirina", "1000000.00", 10, ErrInvalidPrice},
		{"estoque negativo", "ASP100", "Aspirina", "5.00", -1, ErrInvalidStock},
		{"sku inválido", "a", "Aspirina", "5.00", 10, ErrInvalidSKU},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewProduct(tc.sku, tc.product, "", "", decimal.RequireFromString(tc.price), tc.stock)
			if err != tc.wantErr {
				t.Errorf("esperava %v, obteve %v", tc.wantErr, err)
			}
		})
	}
}

func TestAddBatchRecomputesExpiration(t *testing.T) {
	p := newTestProduct(t)

	far := time.Now().AddDate(0, 6, 0)
	near := time.Now().AddDate(0, 1, 0)

	if _, err := p.AddBatch(10, nil, far); err != nil {
		t.Fatalf("erro ao adicionar lote: %v", err)
	}
	if _, err := p.AddBatch(5, nil, near); err != nil {
		t.Fatalf("erro ao adicionar lote: %v", err)
	}

	if p.ExpirationDate == nil {
		t.Fatal("validade denormalizada não deveria ser nula")
	}
	if !p.ExpirationDate.Equal(near) {
		t.Errorf("esperava validade mais próxima %v, obteve %v", near, *p.ExpirationDate)
	}
}

func TestWriteOffBatch(t *testing.T) {
	p := newTestProduct(t)

	near := time.Now().AddDate(0, 1, 0)
	far := time.Now().AddDate(0, 6, 0)

	nearBatch, _ := p.AddBatch(5, nil, near)
	p.AddBatch(10, nil, far)
	p.Stock = 20

	removed, err := p.WriteOffBatch(nearBatch.ID)
	if err != nil {
		t.Fatalf("erro na baixa do lote: %v", err)
	}
	if removed != 5 {
		t.Errorf("esperava remoção de 5 unidades, obteve %d", removed)
	}
	if p.Stock != 15 {
		t.Errorf("esperava estoque 15, obteve %d", p.Stock)
	}

	// A validade deve passar a refletir o lote sobrevivente
	if p.ExpirationDate == nil || !p.ExpirationDate.Equal(far) {
		t.Errorf("esperava validade %v após a baixa, obteve %v", far, p.ExpirationDate)
	}
}

func TestWriteOffBatchAlreadyZero(t *testing.T) {
	p := newTestProduct(t)

	batch, _ := p.AddBatch(5, nil, time.Now().AddDate(0, 1, 0))
	p.Stock = 20

	if _, err := p.WriteOffBatch(batch.ID); err != nil {
		t.Fatalf("primeira baixa deveria funcionar: %v", err)
	}

	stockBefore := p.Stock
	if _, err := p.WriteOffBatch(batch.ID); err != ErrNothingToWriteOff {
		t.Errorf("esperava ErrNothingToWriteOff, obteve %v", err)
	}
	if p.Stock != stockBefore {
		t.Errorf("baixa rejeitada não deveria alterar o estoque: %d != %d", p.Stock, stockBefore)
	}
}

func TestWriteOffBatchNotFound(t *testing.T) {
	p := newTestProduct(t)

	if _, err := p.WriteOffBatch("inexistente"); err != ErrBatchNotFound {
		t.Errorf("esperava ErrBatchNotFound, obteve %v", err)
	}
}

func TestWriteOffBatchCappedAtStock(t *testing.T) {
	p := newTestProduct(t)

	// Vendas debitam o estoque sem consumir lotes, então o lote pode
	// registrar mais unidades do que restam em estoque
	batch, _ := p.AddBatch(10, nil, time.Now().AddDate(0, 1, 0))
	p.Stock = 5

	removed, err := p.WriteOffBatch(batch.ID)
	if err != nil {
		t.Fatalf("erro na baixa do lote: %v", err)
	}
	if removed != 5 {
		t.Errorf("esperava remoção limitada ao estoque (5), obteve %d", removed)
	}
	if p.Stock != 0 {
		t.Errorf("esperava estoque 0, obteve %d", p.Stock)
	}
	if batch.Quantity != 0 {
		t.Errorf("lote baixado deveria ficar zerado, obteve %d", batch.Quantity)
	}
}

func TestWriteOffBatchWithoutStock(t *testing.T) {
	p := newTestProduct(t)

	batch, _ := p.AddBatch(10, nil, time.Now().AddDate(0, 1, 0))
	p.Stock = 0

	if _, err := p.WriteOffBatch(batch.ID); err != ErrNothingToWriteOff {
		t.Errorf("esperava ErrNothingToWriteOff, obteve %v", err)
	}
	if batch.Quantity != 10 {
		t.Errorf("baixa rejeitada não deveria zerar o lote: %d", batch.Quantity)
	}
}

func TestRecomputeExpirationIgnoresEmptyBatches(t *testing.T) {
	p := newTestProduct(t)

	batch, _ := p.AddBatch(5, nil, time.Now().AddDate(0, 1, 0))
	batch.Quantity = 0
	p.RecomputeExpiration()

	if p.ExpirationDate != nil {
		t.Errorf("sem lotes vigentes a validade deveria ser nula, obteve %v", *p.ExpirationDate)
	}
}

func TestIsLowStock(t *testing.T) {
	p := newTestProduct(t)
	p.MinStock = 5

	p.Stock = 6
	if p.IsLowStock() {
		t.Error("estoque acima do mínimo não deveria alertar")
	}

	p.Stock = 5
	if !p.IsLowStock() {
		t.Error("estoque no mínimo deveria alertar")
	}
}

package sale

import (
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewSaleRejectsEmptyCart(t *testing.T) {
	if _, err := NewSale(nil, "", PaymentCash, "", "u-1"); err != ErrEmptyCart {
		t.Errorf("esperava ErrEmptyCart, obteve %v", err)
	}
}

func TestNewSaleValidatesQuantities(t *testing.T) {
	for _, quantity := range []int{0, -1, 10000} {
		items := []Item{{ProductID: "p-1", Quantity: quantity}}
		if _, err := NewSale(items, "", PaymentCash, "", "u-1"); err != ErrInvalidQuantity {
			t.Errorf("quantidade %d deveria ser rejeitada, obteve %v", quantity, err)
		}
	}
}

func TestNewSaleRejectsItemWithoutProduct(t *testing.T) {
	items := []Item{{ProductID: "  ", Quantity: 1}}
	if _, err := NewSale(items, "", PaymentCash, "", "u-1"); err != ErrMissingProductID {
		t.Errorf("esperava ErrMissingProductID, obteve %v", err)
	}
}

func TestNewSalePaymentMethods(t *testing.T) {
	items := []Item{{ProductID: "p-1", Quantity: 1}}

	for _, method := range []PaymentMethod{PaymentCash, PaymentCard, PaymentOther} {
		if _, err := NewSale(items, "", method, "", "u-1"); err != nil {
			t.Errorf("forma de pagamento %s deveria ser aceita: %v", method, err)
		}
	}

	if _, err := NewSale(items, "", "pix", "", "u-1"); err != ErrInvalidPaymentMethod {
		t.Errorf("esperava ErrInvalidPaymentMethod, obteve %v", err)
	}

	// Vazio assume dinheiro
	s, err := NewSale(items, "", "", "", "u-1")
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if s.PaymentMethod != PaymentCash {
		t.Errorf("esperava cash como padrão, obteve %s", s.PaymentMethod)
	}
}

func TestNewSaleOrderNumberFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^VND-\d{8}-[0-9A-F]{8}$`)

	items := []Item{{ProductID: "p-1", Quantity: 1}}
	s, err := NewSale(items, "", PaymentCash, "", "u-1")
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	if !pattern.MatchString(s.OrderNumber) {
		t.Errorf("número do pedido %q fora do formato esperado", s.OrderNumber)
	}

	other, _ := NewSale(items, "", PaymentCash, "", "u-1")
	if other.OrderNumber == s.OrderNumber {
		t.Error("números de pedido de vendas distintas não deveriam colidir")
	}
}

func TestFinalizeComputesTotals(t *testing.T) {
	s, err := NewSale([]Item{
		{ProductID: "p-1", Quantity: 3},
		{ProductID: "p-2", Quantity: 2},
	}, "Maria", PaymentCash, "", "u-1")
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	// Retratos preenchidos como faria o repositório dentro da transação
	s.Items[0].UnitPrice = decimal.RequireFromString("5.00")
	s.Items[1].UnitPrice = decimal.RequireFromString("2.50")

	s.Finalize()

	if !s.Items[0].LineTotal.Equal(decimal.RequireFromString("15.00")) {
		t.Errorf("esperava total de linha 15.00, obteve %s", s.Items[0].LineTotal)
	}
	if !s.Total.Equal(decimal.RequireFromString("20.00")) {
		t.Errorf("esperava total 20.00, obteve %s", s.Total)
	}
	if s.Breakdown != nil {
		t.Error("sem tipo de cliente não deveria haver detalhamento")
	}
}

func TestFinalizeWithSeniorDiscount(t *testing.T) {
	s, err := NewSale([]Item{{ProductID: "p-1", Quantity: 1}}, "", PaymentCash, CustomerSenior, "u-1")
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	s.Items[0].UnitPrice = decimal.RequireFromString("112.00")
	s.Finalize()

	if s.Breakdown == nil {
		t.Fatal("esperava detalhamento para cliente idoso")
	}
	if !s.Breakdown.VATExemptSale.Equal(decimal.RequireFromString("100.00")) {
		t.Errorf("esperava venda isenta 100.00, obteve %s", s.Breakdown.VATExemptSale)
	}
	// 112.00 bruto -> 100.00 líquido isento -> 20% de desconto = 80.00
	if !s.Total.Equal(decimal.RequireFromString("80.00")) {
		t.Errorf("esperava total 80.00, obteve %s", s.Total)
	}
}

func TestCancel(t *testing.T) {
	s, err := NewSale([]Item{{ProductID: "p-1", Quantity: 1}}, "", PaymentCash, "", "u-1")
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	if err := s.Cancel(); err != nil {
		t.Fatalf("venda concluída deveria poder ser cancelada: %v", err)
	}
	if s.Status != StatusCancelled {
		t.Errorf("esperava status cancelled, obteve %s", s.Status)
	}

	if err := s.Cancel(); err != ErrSaleNotCancellable {
		t.Errorf("cancelar duas vezes deveria falhar, obteve %v", err)
	}
}

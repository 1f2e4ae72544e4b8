package sale

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestComputeBreakdownRegular(t *testing.T) {
	b := ComputeBreakdown(decimal.RequireFromString("112.00"), CustomerRegular)

	if !b.VatableSale.Equal(decimal.RequireFromString("100.00")) {
		t.Errorf("esperava base tributável 100.00, obteve %s", b.VatableSale)
	}
	if !b.VATAmount.Equal(decimal.RequireFromString("12.00")) {
		t.Errorf("esperava imposto 12.00, obteve %s", b.VATAmount)
	}
	if !b.DiscountAmount.IsZero() {
		t.Errorf("cliente regular não tem desconto, obteve %s", b.DiscountAmount)
	}
	if !b.VATExemptSale.IsZero() {
		t.Errorf("cliente regular não tem parcela isenta, obteve %s", b.VATExemptSale)
	}
}

func TestComputeBreakdownSenior(t *testing.T) {
	b := ComputeBreakdown(decimal.RequireFromString("112.00"), CustomerSenior)

	if !b.VATExemptSale.Equal(decimal.RequireFromString("100.00")) {
		t.Errorf("esperava parcela isenta 100.00, obteve %s", b.VATExemptSale)
	}
	// 12.00 de imposto removido + 20.00 de desconto sobre o líquido
	if !b.DiscountAmount.Equal(decimal.RequireFromString("32.00")) {
		t.Errorf("esperava desconto total 32.00, obteve %s", b.DiscountAmount)
	}
	if !b.VATAmount.IsZero() {
		t.Errorf("venda isenta não tem imposto, obteve %s", b.VATAmount)
	}
}

func TestComputeBreakdownPWDMatchesSenior(t *testing.T) {
	senior := ComputeBreakdown(decimal.RequireFromString("56.00"), CustomerSenior)
	pwd := ComputeBreakdown(decimal.RequireFromString("56.00"), CustomerPWD)

	if !senior.DiscountAmount.Equal(pwd.DiscountAmount) {
		t.Errorf("idoso e PcD devem ter o mesmo desconto: %s != %s", senior.DiscountAmount, pwd.DiscountAmount)
	}
}

func TestComputeBreakdownRounding(t *testing.T) {
	b := ComputeBreakdown(decimal.RequireFromString("9.99"), CustomerRegular)

	sum := b.VatableSale.Add(b.VATAmount)
	if !sum.Equal(b.Subtotal) {
		t.Errorf("base + imposto deve fechar com o subtotal: %s != %s", sum, b.Subtotal)
	}
	if b.VATAmount.Exponent() < -2 {
		t.Errorf("imposto deve ter duas casas decimais, obteve %s", b.VATAmount)
	}
}

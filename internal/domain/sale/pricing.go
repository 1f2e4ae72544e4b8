package sale

import (
	"github.com/shopspring/decimal"
)

// Alíquotas aplicadas quando a venda informa o tipo de cliente. O desconto
// de idoso/PcD incide sobre o valor líquido, já sem o imposto.
var (
	vatRate      = decimal.RequireFromString("0.12")
	discountRate = decimal.RequireFromString("0.20")
	one          = decimal.NewFromInt(1)
)

// ComputeBreakdown calcula o detalhamento de desconto e tributos sobre o
// subtotal bruto da venda.
//
// Cliente regular: o imposto é extraído do valor bruto (subtotal / 1.12) e
// não há desconto. Cliente idoso ou PcD: a venda é isenta do imposto e
// recebe desconto sobre o valor líquido.
func ComputeBreakdown(subtotal decimal.Decimal, customerType CustomerType) Breakdown {
	b := Breakdown{
		CustomerType: customerType,
		Subtotal:     subtotal.Round(2),
	}

	divisor := one.Add(vatRate)

	switch customerType {
	case CustomerSenior, CustomerPWD:
		net := subtotal.DivRound(divisor, 2)
		b.VATExemptSale = net
		b.DiscountRate = discountRate
		b.DiscountAmount = net.Mul(discountRate).Round(2)
		// O desconto total inclui o imposto removido do bruto
		b.DiscountAmount = b.DiscountAmount.Add(subtotal.Sub(net)).Round(2)
	default:
		vatable := subtotal.DivRound(divisor, 2)
		b.VatableSale = vatable
		b.VATRate = vatRate
		b.VATAmount = subtotal.Sub(vatable).Round(2)
	}

	return b
}

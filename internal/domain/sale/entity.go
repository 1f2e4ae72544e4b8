package sale

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/pdv-supermercado/pkg/validation"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyCart            = errors.New("a venda deve ter ao menos um item")
	ErrInvalidQuantity      = errors.New("quantidade do item inválida")
	ErrInvalidPaymentMethod = errors.New("forma de pagamento inválida")
	ErrInvalidCustomerType  = errors.New("tipo de cliente inválido")
	ErrMissingProductID     = errors.New("item sem identificador de produto")
	ErrSaleNotCancellable   = errors.New("apenas vendas concluídas podem ser canceladas")
)

// PaymentMethod representa a forma de pagamento da venda
type PaymentMethod string

const (
	PaymentCash  PaymentMethod = "cash"
	PaymentCard  PaymentMethod = "card"
	PaymentOther PaymentMethod = "other"
)

// Status representa o estado da venda
type Status string

const (
	StatusCompleted Status = "completed"
	StatusPending   Status = "pending"
	StatusCancelled Status = "cancelled"
)

// CustomerType identifica clientes com direito a desconto e isenção
type CustomerType string

const (
	CustomerRegular CustomerType = "regular"
	CustomerSenior  CustomerType = "senior"
	CustomerPWD     CustomerType = "pwd"
)

// Item é o item da venda com o retrato do produto no momento da compra.
// Edições posteriores do catálogo não alteram vendas já registradas.
type Item struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	SKU         string          `json:"sku"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// Breakdown detalha descontos e tributos aplicados à venda
type Breakdown struct {
	CustomerType   CustomerType    `json:"customer_type"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountRate   decimal.Decimal `json:"discount_rate"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	VATRate        decimal.Decimal `json:"vat_rate"`
	VATAmount      decimal.Decimal `json:"vat_amount"`
	VatableSale    decimal.Decimal `json:"vatable_sale"`
	VATExemptSale  decimal.Decimal `json:"vat_exempt_sale"`
}

// Sale representa uma venda concluída no caixa
type Sale struct {
	ID            string          `json:"id"`
	OrderNumber   string          `json:"order_number"`
	Items         []Item          `json:"items"`
	Total         decimal.Decimal `json:"total"`
	CustomerName  string          `json:"customer_name,omitempty"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	Status        Status          `json:"status"`
	// Breakdown é nil quando a venda não informa tipo de cliente
	Breakdown *Breakdown `json:"breakdown,omitempty"`
	CreatedBy string     `json:"created_by,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// NewSale valida o carrinho e cria a venda ainda sem os retratos de produto;
// preço, nome e sku de cada item são preenchidos pelo repositório dentro da
// transação de baixa de estoque.
func NewSale(items []Item, customerName string, paymentMethod PaymentMethod, customerType CustomerType, createdBy string) (*Sale, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	// Itens validados na ordem do carrinho, antes de qualquer mutação
	for i := range items {
		if strings.TrimSpace(items[i].ProductID) == "" {
			return nil, ErrMissingProductID
		}
		if err := validation.ValidateQuantity(items[i].Quantity); err != nil {
			return nil, ErrInvalidQuantity
		}
	}

	if paymentMethod == "" {
		paymentMethod = PaymentCash
	}
	switch paymentMethod {
	case PaymentCash, PaymentCard, PaymentOther:
	default:
		return nil, ErrInvalidPaymentMethod
	}

	switch customerType {
	case "", CustomerRegular, CustomerSenior, CustomerPWD:
	default:
		return nil, ErrInvalidCustomerType
	}

	customerName, err := validation.SanitizeOptionalString(customerName, validation.MaxNameLength)
	if err != nil {
		return nil, err
	}

	s := &Sale{
		ID:            uuid.New().String(),
		OrderNumber:   NewOrderNumber(),
		Items:         items,
		Total:         decimal.Zero,
		CustomerName:  customerName,
		PaymentMethod: paymentMethod,
		Status:        StatusCompleted,
		CreatedBy:     createdBy,
		CreatedAt:     time.Now(),
	}

	if customerType != "" {
		s.Breakdown = &Breakdown{CustomerType: customerType}
	}

	return s, nil
}

// Finalize calcula os totais de linha e o total da venda a partir dos
// preços capturados na transação; aplica o detalhamento de desconto e
// tributos quando o tipo de cliente foi informado.
func (s *Sale) Finalize() {
	subtotal := decimal.Zero
	for i := range s.Items {
		item := &s.Items[i]
		item.LineTotal = item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))).Round(2)
		subtotal = subtotal.Add(item.LineTotal)
	}

	if s.Breakdown == nil {
		s.Total = subtotal
		return
	}

	breakdown := ComputeBreakdown(subtotal, s.Breakdown.CustomerType)
	s.Breakdown = &breakdown
	s.Total = subtotal.Sub(breakdown.DiscountAmount).Round(2)
}

// Cancel marca a venda como cancelada; o estorno de estoque é feito pelo
// repositório na mesma transação
func (s *Sale) Cancel() error {
	if s.Status != StatusCompleted {
		return ErrSaleNotCancellable
	}
	s.Status = StatusCancelled
	return nil
}

// NewOrderNumber gera um identificador de pedido legível, em maiúsculas e
// resistente a colisões (data + sufixo aleatório do uuid)
func NewOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("VND-%s-%s", time.Now().Format("20060102"), suffix)
}

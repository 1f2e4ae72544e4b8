package product

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/pdv-supermercado/pkg/validation"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName         = errors.New("nome do produto não pode ser vazio")
	ErrInvalidPrice      = errors.New("preço do produto inválido")
	ErrInvalidStock      = errors.New("estoque do produto inválido")
	ErrInvalidSKU        = errors.New("sku do produto inválido")
	ErrBatchNotFound     = errors.New("lote não encontrado")
	ErrNothingToWriteOff = errors.New("lote já está zerado")
	ErrInvalidBatchQty   = errors.New("quantidade do lote inválida")
	ErrMissingExpiration = errors.New("data de validade do lote é obrigatória")
)

// ExpiryBatch representa um lote de estoque com uma mesma data de validade
type ExpiryBatch struct {
	ID                string     `json:"id"`
	Quantity          int        `json:"quantity"`
	ManufacturingDate *time.Time `json:"manufacturing_date,omitempty"`
	ExpirationDate    time.Time  `json:"expiration_date"`
	ReceivedAt        time.Time  `json:"received_at"`
}

// Product representa um produto do catálogo
type Product struct {
	ID          string              `json:"id"`
	SKU         string              `json:"sku"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Category    string              `json:"category"`
	Price       decimal.Decimal     `json:"price"`
	Cost        decimal.NullDecimal `json:"cost"`
	Stock       int                 `json:"stock"`
	MinStock    int                 `json:"min_stock"`
	ImageURL    string              `json:"image_url"`
	Batches     []ExpiryBatch       `json:"batches"`
	// ExpirationDate é a menor validade entre os lotes com quantidade
	// positiva; nil quando não há lotes vigentes
	ExpirationDate *time.Time `json:"expiration_date"`
	Active         bool       `json:"active"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// NewProduct cria um novo produto validando os campos obrigatórios
func NewProduct(sku, name, description, category string, price decimal.Decimal, stock int) (*Product, error) {
	sku, err := validation.NormalizeSKU(sku)
	if err != nil {
		return nil, ErrInvalidSKU
	}

	name, err = validation.SanitizeString(name, validation.MaxNameLength)
	if err != nil {
		return nil, ErrEmptyName
	}

	description, err = validation.SanitizeOptionalString(description, validation.MaxDescriptionLength)
	if err != nil {
		return nil, err
	}

	category, err = validation.SanitizeOptionalString(category, validation.MaxNameLength)
	if err != nil {
		return nil, err
	}

	if err := validation.ValidatePrice(price); err != nil {
		return nil, ErrInvalidPrice
	}

	if err := validation.ValidateStock(stock); err != nil {
		return nil, ErrInvalidStock
	}

	now := time.Now()
	return &Product{
		ID:          uuid.New().String(),
		SKU:         sku,
		Name:        name,
		Description: description,
		Category:    category,
		Price:       price,
		Stock:       stock,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Update atualiza os dados cadastrais do produto; o estoque não é alterado
// por aqui, apenas pelas operações de venda, reposição e ajuste
func (p *Product) Update(name, description, category string, price decimal.Decimal, minStock int, imageURL string) error {
	name, err := validation.SanitizeString(name, validation.MaxNameLength)
	if err != nil {
		return ErrEmptyName
	}

	description, err = validation.SanitizeOptionalString(description, validation.MaxDescriptionLength)
	if err != nil {
		return err
	}

	category, err = validation.SanitizeOptionalString(category, validation.MaxNameLength)
	if err != nil {
		return err
	}

	if err := validation.ValidatePrice(price); err != nil {
		return ErrInvalidPrice
	}

	if err := validation.ValidateStock(minStock); err != nil {
		return ErrInvalidStock
	}

	p.Name = name
	p.Description = description
	p.Category = category
	p.Price = price
	p.MinStock = minStock
	p.ImageURL = imageURL
	p.UpdatedAt = time.Now()

	return nil
}

// AddBatch registra um novo lote de validade e recalcula a validade mais próxima
func (p *Product) AddBatch(quantity int, manufacturingDate *time.Time, expirationDate time.Time) (*ExpiryBatch, error) {
	if quantity < 1 || quantity > validation.MaxStock {
		return nil, ErrInvalidBatchQty
	}
	if expirationDate.IsZero() {
		return nil, ErrMissingExpiration
	}

	batch := ExpiryBatch{
		ID:                uuid.New().String(),
		Quantity:          quantity,
		ManufacturingDate: manufacturingDate,
		ExpirationDate:    expirationDate,
		ReceivedAt:        time.Now(),
	}
	p.Batches = append(p.Batches, batch)
	p.RecomputeExpiration()
	p.UpdatedAt = time.Now()

	return &p.Batches[len(p.Batches)-1], nil
}

// FindBatch localiza um lote pelo ID
func (p *Product) FindBatch(batchID string) *ExpiryBatch {
	for i := range p.Batches {
		if p.Batches[i].ID == batchID {
			return &p.Batches[i]
		}
	}
	return nil
}

// WriteOffBatch zera a quantidade de um lote (baixa por vencimento) e
// retorna a quantidade removida do estoque. Como as vendas debitam o
// estoque sem consumir lotes, o lote pode registrar mais unidades do que
// restam em estoque; a baixa remove no máximo o estoque atual, para que a
// movimentação gerada reflita exatamente a variação do produto. Lotes já
// zerados, ou sem estoque para baixar, são rejeitados.
func (p *Product) WriteOffBatch(batchID string) (int, error) {
	batch := p.FindBatch(batchID)
	if batch == nil {
		return 0, ErrBatchNotFound
	}
	if batch.Quantity == 0 {
		return 0, ErrNothingToWriteOff
	}

	removed := batch.Quantity
	if removed > p.Stock {
		removed = p.Stock
	}
	if removed == 0 {
		return 0, ErrNothingToWriteOff
	}

	batch.Quantity = 0
	p.Stock -= removed
	p.RecomputeExpiration()
	p.UpdatedAt = time.Now()

	return removed, nil
}

// RecomputeExpiration recalcula a validade mais próxima entre os lotes
// com quantidade positiva
func (p *Product) RecomputeExpiration() {
	var nearest *time.Time
	for i := range p.Batches {
		b := &p.Batches[i]
		if b.Quantity <= 0 {
			continue
		}
		if nearest == nil || b.ExpirationDate.Before(*nearest) {
			exp := b.ExpirationDate
			nearest = &exp
		}
	}
	p.ExpirationDate = nearest
}

// IsLowStock verifica se o estoque está no limite mínimo ou abaixo dele
func (p *Product) IsLowStock() bool {
	return p.Stock <= p.MinStock
}

// Deactivate desativa o produto sem removê-lo; vendas históricas continuam
// referenciando o registro
func (p *Product) Deactivate() {
	p.Active = false
	p.UpdatedAt = time.Now()
}

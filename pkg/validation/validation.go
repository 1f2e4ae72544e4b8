package validation

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Erros de validação de entrada
var (
	ErrEmptyString      = errors.New("valor não pode ser vazio")
	ErrStringTooLong    = errors.New("valor excede o tamanho máximo")
	ErrInvalidPrice     = errors.New("preço deve estar entre 0 e 999999.99")
	ErrInvalidStock     = errors.New("estoque deve estar entre 0 e 999999")
	ErrInvalidQuantity  = errors.New("quantidade deve estar entre 1 e 9999")
	ErrInvalidEmail     = errors.New("email inválido")
	ErrInvalidSKU       = errors.New("sku inválido")
	ErrPasswordTooShort = errors.New("senha deve ter pelo menos 6 caracteres")
)

// Limites aplicados às entradas primitivas
const (
	MaxNameLength        = 255
	MaxNoteLength        = 500
	MaxDescriptionLength = 2000
	MaxStock             = 999999
	MaxCartQuantity      = 9999
	MinPasswordLength    = 6
)

// MaxPrice é o maior preço aceito para um produto
var MaxPrice = decimal.NewFromFloat(999999.99)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	skuPattern   = regexp.MustCompile(`^[A-Z0-9][A-Z0-9\-_]{1,49}$`)
)

// SanitizeString remove espaços das extremidades e valida o tamanho
func SanitizeString(value string, maxLength int) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", ErrEmptyString
	}
	if len(value) > maxLength {
		return "", ErrStringTooLong
	}
	return value, nil
}

// SanitizeOptionalString aceita vazio, mas valida o tamanho quando presente
func SanitizeOptionalString(value string, maxLength int) (string, error) {
	value = strings.TrimSpace(value)
	if len(value) > maxLength {
		return "", ErrStringTooLong
	}
	return value, nil
}

// ValidatePrice verifica se o preço está dentro dos limites (0 a 999999.99)
func ValidatePrice(price decimal.Decimal) error {
	if price.IsNegative() || price.GreaterThan(MaxPrice) {
		return ErrInvalidPrice
	}
	if price.Exponent() < -2 {
		return ErrInvalidPrice
	}
	return nil
}

// ValidateStock verifica se o valor de estoque está dentro dos limites
func ValidateStock(stock int) error {
	if stock < 0 || stock > MaxStock {
		return ErrInvalidStock
	}
	return nil
}

// ValidateQuantity verifica a quantidade de um item de venda (1 a 9999)
func ValidateQuantity(quantity int) error {
	if quantity < 1 || quantity > MaxCartQuantity {
		return ErrInvalidQuantity
	}
	return nil
}

// ValidateEmail verifica o formato do email
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

// ValidatePassword verifica o tamanho mínimo da senha
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// NormalizeSKU remove espaços, converte para maiúsculas e valida o formato
func NormalizeSKU(sku string) (string, error) {
	sku = strings.ToUpper(strings.TrimSpace(sku))
	if !skuPattern.MatchString(sku) {
		return "", ErrInvalidSKU
	}
	return sku, nil
}

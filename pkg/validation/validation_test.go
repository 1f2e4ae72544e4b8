package validation

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestSanitizeString(t *testing.T) {
	value, err := SanitizeString("  Arroz Integral  ", MaxNameLength)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if value != "Arroz Integral" {
		t.Errorf("esperava string sem espaços, obteve %q", value)
	}

	if _, err := SanitizeString("   ", MaxNameLength); err != ErrEmptyString {
		t.Errorf("esperava ErrEmptyString, obteve %v", err)
	}

	if _, err := SanitizeString(strings.Repeat("a", MaxNameLength+1), MaxNameLength); err != ErrStringTooLong {
		t.Errorf("esperava ErrStringTooLong, obteve %v", err)
	}
}

func TestValidatePrice(t *testing.T) {
	cases := []struct {
		name  string
		price string
		valid bool
	}{
		{"zero", "0", true},
		{"duas casas", "15.99", true},
		{"máximo", "999999.99", true},
		{"negativo", "-0.01", false},
		{"acima do máximo", "1000000.00", false},
		{"três casas decimais", "1.999", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePrice(decimal.RequireFromString(tc.price))
			if tc.valid && err != nil {
				t.Errorf("preço %s deveria ser válido, obteve %v", tc.price, err)
			}
			if !tc.valid && err == nil {
				t.Errorf("preço %s deveria ser inválido", tc.price)
			}
		})
	}
}

func TestValidateStock(t *testing.T) {
	if err := ValidateStock(0); err != nil {
		t.Errorf("estoque 0 deveria ser válido: %v", err)
	}
	if err := ValidateStock(MaxStock); err != nil {
		t.Errorf("estoque máximo deveria ser válido: %v", err)
	}
	if err := ValidateStock(-1); err != ErrInvalidStock {
		t.Errorf("esperava ErrInvalidStock, obteve %v", err)
	}
	if err := ValidateStock(MaxStock + 1); err != ErrInvalidStock {
		t.Errorf("esperava ErrInvalidStock, obteve %v", err)
	}
}

func TestValidateQuantity(t *testing.T) {
	if err := ValidateQuantity(1); err != nil {
		t.Errorf("quantidade 1 deveria ser válida: %v", err)
	}
	if err := ValidateQuantity(MaxCartQuantity); err != nil {
		t.Errorf("quantidade máxima deveria ser válida: %v", err)
	}
	if err := ValidateQuantity(0); err != ErrInvalidQuantity {
		t.Errorf("esperava ErrInvalidQuantity, obteve %v", err)
	}
	if err := ValidateQuantity(MaxCartQuantity + 1); err != ErrInvalidQuantity {
		t.Errorf("esperava ErrInvalidQuantity, obteve %v", err)
	}
}

func TestValidateEmail(t *testing.T) {
	if err := ValidateEmail("caixa@mercado.com.br"); err != nil {
		t.Errorf("email deveria ser válido: %v", err)
	}
	for _, email := range []string{"", "caixa", "caixa@", "@mercado.com", "a b@mercado.com"} {
		if err := ValidateEmail(email); err != ErrInvalidEmail {
			t.Errorf("email %q deveria ser inválido, obteve %v", email, err)
		}
	}
}

func TestNormalizeSKU(t *testing.T) {
	sku, err := NormalizeSKU("  asp100 ")
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if sku != "ASP100" {
		t.Errorf("esperava ASP100, obteve %q", sku)
	}

	if _, err := NormalizeSKU("a"); err != ErrInvalidSKU {
		t.Errorf("sku de um caractere deveria ser inválido, obteve %v", err)
	}
	if _, err := NormalizeSKU("AB C"); err != ErrInvalidSKU {
		t.Errorf("sku com espaço interno deveria ser inválido, obteve %v", err)
	}
}

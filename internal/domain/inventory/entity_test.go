package inventory

import (
	"strings"
	"testing"
)

func TestNewRestock(t *testing.T) {
	m, err := NewRestock("p-1", "Arroz 5kg", 50, 10, "u-1", "gerente@mercado.com.br", "entrega do fornecedor")
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	if m.Type != TypeRestock {
		t.Errorf("esperava tipo RESTOCK, obteve %s", m.Type)
	}
	if m.Change != 50 {
		t.Errorf("esperava change +50, obteve %d", m.Change)
	}
	if m.StockBefore != 10 || m.StockAfter != 60 {
		t.Errorf("esperava 10 -> 60, obteve %d -> %d", m.StockBefore, m.StockAfter)
	}
	if m.StockAfter != m.StockBefore+m.Change {
		t.Error("invariante stock_after = stock_before + change violada")
	}
}

func TestNewRestockRejectsInvalidQuantity(t *testing.T) {
	for _, quantity := range []int{0, -5, 1000000} {
		if _, err := NewRestock("p-1", "Arroz", quantity, 10, "", "", ""); err != ErrInvalidQuantity {
			t.Errorf("quantidade %d deveria ser rejeitada, obteve %v", quantity, err)
		}
	}
}

func TestNewRestockAllowsEmptyNote(t *testing.T) {
	if _, err := NewRestock("p-1", "Arroz", 5, 10, "", "", ""); err != nil {
		t.Errorf("justificativa é opcional na reposição: %v", err)
	}
}

func TestNewAdjustmentComputesDelta(t *testing.T) {
	m, err := NewAdjustment("p-1", "Feijão 1kg", 7, 12, "u-1", "gerente@mercado.com.br", "contagem física")
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	if m.Change != -5 {
		t.Errorf("esperava change -5, obteve %d", m.Change)
	}
	if m.StockAfter != 7 {
		t.Errorf("esperava stock_after 7, obteve %d", m.StockAfter)
	}
}

func TestNewAdjustmentRejectsNoChange(t *testing.T) {
	if _, err := NewAdjustment("p-1", "Feijão", 12, 12, "", "", "contagem"); err != ErrNoChange {
		t.Errorf("esperava ErrNoChange, obteve %v", err)
	}
}

func TestNewAdjustmentRequiresNote(t *testing.T) {
	for _, note := range []string{"", "   "} {
		if _, err := NewAdjustment("p-1", "Feijão", 7, 12, "", "", note); err != ErrMissingNote {
			t.Errorf("justificativa %q deveria ser rejeitada, obteve %v", note, err)
		}
	}

	tooLong := strings.Repeat("a", 501)
	if _, err := NewAdjustment("p-1", "Feijão", 7, 12, "", "", tooLong); err != ErrMissingNote {
		t.Errorf("justificativa longa demais deveria ser rejeitada, obteve %v", err)
	}
}

func TestNewExpiredWriteOff(t *testing.T) {
	m, err := NewExpiredWriteOff("p-1", "Iogurte", 8, 20, "u-1", "gerente@mercado.com.br", "", "lote-1")
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	if m.Type != TypeExpired {
		t.Errorf("esperava tipo EXPIRED, obteve %s", m.Type)
	}
	if m.Change != -8 {
		t.Errorf("esperava change -8, obteve %d", m.Change)
	}
	if m.StockAfter != 12 {
		t.Errorf("esperava stock_after 12, obteve %d", m.StockAfter)
	}
	if m.ReferenceID != "lote-1" {
		t.Errorf("esperava referência ao lote, obteve %q", m.ReferenceID)
	}
}

func TestNewMovementRejectsUnknownType(t *testing.T) {
	if _, err := NewMovement("p-1", "Arroz", "TRANSFER", 1, 0, "", "", "", ""); err != ErrInvalidType {
		t.Errorf("esperava ErrInvalidType, obteve %v", err)
	}
}

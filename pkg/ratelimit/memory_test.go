package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStoreIncrement(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		got, err := store.Increment(ctx, "cliente-a", time.Minute)
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if got != want {
			t.Errorf("esperava contador %d, obteve %d", want, got)
		}
	}
}

func TestMemoryStoreKeysAreIndependent(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	ctx := context.Background()

	if _, err := store.Increment(ctx, "cliente-a", time.Minute); err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	got, err := store.Increment(ctx, "cliente-b", time.Minute)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if got != 1 {
		t.Errorf("chaves diferentes devem ter contadores separados, obteve %d", got)
	}
}

func TestMemoryStoreWindowReset(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	ctx := context.Background()

	if _, err := store.Increment(ctx, "cliente-a", 10*time.Millisecond); err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	time.Sleep(20 * time.Millisecond)

	got, err := store.Increment(ctx, "cliente-a", 10*time.Millisecond)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if got != 1 {
		t.Errorf("janela expirada deve reiniciar o contador, obteve %d", got)
	}
}

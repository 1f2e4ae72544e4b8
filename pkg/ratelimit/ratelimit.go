package ratelimit

import (
	"context"
	"os"
	"strconv"
	"time"
)

// Store é a interface para o armazenamento de contadores de requisições.
// Cada implementação deve incrementar o contador da chave dentro da janela
// e retornar o total acumulado na janela atual.
type Store interface {
	// Increment incrementa o contador da chave e retorna o valor atual
	Increment(ctx context.Context, key string, window time.Duration) (int64, error)

	// Close libera os recursos do armazenamento
	Close() error
}

// Config contém as configurações do limitador de requisições
type Config struct {
	MaxRequests      int64
	Window           time.Duration
	LoginMaxRequests int64
	LoginWindow      time.Duration
}

// NewConfigFromEnv cria uma configuração a partir de variáveis de ambiente
func NewConfigFromEnv() Config {
	maxRequests, _ := strconv.ParseInt(getEnv("RATE_LIMIT_MAX_REQUESTS", "120"), 10, 64)
	windowSeconds, _ := strconv.Atoi(getEnv("RATE_LIMIT_WINDOW_SECONDS", "60"))
	loginMax, _ := strconv.ParseInt(getEnv("RATE_LIMIT_LOGIN_MAX_REQUESTS", "10"), 10, 64)
	loginWindowSeconds, _ := strconv.Atoi(getEnv("RATE_LIMIT_LOGIN_WINDOW_SECONDS", "60"))

	return Config{
		MaxRequests:      maxRequests,
		Window:           time.Duration(windowSeconds) * time.Second,
		LoginMaxRequests: loginMax,
		LoginWindow:      time.Duration(loginWindowSeconds) * time.Second,
	}
}

// getEnv retorna o valor de uma variável de ambiente ou um valor padrão
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

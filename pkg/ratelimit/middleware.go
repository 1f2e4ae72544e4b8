package ratelimit

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-supermercado/internal/adapter/api/dto"
)

// Middleware cria um middleware gin que limita requisições por IP de origem.
// O prefixo separa os contadores de grupos de rotas com limites distintos.
func Middleware(store Store, prefix string, maxRequests int64, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := prefix + ":" + c.ClientIP()

		count, err := store.Increment(c.Request.Context(), key, window)
		if err != nil {
			// Falha no armazenamento de contadores não deve derrubar a API
			c.Next()
			return
		}

		if count > maxRequests {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse(
				http.StatusTooManyRequests,
				"Muitas requisições",
				"Aguarde alguns instantes antes de tentar novamente",
			))
			return
		}

		c.Next()
	}
}

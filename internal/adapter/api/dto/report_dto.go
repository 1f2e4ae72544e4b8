package dto

import (
	"time"

	"github.com/hugohenrick/pdv-supermercado/internal/domain/report"
)

// SalesSummaryResponse representa a resposta do relatório consolidado de vendas
type SalesSummaryResponse struct {
	Success bool                 `json:"success"`
	Summary *report.SalesSummary `json:"summary"`
}

// ParsePeriod interpreta os parâmetros start_date e end_date (AAAA-MM-DD);
// sem parâmetros, o período é o dia corrente. O fim do período é exclusivo.
func ParsePeriod(startStr, endStr string) (time.Time, time.Time, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 1)

	if startStr != "" {
		parsed, err := time.ParseInLocation("2006-01-02", startStr, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		start = parsed
		end = start.AddDate(0, 0, 1)
	}

	if endStr != "" {
		parsed, err := time.ParseInLocation("2006-01-02", endStr, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		end = parsed.AddDate(0, 0, 1)
	}

	return start, end, nil
}

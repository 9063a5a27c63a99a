package adapter

import "github.com/vibe-budget/backend/internal/domain/entity"

// BudgetExporter renders a snapshot and its tiers into a downloadable document.
type BudgetExporter interface {
	Export(snapshot entity.BudgetSnapshot, tiers []entity.WeeklyTier) ([]byte, error)
	ContentType() string
	FileExtension() string
}

package budget

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vibe-budget/backend/internal/application/adapter"
	domainerror "github.com/vibe-budget/backend/internal/domain/error"
)

// ExportBudgetInput represents the input for exporting the budget.
type ExportBudgetInput struct {
	UserID uuid.UUID
}

// ExportBudgetOutput is a rendered document ready to be downloaded.
type ExportBudgetOutput struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ExportBudgetUseCase renders the snapshot and tiers into a document.
type ExportBudgetUseCase struct {
	loader   *SessionLoader
	exporter adapter.BudgetExporter
}

// NewExportBudgetUseCase creates a new ExportBudgetUseCase instance.
func NewExportBudgetUseCase(loader *SessionLoader, exporter adapter.BudgetExporter) *ExportBudgetUseCase {
	return &ExportBudgetUseCase{
		loader:   loader,
		exporter: exporter,
	}
}

// Execute performs the export.
func (uc *ExportBudgetUseCase) Execute(ctx context.Context, input ExportBudgetInput) (*ExportBudgetOutput, error) {
	session, err := uc.loader.Load(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	snapshot := uc.loader.recompute(ctx, session)

	content, err := uc.exporter.Export(snapshot, session.Tiers())
	if err != nil {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeExportFailed,
			"failed to export budget",
			fmt.Errorf("%w: %w", domainerror.ErrExportFailed, err),
		)
	}

	return &ExportBudgetOutput{
		Content:     content,
		ContentType: uc.exporter.ContentType(),
		Filename:    fmt.Sprintf("budget-%s.%s", session.Now().Format("2006-01-02"), uc.exporter.FileExtension()),
	}, nil
}

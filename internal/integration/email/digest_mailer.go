package email

import (
	"context"
	"fmt"

	"github.com/vibe-budget/backend/internal/application/adapter"
	domainerror "github.com/vibe-budget/backend/internal/domain/error"
	"github.com/vibe-budget/backend/internal/domain/valueobject"
	"github.com/vibe-budget/backend/internal/integration/email/templates"
)

const weeklyDigestTemplate = "weekly_digest"

// DigestMailer renders the weekly digest and hands it to an EmailSender.
type DigestMailer struct {
	sender     adapter.EmailSender
	renderer   *templates.Renderer
	appBaseURL string
}

// NewDigestMailer creates a new digest mailer.
func NewDigestMailer(sender adapter.EmailSender, renderer *templates.Renderer, appBaseURL string) *DigestMailer {
	return &DigestMailer{
		sender:     sender,
		renderer:   renderer,
		appBaseURL: appBaseURL,
	}
}

// SendWeeklyDigest renders and sends one user's weekly digest.
func (m *DigestMailer) SendWeeklyDigest(ctx context.Context, input adapter.WeeklyDigestInput) (*adapter.SendEmailResult, error) {
	data := digestData(input, m.appBaseURL)

	html, text, err := m.renderer.Render(weeklyDigestTemplate, data)
	if err != nil {
		return nil, domainerror.NewEmailError(
			domainerror.ErrCodeTemplateRenderFailed,
			"failed to render weekly digest",
			fmt.Errorf("%w: %v", domainerror.ErrTemplateRenderFailed, err),
		)
	}

	return m.sender.Send(ctx, adapter.SendEmailInput{
		To:      input.UserEmail,
		Name:    input.UserName,
		Subject: fmt.Sprintf("Your week: $%s to spend - Vibe Budget", data.WeeklyTarget),
		HTML:    html,
		Text:    text,
	})
}

func digestData(input adapter.WeeklyDigestInput, appBaseURL string) templates.WeeklyDigestData {
	snap := input.Snapshot
	tier := input.BestTier

	unpaid := 0
	for _, b := range snap.AllBills() {
		if !b.IsPaid() {
			unpaid++
		}
	}

	return templates.WeeklyDigestData{
		UserName:          input.UserName,
		DiscretionLimit:   valueobject.FormatMoney(snap.DiscretionLimit),
		DiscretionaryLeft: valueobject.FormatMoney(snap.DiscretionaryLeft),
		LeftPercentage:    snap.DiscretionaryLeftPercentage.StringFixed(0),
		TotalBills:        valueobject.FormatMoney(snap.TotalBills),
		UnpaidBills:       unpaid,
		OverBudget:        snap.IsOverBudget(),
		TierLabel:         tier.Label,
		TierCatchphrase:   tier.Catchphrase,
		WeeklyTarget:      valueobject.FormatMoney(tier.Value),
		DailyRemaining:    valueobject.FormatMoney(tier.DailyRemaining),
		DashboardURL:      appBaseURL,
	}
}

var _ adapter.DigestMailer = (*DigestMailer)(nil)

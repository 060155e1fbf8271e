package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"rentalpro-backend/internal/logger"
)

// MarkOverdueRentals flips open rentals past their expected return
// date to Overdue.
func (jr *JobRunner) MarkOverdueRentals() {
	jr.runWithRecovery("MarkOverdueRentals", func() {
		ctx := context.Background()

		today := time.Now().Format("2006-01-02")
		ids, err := jr.store.RentalRepository.MarkOverdue(ctx, today)
		if err != nil {
			logger.Error("Failed to mark overdue rentals", "error", err)
			return
		}

		logger.Info("Marked rentals as overdue", "count", len(ids))
		for _, id := range ids {
			logger.Debug("Marked rental as overdue", "rental_id", id)
		}
	})
}

// SendBalanceReminders emails the shop a digest of rentals that still
// carry an unpaid balance, one reminder message per rental rendered
// from the configured template.
func (jr *JobRunner) SendBalanceReminders() {
	jr.runWithRecovery("SendBalanceReminders", func() {
		ctx := context.Background()

		notifyEmail := jr.config.SendGrid.NotifyEmail
		if notifyEmail == "" {
			logger.Warn("No notify email configured, skipping balance reminders")
			return
		}

		settings, err := jr.services.Settings.GetSettings(ctx)
		if err != nil {
			logger.Error("Failed to load settings", "error", err)
			return
		}

		rentals, err := jr.store.RentalRepository.ListOutstanding(ctx)
		if err != nil {
			logger.Error("Failed to list outstanding rentals", "error", err)
			return
		}
		if len(rentals) == 0 {
			logger.Info("No outstanding balances")
			return
		}

		var sections []string
		for _, r := range rentals {
			customerName := r.CustomerID
			if customer, err := jr.store.CustomerRepository.GetByID(ctx, r.CustomerID); err == nil {
				customerName = customer.Name
			}
			sections = append(sections, renderTemplate(settings.BalanceReminderTemplate, map[string]string{
				"CustomerName": customerName,
				"ShopName":     settings.ShopName,
				"InvoiceID":    r.ID,
				"BalanceDue":   fmt.Sprintf("%.2f", r.Balance()),
			}))
		}

		subject := fmt.Sprintf("%s: %d outstanding balance(s)", settings.ShopName, len(rentals))
		body := strings.Join(sections, "\n\n----------------\n\n")
		if err := jr.services.Email.Send(ctx, notifyEmail, settings.ShopName, subject, body); err != nil {
			logger.Error("Failed to send balance reminder digest", "error", err)
			return
		}
		logger.Info("Sent balance reminder digest", "rentals", len(rentals), "to", notifyEmail)
	})
}

// renderTemplate substitutes [Placeholder] tokens, the format the
// frontend's message templates use.
func renderTemplate(tpl string, data map[string]string) string {
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "["+k+"]", v)
	}
	return strings.NewReplacer(pairs...).Replace(tpl)
}


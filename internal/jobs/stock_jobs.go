package jobs

import (
	"context"

	"rentalpro-backend/internal/logger"
)

// ReconcileItemAvailability recomputes every item's available count
// from its rental lines and fixes any drift. Availability is
// maintained incrementally inside the rental transactions; this is a
// diagnostic tool, run manually, not a scheduled pass. Any drift it
// reports is a bug elsewhere.
func (jr *JobRunner) ReconcileItemAvailability() {
	jr.runWithRecovery("ReconcileItemAvailability", func() {
		ctx := context.Background()

		query := `
			SELECT i.id, i.name, i.quantity, i.available,
			       i.quantity - COALESCE(SUM(ri.quantity - ri.returned_quantity), 0) AS correct_available
			FROM items i
			LEFT JOIN rented_items ri ON ri.item_id = i.id
			GROUP BY i.id, i.name, i.quantity, i.available
		`
		rows, err := jr.db.QueryContext(ctx, query)
		if err != nil {
			logger.Error("Failed to compute availability", "error", err)
			return
		}
		defer rows.Close()

		type drift struct {
			id      string
			name    string
			correct int32
		}
		var drifted []drift
		checked := 0
		for rows.Next() {
			var id, name string
			var quantity, available, correct int32
			if err := rows.Scan(&id, &name, &quantity, &available, &correct); err != nil {
				logger.Error("Failed to scan item", "error", err)
				return
			}
			checked++
			if correct < 0 {
				// More units out than the item owns; clamp and flag.
				logger.Warn("Item oversold", "item_id", id, "item", name, "computed_available", correct)
				correct = 0
			}
			if correct != available {
				logger.Warn("Availability drift detected",
					"item_id", id, "item", name,
					"stored_available", available, "correct_available", correct)
				drifted = append(drifted, drift{id: id, name: name, correct: correct})
			}
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating items", "error", err)
			return
		}

		for _, d := range drifted {
			if _, err := jr.db.ExecContext(ctx, `UPDATE items SET available = $1 WHERE id = $2`, d.correct, d.id); err != nil {
				logger.Error("Failed to fix item availability", "item_id", d.id, "error", err)
				return
			}
		}
		logger.Info("Availability reconciliation finished", "items_checked", checked, "items_fixed", len(drifted))
	})
}

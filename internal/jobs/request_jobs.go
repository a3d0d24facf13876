package jobs

import (
	"context"
	"fmt"
	"time"

	"agroshare-backend/internal/logger"
)

// ExpireStaleRequests rejects pending requests whose requested date has
// already passed; the seller can no longer meaningfully accept them.
func (jr *JobRunner) ExpireStaleRequests() {
	jr.runWithRecovery("ExpireStaleRequests", func() {
		ctx := context.Background()

		query := `
			UPDATE rental_requests
			SET status = 'rejected',
			    updated_at = NOW()
			WHERE status = 'pending'
			  AND requested_date < $1
			RETURNING id, product_id, requester_id, requested_date
		`

		rows, err := jr.db.QueryContext(ctx, query, time.Now().Format("2006-01-02"))
		if err != nil {
			logger.Error("Failed to expire stale requests", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var id, productID, requesterID, requestedDate string
			if err := rows.Scan(&id, &productID, &requesterID, &requestedDate); err != nil {
				logger.Error("Failed to scan expired request", "error", err)
				continue
			}
			count++
			logger.Debug("Expired stale request",
				"request_id", id,
				"product_id", productID,
				"requester_id", requesterID,
				"requested_date", requestedDate)
		}

		if err := rows.Err(); err != nil {
			logger.Error("Error iterating expired requests", "error", err)
			return
		}

		logger.Info("Expired stale requests", "count", count)
	})
}

// SendPendingRequestReminders emails each seller a digest of the
// requests still waiting for a decision.
func (jr *JobRunner) SendPendingRequestReminders() {
	jr.runWithRecovery("SendPendingRequestReminders", func() {
		ctx := context.Background()

		query := `
			SELECT u.email, u.full_name, p.name, rr.requested_date, rr.start_time
			FROM rental_requests rr
			JOIN products p ON p.id = rr.product_id
			JOIN users u ON u.id = p.owner_id
			WHERE rr.status = 'pending'
			  AND rr.requested_date >= $1
			ORDER BY u.email, rr.requested_date
		`

		rows, err := jr.db.QueryContext(ctx, query, time.Now().Format("2006-01-02"))
		if err != nil {
			logger.Error("Failed to load pending requests for reminders", "error", err)
			return
		}
		defer rows.Close()

		type digest struct {
			ownerName string
			lines     []string
		}
		digests := make(map[string]*digest)
		var order []string

		for rows.Next() {
			var email, ownerName, machineName, date, startTime string
			if err := rows.Scan(&email, &ownerName, &machineName, &date, &startTime); err != nil {
				logger.Error("Failed to scan pending request", "error", err)
				continue
			}

			d, ok := digests[email]
			if !ok {
				d = &digest{ownerName: ownerName}
				digests[email] = d
				order = append(order, email)
			}
			d.lines = append(d.lines, fmt.Sprintf("%s on %s at %s", machineName, date, startTime))
		}

		if err := rows.Err(); err != nil {
			logger.Error("Error iterating pending requests", "error", err)
			return
		}

		sent := 0
		for _, email := range order {
			d := digests[email]
			if err := jr.services.Email.SendPendingReminder(ctx, email, d.ownerName, d.lines); err != nil {
				logger.Error("Failed to send pending-request reminder", "to", email, "error", err)
				continue
			}
			sent++
		}

		logger.Info("Sent pending-request reminders", "sellers", sent)
	})
}

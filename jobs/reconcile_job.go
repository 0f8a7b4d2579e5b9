// File: /jobs/reconcile_job.go
package jobs

import (
	"fmt"
	"time"

	"campushub-api/models"
	"gorm.io/gorm"
)

// CounterReconcileJob periodically re-derives each event's attendee counter
// and checked-in list from the attendance ledger. The ledger is the source of
// truth; the derived fields exist for cheap reads and can drift only if a
// write path bypasses the registration and check-in services.
type CounterReconcileJob struct {
	db     *gorm.DB
	ticker *time.Ticker
	done   chan bool
}

// NewCounterReconcileJob creates a new reconcile job
func NewCounterReconcileJob(db *gorm.DB, interval time.Duration) *CounterReconcileJob {
	return &CounterReconcileJob{
		db:     db,
		ticker: time.NewTicker(interval),
		done:   make(chan bool),
	}
}

// Start begins the reconcile job
func (j *CounterReconcileJob) Start() {
	fmt.Println("Counter reconcile job started")

	go func() {
		// Run immediately on start
		j.reconcile()

		// Then run on schedule
		for {
			select {
			case <-j.ticker.C:
				j.reconcile()
			case <-j.done:
				fmt.Println("Counter reconcile job stopped")
				return
			}
		}
	}()
}

// Stop stops the reconcile job
func (j *CounterReconcileJob) Stop() {
	j.ticker.Stop()
	j.done <- true
}

func (j *CounterReconcileJob) reconcile() {
	fmt.Println("Running counter reconcile...")

	var eventIDs []string
	if err := j.db.Model(&models.Event{}).Pluck("id", &eventIDs).Error; err != nil {
		fmt.Printf("Error listing events for reconcile: %v\n", err)
		return
	}

	fixed := 0
	for _, eventID := range eventIDs {
		changed, err := j.reconcileEvent(eventID)
		if err != nil {
			fmt.Printf("Error reconciling event %s: %v\n", eventID, err)
			continue
		}
		if changed {
			fixed++
		}
	}

	if fixed > 0 {
		fmt.Printf("Counter reconcile fixed %d event(s)\n", fixed)
	} else {
		fmt.Println("Counter reconcile completed, no drift found")
	}
}

func (j *CounterReconcileJob) reconcileEvent(eventID string) (bool, error) {
	changed := false

	err := j.db.Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.First(&event, "id = ?", eventID).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.Attendance{}).Where("event_id = ?", eventID).Count(&count).Error; err != nil {
			return err
		}

		var checkedInUids []string
		if err := tx.Model(&models.Attendance{}).
			Where("event_id = ? AND checked_in = ?", eventID, true).
			Order("checked_in_at ASC").
			Pluck("user_id", &checkedInUids).Error; err != nil {
			return err
		}

		uids := models.StringSlice(checkedInUids)
		if event.Attendees == int(count) && sameUids(event.CheckedInUids, uids) {
			return nil
		}

		changed = true
		return tx.Model(&models.Event{}).Where("id = ?", eventID).Updates(map[string]interface{}{
			"attendees":       int(count),
			"checked_in_uids": uids,
		}).Error
	})

	return changed, err
}

func sameUids(a, b models.StringSlice) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]bool, len(a))
	for _, uid := range a {
		seen[uid] = true
	}
	for _, uid := range b {
		if !seen[uid] {
			return false
		}
	}
	return true
}

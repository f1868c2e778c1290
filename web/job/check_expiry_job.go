// Package job contains the panel's scheduled cron jobs.
package job

import (
	"time"

	"labstock/logger"
	"labstock/web/service"

	"go.uber.org/atomic"
)

// expiryWarningWindow is how far ahead the job looks for expiring stock.
const expiryWarningWindow = 30 * 24 * time.Hour

// CheckExpiryJob logs inventory items that expire within the warning window.
type CheckExpiryJob struct {
	inventoryService service.InventoryService

	running *atomic.Bool
}

func NewCheckExpiryJob() *CheckExpiryJob {
	return &CheckExpiryJob{running: atomic.NewBool(false)}
}

func (j *CheckExpiryJob) Run() {
	if !j.running.CompareAndSwap(false, true) {
		return
	}
	defer j.running.Store(false)

	items, err := j.inventoryService.ExpiringItems(expiryWarningWindow)
	if err != nil {
		logger.Warning("check expiring inventory failed:", err)
		return
	}
	now := time.Now()
	for _, item := range items {
		expiry := time.UnixMilli(item.ExpiryTime)
		if expired(item.ExpiryTime, now) {
			logger.Warningf("%s %s %q (%s) expired on %s",
				item.Laboratory, item.Kind, item.Name, item.AssetTag, expiry.Format("2006-01-02"))
		} else {
			logger.Warningf("%s %s %q (%s) expires on %s",
				item.Laboratory, item.Kind, item.Name, item.AssetTag, expiry.Format("2006-01-02"))
		}
	}
}

// expired reports whether an expiry timestamp already passed. Zero means the
// item never expires.
func expired(expiryTime int64, now time.Time) bool {
	return expiryTime > 0 && expiryTime <= now.UnixMilli()
}

package analytics

import (
	"github.com/diillson/fuellog-go/internal/domain/entity"
)

// CheckChronology flags odometer-adjacent pairs whose dates run backwards.
// Out-of-order readings are still accepted by every calculator; this only
// makes the reinterpretation visible.
func CheckChronology(records []entity.UsageRecord) []entity.Diagnostic {
	sorted := sortedBy(records, Odometer)
	var diags []entity.Diagnostic
	for i := 1; i < len(sorted); i++ {
		prev, curr := sorted[i-1], sorted[i]
		if curr.OdometerKm > prev.OdometerKm && curr.Date < prev.Date {
			diags = append(diags, entity.Diagnostic{
				EventID:        curr.ID,
				Category:       curr.Category,
				Reason:         entity.ReasonOdometerOutOfOrder,
				RelatedEventID: prev.ID,
			})
		}
	}
	return diags
}

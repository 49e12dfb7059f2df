// Package calculator computes dashboard aggregates over settlement rows.
// All functions are pure: they take rows and return totals, with NULL
// amounts treated as absent rather than zero-valued data.
package calculator

import "github.com/mkwon-dev/riderpay/internal/models"

// amount unwraps a nullable money field, treating NULL as 0 for sums.
func amount(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// Summarize aggregates one upload's settlement rows for the admin
// dashboard.
func Summarize(records []*models.OfficialSettlement) models.SettlementSummary {
	summary := models.SettlementSummary{TotalRiders: len(records)}

	for _, rec := range records {
		summary.TotalSettlementAmount += amount(rec.SettlementAmount)
		summary.TotalFinalPayout += amount(rec.FinalPayout)
		summary.TotalDeductions += amount(rec.DeductionTotal)
	}

	if summary.TotalRiders > 0 {
		summary.AveragePayout = summary.TotalFinalPayout / float64(summary.TotalRiders)
	}
	return summary
}

// BranchProfit aggregates a week's settlement rows into the branch profit
// view: fee income (lease + mission fees collected from riders) plus the
// spread between what the platform settled and what was paid out.
func BranchProfit(weekIdentifier string, records []*models.OfficialSettlement) models.BranchProfit {
	profit := models.BranchProfit{
		WeekIdentifier: weekIdentifier,
		RiderCount:     len(records),
	}

	for _, rec := range records {
		profit.TotalSettlementAmount += amount(rec.SettlementAmount)
		profit.TotalFinalPayout += amount(rec.FinalPayout)
		profit.TotalDeductions += amount(rec.DeductionTotal)
		profit.FeeIncome += amount(rec.LeaseFee) + amount(rec.MissionFee)
	}

	profit.NetMargin = profit.FeeIncome + (profit.TotalSettlementAmount - profit.TotalFinalPayout)
	return profit
}

// RiderPlatformIDs extracts the platform ID values from a rider profile,
// for matching the rider against settlement rows.
func RiderPlatformIDs(profile *models.Profile) []string {
	if len(profile.PlatformIDs) == 0 {
		return nil
	}
	ids := make([]string, 0, len(profile.PlatformIDs))
	for _, id := range profile.PlatformIDs {
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

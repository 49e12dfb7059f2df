package calculator

import (
	"sort"
	"testing"

	"github.com/mkwon-dev/riderpay/internal/models"
)

func ptr(f float64) *float64 { return &f }

func TestSummarize(t *testing.T) {
	t.Run("aggregates across rows", func(t *testing.T) {
		records := []*models.OfficialSettlement{
			{SettlementAmount: ptr(1000), FinalPayout: ptr(800), DeductionTotal: ptr(200)},
			{SettlementAmount: ptr(2000), FinalPayout: ptr(1600), DeductionTotal: ptr(400)},
		}

		got := Summarize(records)
		if got.TotalRiders != 2 {
			t.Errorf("expected 2 riders, got %d", got.TotalRiders)
		}
		if got.TotalSettlementAmount != 3000 || got.TotalFinalPayout != 2400 || got.TotalDeductions != 600 {
			t.Errorf("unexpected totals: %+v", got)
		}
		if got.AveragePayout != 1200 {
			t.Errorf("expected average payout 1200, got %v", got.AveragePayout)
		}
	})

	t.Run("null amounts count as zero but the rider still counts", func(t *testing.T) {
		records := []*models.OfficialSettlement{
			{SettlementAmount: ptr(1000), FinalPayout: ptr(1000)},
			{},
		}

		got := Summarize(records)
		if got.TotalRiders != 2 {
			t.Errorf("expected 2 riders, got %d", got.TotalRiders)
		}
		if got.TotalSettlementAmount != 1000 {
			t.Errorf("expected total 1000, got %v", got.TotalSettlementAmount)
		}
		if got.AveragePayout != 500 {
			t.Errorf("expected average 500, got %v", got.AveragePayout)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		got := Summarize(nil)
		if got.TotalRiders != 0 || got.AveragePayout != 0 {
			t.Errorf("expected zero summary, got %+v", got)
		}
	})
}

func TestBranchProfit(t *testing.T) {
	records := []*models.OfficialSettlement{
		{SettlementAmount: ptr(1000000), FinalPayout: ptr(900000), LeaseFee: ptr(50000), MissionFee: ptr(10000)},
		{SettlementAmount: ptr(500000), FinalPayout: ptr(480000)},
	}

	got := BranchProfit("2026-W30", records)
	if got.WeekIdentifier != "2026-W30" || got.RiderCount != 2 {
		t.Errorf("unexpected profit header: %+v", got)
	}
	if got.FeeIncome != 60000 {
		t.Errorf("expected fee income 60000, got %v", got.FeeIncome)
	}
	// margin = fees + (settled - paid out)
	if got.NetMargin != 60000+120000 {
		t.Errorf("expected net margin 180000, got %v", got.NetMargin)
	}
}

func TestRiderPlatformIDs(t *testing.T) {
	t.Run("collects non-empty values", func(t *testing.T) {
		profile := &models.Profile{PlatformIDs: map[string]string{
			"baemin":  "B123",
			"coupang": "C456",
			"yogiyo":  "",
		}}

		ids := RiderPlatformIDs(profile)
		sort.Strings(ids)
		if len(ids) != 2 || ids[0] != "B123" || ids[1] != "C456" {
			t.Errorf("unexpected IDs: %v", ids)
		}
	})

	t.Run("no platform IDs", func(t *testing.T) {
		if ids := RiderPlatformIDs(&models.Profile{}); ids != nil {
			t.Errorf("expected nil, got %v", ids)
		}
	})
}

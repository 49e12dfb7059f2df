package parser

import (
	"github.com/mkwon-dev/riderpay/internal/excel"
	"github.com/mkwon-dev/riderpay/internal/models"
)

// ExtractRecords builds one settlement record per data row.
//
// Data rows are every row strictly after the header row. Each record is
// seeded with the upload and tenant IDs, then filled from the resolved
// columns: an empty cell stores NULL, a numeric cell stores its number,
// and text lands in the string fields. Money columns accept only numeric
// cells; text in a money column becomes NULL rather than a bogus zero.
//
// Rows whose rider_platform_id cell is empty or unmapped are dropped
// entirely. Real-world settlement sheets end with blank rows and subtotal
// footers, and the platform ID is the one field that reliably separates
// rider data from decoration. All other fields are optional.
//
// A zero-length result is legitimate here; the orchestrator decides whether
// that constitutes a failed ingestion.
func ExtractRecords(grid [][]excel.CellValue, fieldIdx map[string]int, startRow int, uploadID, tenantID string) []*models.OfficialSettlement {
	var records []*models.OfficialSettlement

	for rowIdx := startRow; rowIdx < len(grid); rowIdx++ {
		row := grid[rowIdx]
		rec := &models.OfficialSettlement{
			UploadID: uploadID,
			TenantID: tenantID,
		}

		for field, col := range fieldIdx {
			if col >= len(row) {
				continue
			}
			setField(rec, field, row[col])
		}

		if rec.RiderPlatformID == "" {
			continue
		}
		records = append(records, rec)
	}
	return records
}

// setField stores one cell into the record field it is mapped to.
// Empty cells leave the field NULL.
func setField(rec *models.OfficialSettlement, field string, cell excel.CellValue) {
	if cell.IsEmpty() {
		return
	}

	switch field {
	case models.FieldRiderPlatformID:
		rec.RiderPlatformID = cell.Text()
	case models.FieldRiderName:
		name := cell.Text()
		rec.RiderName = &name
	default:
		if target := moneyTarget(rec, field); target != nil {
			if n, ok := cell.Number(); ok {
				*target = &n
			}
		}
	}
}

// moneyTarget returns the pointer slot for a money column, or nil for
// names that are not money columns.
func moneyTarget(rec *models.OfficialSettlement, field string) **float64 {
	switch field {
	case "settlement_amount":
		return &rec.SettlementAmount
	case "support_fund":
		return &rec.SupportFund
	case "deduction_total":
		return &rec.DeductionTotal
	case "total_settlement_amount":
		return &rec.TotalSettlementAmount
	case "employment_insurance":
		return &rec.EmploymentInsurance
	case "industrial_accident_insurance":
		return &rec.IndustrialAccidentInsurance
	case "hourly_insurance":
		return &rec.HourlyInsurance
	case "retroactive_insurance":
		return &rec.RetroactiveInsurance
	case "lease_fee":
		return &rec.LeaseFee
	case "mission_fee":
		return &rec.MissionFee
	case "actual_payout":
		return &rec.ActualPayout
	case "withholding_tax":
		return &rec.WithholdingTax
	case "final_payout":
		return &rec.FinalPayout
	}
	return nil
}

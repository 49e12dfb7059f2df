package models

// OfficialSettlement is one rider's pay breakdown for one upload/week,
// parsed out of a platform settlement spreadsheet.
//
// Monetary fields are pointers: a missing or empty spreadsheet cell is
// stored as NULL, never as zero, so "no data" stays distinguishable from
// "zero won".
type OfficialSettlement struct {
	// ID is the database-assigned row ID.
	ID int64

	// UploadID is the upload this row was parsed from.
	UploadID string

	// TenantID is denormalized from the parent upload so tenant-scoped
	// queries need no join.
	TenantID string

	// RiderPlatformID is the rider's ID on the delivery platform. This is
	// the only required field: rows without it are dropped during parsing.
	RiderPlatformID string

	// RiderName is the rider's display name as it appears in the file.
	RiderName *string

	SettlementAmount            *float64
	SupportFund                 *float64
	DeductionTotal              *float64
	TotalSettlementAmount       *float64
	EmploymentInsurance         *float64
	IndustrialAccidentInsurance *float64
	HourlyInsurance             *float64
	RetroactiveInsurance        *float64
	LeaseFee                    *float64
	MissionFee                  *float64
	ActualPayout                *float64
	WithholdingTax              *float64
	FinalPayout                 *float64
}

// MoneyFields lists the settlement columns that carry signed amounts.
// The parser uses this set to decide which mapped fields coerce to numbers.
var MoneyFields = map[string]bool{
	"settlement_amount":             true,
	"support_fund":                  true,
	"deduction_total":               true,
	"total_settlement_amount":       true,
	"employment_insurance":          true,
	"industrial_accident_insurance": true,
	"hourly_insurance":              true,
	"retroactive_insurance":         true,
	"lease_fee":                     true,
	"mission_fee":                   true,
	"actual_payout":                 true,
	"withholding_tax":               true,
	"final_payout":                  true,
}

// FieldRiderPlatformID is the logical field name that gates row validity.
const FieldRiderPlatformID = "rider_platform_id"

// FieldRiderName is the logical field name for the optional rider name.
const FieldRiderName = "rider_name"

// SettlementSummary aggregates one upload's settlements for dashboards.
type SettlementSummary struct {
	// TotalRiders is the number of settlement rows (one per rider).
	TotalRiders int

	// TotalSettlementAmount is the sum of settlement_amount over all rows.
	TotalSettlementAmount float64

	// TotalFinalPayout is the sum of final_payout over all rows.
	TotalFinalPayout float64

	// TotalDeductions is the sum of deduction_total over all rows.
	TotalDeductions float64

	// AveragePayout is TotalFinalPayout divided by TotalRiders,
	// zero when there are no rows.
	AveragePayout float64
}

// BranchProfit aggregates a week's settlements into a branch profit view:
// what the platform paid out versus what the branch collected back in fees.
type BranchProfit struct {
	// WeekIdentifier is the settlement period the aggregate covers.
	WeekIdentifier string

	// RiderCount is the number of settlement rows in the period.
	RiderCount int

	// TotalSettlementAmount is the gross settlement paid by the platform.
	TotalSettlementAmount float64

	// TotalFinalPayout is what was actually paid out to riders.
	TotalFinalPayout float64

	// TotalDeductions is the insurance/deduction total withheld.
	TotalDeductions float64

	// FeeIncome is the branch's income from lease and mission fees.
	FeeIncome float64

	// NetMargin is FeeIncome plus the spread between settlement and payout.
	NetMargin float64
}

// FeeUpdate changes the lease and mission fees of one settlement row.
// Only these two fields are editable after ingestion. It is decoded
// directly from the fee editor payload, hence the JSON tags. A null fee
// clears the column back to NULL.
type FeeUpdate struct {
	// ID is the settlement row to update.
	ID int64 `json:"id"`

	// LeaseFee is the new vehicle lease fee.
	LeaseFee *float64 `json:"lease_fee"`

	// MissionFee is the new mission/incentive fee.
	MissionFee *float64 `json:"mission_fee"`
}

package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/mkwon-dev/riderpay/internal/models"
	"github.com/mkwon-dev/riderpay/internal/storage"
)

const settlementColumns = `id, upload_id, tenant_id, rider_platform_id, rider_name,
	settlement_amount, support_fund, deduction_total, total_settlement_amount,
	employment_insurance, industrial_accident_insurance, hourly_insurance, retroactive_insurance,
	lease_fee, mission_fee, actual_payout, withholding_tax, final_payout`

// InsertSettlements persists one upload's settlement batch in a single
// transaction. A failed insert rolls back the whole batch so an upload
// never ends up with a partial record set.
func (s *SQLiteStore) InsertSettlements(ctx context.Context, records []*models.OfficialSettlement) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO official_settlements (upload_id, tenant_id, rider_platform_id, rider_name,
			settlement_amount, support_fund, deduction_total, total_settlement_amount,
			employment_insurance, industrial_accident_insurance, hourly_insurance, retroactive_insurance,
			lease_fee, mission_fee, actual_payout, withholding_tax, final_payout)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("failed to prepare settlement insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		res, err := stmt.ExecContext(ctx,
			rec.UploadID, rec.TenantID, rec.RiderPlatformID, rec.RiderName,
			rec.SettlementAmount, rec.SupportFund, rec.DeductionTotal, rec.TotalSettlementAmount,
			rec.EmploymentInsurance, rec.IndustrialAccidentInsurance, rec.HourlyInsurance, rec.RetroactiveInsurance,
			rec.LeaseFee, rec.MissionFee, rec.ActualPayout, rec.WithholdingTax, rec.FinalPayout,
		)
		if err != nil {
			return fmt.Errorf("failed to insert settlement for rider %s: %w", rec.RiderPlatformID, err)
		}
		if id, err := res.LastInsertId(); err == nil {
			rec.ID = id
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit settlement batch: %w", err)
	}
	return nil
}

// ListSettlementsByUpload returns the settlement rows of one upload.
func (s *SQLiteStore) ListSettlementsByUpload(ctx context.Context, tenantID, uploadID string) ([]*models.OfficialSettlement, error) {
	return s.listSettlements(ctx,
		"tenant_id = ? AND upload_id = ? ORDER BY id",
		tenantID, uploadID)
}

// ListSettlementsByWeek returns a tenant's settlement rows across all
// uploads labeled with the given week identifier.
func (s *SQLiteStore) ListSettlementsByWeek(ctx context.Context, tenantID, weekIdentifier string) ([]*models.OfficialSettlement, error) {
	return s.listSettlements(ctx,
		`tenant_id = ? AND upload_id IN (SELECT id FROM uploads WHERE tenant_id = ? AND week_identifier = ?)
		 ORDER BY id`,
		tenantID, tenantID, weekIdentifier)
}

// ListSettlementsByRider returns a tenant's settlement rows whose
// rider_platform_id is any of platformIDs, newest first.
func (s *SQLiteStore) ListSettlementsByRider(ctx context.Context, tenantID string, platformIDs []string) ([]*models.OfficialSettlement, error) {
	if len(platformIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?, ", len(platformIDs)-1) + "?"
	args := make([]any, 0, len(platformIDs)+1)
	args = append(args, tenantID)
	for _, id := range platformIDs {
		args = append(args, id)
	}

	return s.listSettlements(ctx,
		"tenant_id = ? AND rider_platform_id IN ("+placeholders+") ORDER BY id DESC",
		args...)
}

func (s *SQLiteStore) listSettlements(ctx context.Context, where string, args ...any) ([]*models.OfficialSettlement, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+settlementColumns+" FROM official_settlements WHERE "+where,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query settlements: %w", err)
	}
	defer rows.Close()

	var records []*models.OfficialSettlement
	for rows.Next() {
		rec := &models.OfficialSettlement{}
		if err := rows.Scan(&rec.ID, &rec.UploadID, &rec.TenantID, &rec.RiderPlatformID, &rec.RiderName,
			&rec.SettlementAmount, &rec.SupportFund, &rec.DeductionTotal, &rec.TotalSettlementAmount,
			&rec.EmploymentInsurance, &rec.IndustrialAccidentInsurance, &rec.HourlyInsurance, &rec.RetroactiveInsurance,
			&rec.LeaseFee, &rec.MissionFee, &rec.ActualPayout, &rec.WithholdingTax, &rec.FinalPayout); err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlements: %w", err)
	}
	return records, nil
}

// UpdateFees applies lease/mission fee edits to existing settlement rows.
// Matching is strict: every update must hit a row with the given ID under
// the tenant, otherwise the whole batch rolls back with ErrNotFound.
// Nothing is ever inserted here — an unknown ID is a client error, not a
// new settlement.
func (s *SQLiteStore) UpdateFees(ctx context.Context, tenantID string, updates []models.FeeUpdate) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		"UPDATE official_settlements SET lease_fee = ?, mission_fee = ? WHERE id = ? AND tenant_id = ?",
	)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare fee update: %w", err)
	}
	defer stmt.Close()

	updated := 0
	for _, u := range updates {
		res, err := stmt.ExecContext(ctx, u.LeaseFee, u.MissionFee, u.ID, tenantID)
		if err != nil {
			return 0, fmt.Errorf("failed to update fees for settlement %d: %w", u.ID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to check fee update: %w", err)
		}
		if n == 0 {
			return 0, fmt.Errorf("settlement %d: %w", u.ID, storage.ErrNotFound)
		}
		updated += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit fee updates: %w", err)
	}
	return updated, nil
}

package services

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"flower-backend/internal/apperr"
	"flower-backend/internal/pdf"
	"flower-backend/internal/storage"
	"flower-backend/internal/timeutil"

	"github.com/xuri/excelize/v2"
)

// ReportService produces the settlement register (Excel) and per-settlement
// statements (PDF), archiving copies when an archive bucket is configured.
type ReportService struct {
	Settlements *SettlementService
	Farmers     *FarmerService
	Archiver    *storage.Archiver
}

func NewReportService(settlements *SettlementService, farmers *FarmerService, archiver *storage.Archiver) *ReportService {
	return &ReportService{Settlements: settlements, Farmers: farmers, Archiver: archiver}
}

// SettlementRegister renders all settlements dated in [from, to] as one
// Excel sheet.
func (s *ReportService) SettlementRegister(ctx context.Context, from, to time.Time) ([]byte, error) {
	settlements, farmerNames, err := s.Settlements.ListForRegister(ctx, from, to)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Register"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Settlement No", "Date", "Farmer", "Period Start", "Period End",
		"Entries", "Quantity", "Gross", "Commission", "Advances", "Net Payable", "Status"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDDDDD"}, Pattern: 1},
	})
	if err == nil {
		f.SetCellStyle(sheet, "A1", "L1", headerStyle)
	}

	for i, st := range settlements {
		row := i + 2
		values := []interface{}{
			st.SettlementNumber,
			st.SettlementDate.Format("2006-01-02"),
			farmerNames[st.FarmerID],
			st.PeriodStart.Format("2006-01-02"),
			st.PeriodEnd.Format("2006-01-02"),
			st.TotalEntries,
			st.TotalQuantity.StringFixed(2),
			st.GrossAmount.StringFixed(2),
			st.TotalCommission.StringFixed(2),
			st.TotalAdvances.StringFixed(2),
			st.NetPayable.StringFixed(2),
			string(st.Status),
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			f.SetCellValue(sheet, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write register: %w", err)
	}

	s.archive(ctx,
		fmt.Sprintf("registers/settlements-%s-%s.xlsx", from.Format("20060102"), to.Format("20060102")),
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())

	return buf.Bytes(), nil
}

// SettlementStatement renders the PDF statement for one settlement.
func (s *ReportService) SettlementStatement(ctx context.Context, settlementID int) ([]byte, string, error) {
	settlement, err := s.Settlements.GetSettlement(ctx, settlementID)
	if err != nil {
		return nil, "", err
	}

	farmer, err := s.Farmers.GetFarmer(ctx, settlement.FarmerID)
	if err != nil {
		return nil, "", err
	}

	data, err := pdf.SettlementStatement(settlement, farmer)
	if err != nil {
		return nil, "", err
	}

	filename := settlement.SettlementNumber + ".pdf"
	s.archive(ctx, "statements/"+filename, "application/pdf", data)
	return data, filename, nil
}

// ParseRegisterRange parses the from/to query params, defaulting to the
// current month.
func ParseRegisterRange(fromStr, toStr string) (time.Time, time.Time, error) {
	now := timeutil.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, timeutil.IST)
	to := timeutil.StartOfDay(now)

	var err error
	if fromStr != "" {
		from, err = timeutil.ParseInIST(timeutil.DateLayout, fromStr)
		if err != nil {
			return time.Time{}, time.Time{}, apperr.BadRequest("VALIDATION", "from must be YYYY-MM-DD")
		}
	}
	if toStr != "" {
		to, err = timeutil.ParseInIST(timeutil.DateLayout, toStr)
		if err != nil {
			return time.Time{}, time.Time{}, apperr.BadRequest("VALIDATION", "to must be YYYY-MM-DD")
		}
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, apperr.BadRequest("VALIDATION", "to must not precede from")
	}
	return from, to, nil
}

func (s *ReportService) archive(ctx context.Context, key, contentType string, data []byte) {
	if s.Archiver == nil {
		return
	}
	if err := s.Archiver.Upload(ctx, key, contentType, data); err != nil {
		log.Printf("[Archive] %v", err)
	}
}

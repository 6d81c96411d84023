package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"

	"rentalops/internal/domain/models"
	"rentalops/internal/repositories"
	"rentalops/internal/utils"
)

// DocsService renders the bill PDF for a finalized return. The record
// already carries the full breakdown and payment snapshot, so rendering
// needs no further queries.
type DocsService struct {
	ReturnRepo repositories.ReturnRepository
	RequestID  string
	Loader     func(int64) (models.VehicleReturn, error)
}

func (s DocsService) GenerateBill(returnID int64) ([]byte, string, error) {
	rec, err := s.loadReturn(returnID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_bill", fmt.Sprintf("return_id=%d", returnID))
	return buildBillPDF(rec)
}

func (s DocsService) loadReturn(returnID int64) (models.VehicleReturn, error) {
	if s.Loader != nil {
		return s.Loader(returnID)
	}
	return s.ReturnRepo.GetByID(returnID)
}

func buildBillPDF(r models.VehicleReturn) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Tagihan Pengembalian", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "TAGIHAN PENGEMBALIAN KENDARAAN")
	pdf.Ln(12)

	billNo := fmt.Sprintf("BILL-%d-%s", r.BookingID, safeFilenamePart(r.BookingCode))
	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("No Tagihan    : %s", billNo),
		fmt.Sprintf("Kode Booking  : %s", safe(r.BookingCode, "-")),
		fmt.Sprintf("Pengambilan   : %s", safe(r.PickupAt, "-")),
		fmt.Sprintf("Pengembalian  : %s", safe(r.ReturnAt, "-")),
		fmt.Sprintf("Odometer      : %d -> %d (%d km)", r.OdometerStart, r.OdometerEnd, r.DistanceKm),
		fmt.Sprintf("Durasi        : %d menit", r.DurationMinutes),
		fmt.Sprintf("Kondisi       : %s", safe(r.VehicleCondition, "-")),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Rincian Biaya:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	rows := []string{
		"Biaya jarak    : " + utils.FormatRupiah(r.CostByDistance),
		"Biaya waktu    : " + utils.FormatRupiah(r.CostByTime),
		"Biaya berlaku  : " + utils.FormatRupiah(r.AppliedCost),
		"Biaya kerusakan: " + utils.FormatRupiah(r.DamageCost),
	}
	for _, s := range rows {
		pdf.Cell(0, 6, s)
		pdf.Ln(6)
	}
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total: "+utils.FormatRupiah(r.TotalCost))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 11)
	payRows := []string{
		"Uang muka      : " + utils.FormatRupiah(r.AdvancePaid),
		"Pelunasan      : " + utils.FormatRupiah(r.CollectedAmount) + " (" + safe(r.PaymentMethod, "-") + ")",
	}
	if r.GatewayPaymentID != "" {
		payRows = append(payRows, "Ref pembayaran : "+r.GatewayPaymentID)
	}
	for _, s := range payRows {
		pdf.Cell(0, 6, s)
		pdf.Ln(6)
	}

	if strings.TrimSpace(r.DamageNotes) != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 6, "Catatan kerusakan: "+r.DamageNotes, "", "", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("TAGIHAN_%d_%s.pdf", r.BookingID, safeFilenamePart(r.BookingCode))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}

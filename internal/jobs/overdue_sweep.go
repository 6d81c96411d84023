package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"rentalops/internal/repositories"
	"rentalops/internal/utils"
)

// OverdueSweep logs rentals that were picked up but never returned past
// the grace window, so the counter staff can chase them. Read-only: it
// never mutates payment state and never retries anything.
type OverdueSweep struct {
	BookingRepo repositories.BookingRepository
	GraceDays   int
}

// Run executes one sweep.
func (j OverdueSweep) Run() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[JOBS] overdue sweep panic: %v", r)
		}
	}()

	grace := j.GraceDays
	if grace <= 0 {
		grace = 3
	}
	cutoff := utils.FormatDate(time.Now().AddDate(0, 0, -grace))

	overdue, err := j.BookingRepo.ListOverdue(cutoff)
	if err != nil {
		utils.LogEvent("", "jobs", "overdue_sweep_error", err.Error())
		return
	}
	if len(overdue) == 0 {
		utils.LogEvent("", "jobs", "overdue_sweep", "tidak ada pengembalian tertunggak")
		return
	}

	for _, b := range overdue {
		utils.LogEvent("", "jobs", "overdue_return",
			fmt.Sprintf("booking_id=%d kode=%s unit=%s ambil=%s uang_muka=%s",
				b.ID, b.BookingCode, b.VehicleCode, b.PickupDate, utils.FormatRupiah(b.AdvancePaid)))
	}
	utils.LogEvent("", "jobs", "overdue_sweep",
		fmt.Sprintf("total=%d batas=%s", len(overdue), cutoff))
}

// NewScheduler wires the sweep on a daily schedule (06:00 local).
func NewScheduler(sweep OverdueSweep) *cron.Cron {
	c := cron.New(cron.WithLocation(time.Local))
	if _, err := c.AddFunc("0 6 * * *", sweep.Run); err != nil {
		log.Printf("[JOBS] gagal mendaftarkan overdue sweep: %v", err)
	}
	return c
}

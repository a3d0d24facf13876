package service

import (
	"context"
	"time"

	"agroshare-backend/internal/logger"
	"agroshare-backend/internal/repository"
	"agroshare-backend/internal/schedule"
)

type availabilityService struct {
	bookingRepo repository.BookingRepository
}

func NewAvailabilityService(bookingRepo repository.BookingRepository) AvailabilityService {
	return &availabilityService{bookingRepo: bookingRepo}
}

func (s *availabilityService) IsDayBooked(ctx context.Context, machineID, date string) (bool, error) {
	// Daily exclusivity: any confirmed booking blocks the whole date,
	// so this is date equality, never interval arithmetic.
	return s.bookingRepo.ExistsOnDate(ctx, machineID, date)
}

func (s *availabilityService) IsDurationLegal(ctx context.Context, machineID, date string, startHour, duration int) (bool, string, error) {
	_, crosses := schedule.EndHour(startHour, duration)
	if !crosses {
		return true, "", nil
	}
	nextDay, err := schedule.NextDay(date)
	if err != nil {
		return false, "", err
	}
	booked, err := s.IsDayBooked(ctx, machineID, nextDay)
	if err != nil {
		return false, "", err
	}
	if booked {
		return false, "next day is fully booked", nil
	}
	return true, "", nil
}

func (s *availabilityService) LockedDates(ctx context.Context, machineID string) ([]string, error) {
	dates, err := s.bookingRepo.ConfirmedDates(ctx, machineID)
	if err != nil {
		// Fail open for display only: the store still enforces the
		// real constraint on the write path.
		logger.Error("Failed to fetch booked dates, degrading to empty", "machine_id", machineID, "error", err)
		return nil, nil
	}
	return dates, nil
}

func (s *availabilityService) MonthView(ctx context.Context, machineID string, cursor schedule.MonthCursor, selected string, today time.Time) ([]schedule.DayCell, error) {
	dates, err := s.LockedDates(ctx, machineID)
	if err != nil {
		return nil, err
	}
	locked := make(map[string]bool, len(dates))
	for _, d := range dates {
		locked[d] = true
	}
	return schedule.MonthView(cursor, locked, selected, today), nil
}

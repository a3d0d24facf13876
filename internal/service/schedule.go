package service

import (
	"context"
	"fmt"
	"strings"

	"agroshare-backend/internal/domain"
	"agroshare-backend/internal/repository"
	"agroshare-backend/internal/schedule"
)

type scheduleService struct {
	machineRepo repository.MachineRepository
	bookingRepo repository.BookingRepository
	requestRepo repository.RequestRepository
}

func NewScheduleService(
	machineRepo repository.MachineRepository,
	bookingRepo repository.BookingRepository,
	requestRepo repository.RequestRepository,
) ScheduleService {
	return &scheduleService{
		machineRepo: machineRepo,
		bookingRepo: bookingRepo,
		requestRepo: requestRepo,
	}
}

// MachineSchedule joins the machine's confirmed-booking dates with its
// pending-request count for one month of the seller dashboard. Empty
// booking and request lists produce empty results, never an error.
func (s *scheduleService) MachineSchedule(ctx context.Context, ownerID, machineID string, cursor schedule.MonthCursor) (*domain.MachineSchedule, error) {
	machine, err := s.machineRepo.GetByID(ctx, machineID)
	if err != nil {
		return nil, err
	}
	if machine.OwnerID != ownerID {
		return nil, ErrUnauthorized
	}

	dates, err := s.bookingRepo.ConfirmedDates(ctx, machineID)
	if err != nil {
		return nil, err
	}
	monthPrefix := monthKeyPrefix(cursor)
	booked := make([]string, 0, len(dates))
	for _, d := range dates {
		if strings.HasPrefix(d, monthPrefix) {
			booked = append(booked, d)
		}
	}

	pending, err := s.requestRepo.CountPending(ctx, machineID)
	if err != nil {
		return nil, err
	}

	return &domain.MachineSchedule{
		MachineID:    machineID,
		Year:         cursor.Year,
		Month:        int(cursor.Month),
		BookedDates:  booked,
		PendingCount: pending,
	}, nil
}

func (s *scheduleService) PendingCount(ctx context.Context, machineID string) (int, error) {
	return s.requestRepo.CountPending(ctx, machineID)
}

// monthKeyPrefix is the "yyyy-mm-" prefix shared by every date key in
// the cursor month.
func monthKeyPrefix(c schedule.MonthCursor) string {
	return fmt.Sprintf("%04d-%02d-", c.Year, int(c.Month))
}

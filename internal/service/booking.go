package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"agroshare-backend/internal/domain"
	"agroshare-backend/internal/repository"
	"agroshare-backend/internal/schedule"

	"github.com/google/uuid"
)

type bookingService struct {
	bookingRepo repository.BookingRepository
	machineRepo repository.MachineRepository
	userRepo    repository.UserRepository
	avail       AvailabilityService
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	machineRepo repository.MachineRepository,
	userRepo repository.UserRepository,
	avail AvailabilityService,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		machineRepo: machineRepo,
		userRepo:    userRepo,
		avail:       avail,
	}
}

func (s *bookingService) FinalizeBooking(ctx context.Context, userID, machineID, date string, startHour, duration int) (*domain.Booking, error) {
	machine, err := s.machineRepo.GetByID(ctx, machineID)
	if err != nil {
		return nil, err
	}

	if err := validateSelection(date, startHour, duration, time.Now()); err != nil {
		return nil, err
	}

	// Availability is fail-closed here: a store error aborts the write.
	booked, err := s.bookingRepo.ExistsOnDate(ctx, machineID, date)
	if err != nil {
		return nil, fmt.Errorf("availability check failed: %w", err)
	}
	if booked {
		return nil, ErrDayFullyBooked
	}
	legal, _, err := s.avail.IsDurationLegal(ctx, machineID, date, startHour, duration)
	if err != nil {
		return nil, fmt.Errorf("availability check failed: %w", err)
	}
	if !legal {
		return nil, ErrNextDayBooked
	}

	rate := schedule.ParseHourlyRate(machine.PricePerHour)
	endLabel, _ := schedule.EndLabel(startHour, duration)

	booking := &domain.Booking{
		ID:            uuid.NewString(),
		MachineID:     machineID,
		UserID:        userID,
		Date:          date,
		StartTime:     schedule.LabelFor(startHour),
		EndTime:       endLabel,
		Duration:      duration,
		TotalCost:     schedule.BaseCost(rate, duration),
		Status:        domain.BookingStatusConfirmed,
		InvoiceNumber: NewInvoiceNumber(),
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, userID, bookingID string) error {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking.UserID != userID {
		return ErrUnauthorized
	}
	return s.bookingRepo.UpdateStatus(ctx, bookingID, domain.BookingStatusCancelled)
}

func (s *bookingService) ListUserBookings(ctx context.Context, userID string) ([]domain.Booking, error) {
	return s.bookingRepo.ListByUser(ctx, userID)
}

func (s *bookingService) Invoice(ctx context.Context, userID, bookingID string) (*domain.Invoice, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	machine, err := s.machineRepo.GetByID(ctx, booking.MachineID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID && machine.OwnerID != userID {
		return nil, ErrUnauthorized
	}

	lesseeName := "Guest User"
	if lessee, err := s.userRepo.GetByID(ctx, booking.UserID); err == nil && lessee.FullName != "" {
		lesseeName = lessee.FullName
	}
	ownerName := ""
	if owner, err := s.userRepo.GetByID(ctx, machine.OwnerID); err == nil {
		ownerName = owner.FullName
	}

	return BuildInvoice(booking, machine.Name, lesseeName, ownerName), nil
}

// NewInvoiceNumber draws the random invoice number assigned once when a
// booking is finalized. It is stored on the booking and never changes.
func NewInvoiceNumber() string {
	return fmt.Sprintf("INV-%05d", rand.Intn(100000))
}

// BuildInvoice derives the read-only invoice from a finalized booking.
// Everything except the stored invoice number is recomputed, so two
// calls over the same booking always agree.
func BuildInvoice(b *domain.Booking, machineName, lesseeName, ownerName string) *domain.Invoice {
	fee := schedule.ServiceFee(b.TotalCost)
	total := b.TotalCost + fee

	invoiceDate := b.CreatedAt
	if t, err := time.Parse(time.RFC3339, b.CreatedAt); err == nil {
		invoiceDate = t.Format(schedule.DateKeyLayout)
	}

	return &domain.Invoice{
		Number:      b.InvoiceNumber,
		InvoiceDate: invoiceDate,
		BookingDate: b.Date,
		LesseeName:  lesseeName,
		OwnerName:   ownerName,
		Lines: []domain.InvoiceLine{
			{
				Description: machineName + " Rental",
				Quantity:    fmt.Sprintf("%d hrs", b.Duration),
				Rate:        schedule.PerUnitRate(b.TotalCost, b.Duration),
				Total:       b.TotalCost,
			},
			{
				Description: "Service Fee (5%)",
				Quantity:    "1",
				Rate:        fee,
				Total:       fee,
			},
		},
		Subtotal:      total,
		Total:         total,
		PaymentEntity: "AgroShare Tech Pvt Ltd",
		PaymentUPI:    "agroshare@upi",
	}
}

// validateSelection runs the client-side validation rules before any
// store call: enumerated duration, bookable start slot, not a past day.
func validateSelection(date string, startHour, duration int, today time.Time) error {
	day, err := schedule.ParseDateKey(date)
	if err != nil {
		return err
	}
	if schedule.IsPastDay(day, today) {
		return schedule.ErrPastDate
	}
	if !schedule.ValidStartHour(startHour) {
		return schedule.ErrInvalidStartHour
	}
	if !schedule.ValidDuration(duration) {
		return schedule.ErrInvalidDuration
	}
	return nil
}

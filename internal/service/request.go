package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"agroshare-backend/internal/domain"
	"agroshare-backend/internal/logger"
	"agroshare-backend/internal/repository"
	"agroshare-backend/internal/schedule"

	"github.com/google/uuid"
)

type requestService struct {
	txr         repository.TxRunner
	requestRepo repository.RequestRepository
	bookingRepo repository.BookingRepository
	machineRepo repository.MachineRepository
	userRepo    repository.UserRepository
	avail       AvailabilityService
	emailSvc    EmailService
}

func NewRequestService(
	txr repository.TxRunner,
	requestRepo repository.RequestRepository,
	bookingRepo repository.BookingRepository,
	machineRepo repository.MachineRepository,
	userRepo repository.UserRepository,
	avail AvailabilityService,
	emailSvc EmailService,
) RequestService {
	return &requestService{
		txr:         txr,
		requestRepo: requestRepo,
		bookingRepo: bookingRepo,
		machineRepo: machineRepo,
		userRepo:    userRepo,
		avail:       avail,
		emailSvc:    emailSvc,
	}
}

func (s *requestService) CreateRequest(ctx context.Context, requesterID, productID, date string, startHour, duration int, message string) (*domain.RentalRequest, error) {
	machine, err := s.machineRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	// The request-first entry honors the same availability checks as
	// the direct-booking flow.
	if err := validateSelection(date, startHour, duration, time.Now()); err != nil {
		return nil, err
	}
	booked, err := s.bookingRepo.ExistsOnDate(ctx, productID, date)
	if err != nil {
		return nil, fmt.Errorf("availability check failed: %w", err)
	}
	if booked {
		return nil, ErrDayFullyBooked
	}
	legal, _, err := s.avail.IsDurationLegal(ctx, productID, date, startHour, duration)
	if err != nil {
		return nil, fmt.Errorf("availability check failed: %w", err)
	}
	if !legal {
		return nil, ErrNextDayBooked
	}

	rate := schedule.ParseHourlyRate(machine.PricePerHour)
	endLabel, _ := schedule.EndLabel(startHour, duration)

	req := &domain.RentalRequest{
		ID:            uuid.NewString(),
		ProductID:     productID,
		RequesterID:   requesterID,
		RequestedDate: date,
		StartTime:     schedule.LabelFor(startHour),
		EndTime:       endLabel,
		Duration:      duration,
		EstimatedCost: schedule.BaseCost(rate, duration),
		Status:        domain.RequestStatusPending,
		Message:       message,
	}
	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	s.notifyOwner(ctx, machine, req)
	return req, nil
}

func (s *requestService) AcceptRequest(ctx context.Context, ownerID, requestID string) (*domain.Booking, error) {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	machine, err := s.machineRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if machine.OwnerID != ownerID {
		return nil, ErrUnauthorized
	}
	if req.Status != domain.RequestStatusPending {
		return nil, ErrAlreadyDecided
	}

	var booking *domain.Booking
	err = s.txr.WithTx(ctx, func(tx *sql.Tx) error {
		// Re-read under row lock: the pre-checks above can race with a
		// concurrent accept of the same request.
		locked, err := s.requestRepo.GetForUpdate(ctx, tx, requestID)
		if err != nil {
			return err
		}
		if locked.Status != domain.RequestStatusPending {
			return ErrAlreadyDecided
		}

		booked, err := s.bookingRepo.ExistsOnDateTx(ctx, tx, locked.ProductID, locked.RequestedDate)
		if err != nil {
			return err
		}
		if booked {
			return ErrDayFullyBooked
		}

		booking = bookingFromRequest(locked)
		if err := s.bookingRepo.CreateTx(ctx, tx, booking); err != nil {
			return err
		}
		// Same transaction: if this fails the booking insert rolls
		// back and the request stays pending for a retry.
		return s.requestRepo.UpdateStatusTx(ctx, tx, requestID, domain.RequestStatusAccepted)
	})
	if err != nil {
		return nil, err
	}

	if requester, err := s.userRepo.GetByID(ctx, req.RequesterID); err == nil {
		if err := s.emailSvc.SendRequestAccepted(ctx, requester.Email, machine.Name, req.RequestedDate); err != nil {
			logger.Warn("Failed to send acceptance email", "request_id", requestID, "error", err)
		}
	}
	return booking, nil
}

func (s *requestService) RejectRequest(ctx context.Context, ownerID, requestID string, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	machine, err := s.machineRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return err
	}
	if machine.OwnerID != ownerID {
		return ErrUnauthorized
	}
	if req.Status != domain.RequestStatusPending {
		return ErrAlreadyDecided
	}

	if err := s.requestRepo.UpdateStatus(ctx, requestID, domain.RequestStatusRejected); err != nil {
		return err
	}

	if requester, err := s.userRepo.GetByID(ctx, req.RequesterID); err == nil {
		if err := s.emailSvc.SendRequestRejected(ctx, requester.Email, machine.Name, req.RequestedDate); err != nil {
			logger.Warn("Failed to send rejection email", "request_id", requestID, "error", err)
		}
	}
	return nil
}

func (s *requestService) ListSellerRequests(ctx context.Context, ownerID string) ([]domain.RentalRequest, error) {
	productIDs, err := s.machineRepo.ListIDsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(productIDs) == 0 {
		return nil, nil
	}

	requests, err := s.requestRepo.ListByProducts(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	machines := make(map[string]*domain.Machine)
	requesterIDs := make([]string, 0, len(requests))
	seen := make(map[string]bool)
	for _, req := range requests {
		if !seen[req.RequesterID] {
			seen[req.RequesterID] = true
			requesterIDs = append(requesterIDs, req.RequesterID)
		}
	}
	users, err := s.userRepo.ListByIDs(ctx, requesterIDs)
	if err != nil {
		// Requests are still useful without requester details.
		logger.Warn("Failed to fetch requester details", "error", err)
		users = nil
	}
	userMap := make(map[string]*domain.User, len(users))
	for i := range users {
		userMap[users[i].ID] = &users[i]
	}

	for i := range requests {
		req := &requests[i]
		machine, ok := machines[req.ProductID]
		if !ok {
			machine, err = s.machineRepo.GetByID(ctx, req.ProductID)
			if err != nil {
				return nil, err
			}
			machines[req.ProductID] = machine
		}
		req.Machine = machine
		req.Requester = userMap[req.RequesterID]
	}
	return requests, nil
}

func (s *requestService) ListUserRequests(ctx context.Context, requesterID string) ([]domain.RentalRequest, error) {
	return s.requestRepo.ListByRequester(ctx, requesterID)
}

func (s *requestService) notifyOwner(ctx context.Context, machine *domain.Machine, req *domain.RentalRequest) {
	owner, err := s.userRepo.GetByID(ctx, machine.OwnerID)
	if err != nil {
		logger.Warn("Failed to fetch owner for request notification", "machine_id", machine.ID, "error", err)
		return
	}
	requesterName := "A renter"
	if requester, err := s.userRepo.GetByID(ctx, req.RequesterID); err == nil && requester.FullName != "" {
		requesterName = requester.FullName
	}
	if err := s.emailSvc.SendRequestReceived(ctx, owner.Email, requesterName, machine.Name, req.RequestedDate); err != nil {
		logger.Warn("Failed to send request notification", "request_id", req.ID, "error", err)
	}
}

// bookingFromRequest is the field-for-field projection of an accepted
// request into its booking: product_id->machine_id,
// requester_id->user_id, requested_date->date, estimated->total cost.
func bookingFromRequest(req *domain.RentalRequest) *domain.Booking {
	return &domain.Booking{
		ID:            uuid.NewString(),
		MachineID:     req.ProductID,
		UserID:        req.RequesterID,
		Date:          req.RequestedDate,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Duration:      req.Duration,
		TotalCost:     req.EstimatedCost,
		Status:        domain.BookingStatusConfirmed,
		InvoiceNumber: NewInvoiceNumber(),
	}
}

package service

import (
	"context"
	"errors"
	"time"

	"agroshare-backend/internal/domain"
	"agroshare-backend/internal/repository"
	"agroshare-backend/internal/schedule"

	"github.com/google/uuid"
)

type machineService struct {
	machineRepo repository.MachineRepository
}

func NewMachineService(machineRepo repository.MachineRepository) MachineService {
	return &machineService{machineRepo: machineRepo}
}

func (s *machineService) AddMachine(ctx context.Context, machine *domain.Machine) error {
	if machine.Name == "" {
		return errors.New("machine name is required")
	}
	if machine.OwnerID == "" {
		return errors.New("owner is required")
	}
	// Available dates are advertising intent; still reject malformed or
	// past days the wizard should never have produced.
	today := time.Now()
	for _, d := range machine.AvailableDates {
		day, err := schedule.ParseDateKey(d)
		if err != nil {
			return err
		}
		if schedule.IsPastDay(day, today) {
			return schedule.ErrPastDate
		}
	}
	if machine.ID == "" {
		machine.ID = uuid.NewString()
	}
	return s.machineRepo.Create(ctx, machine)
}

func (s *machineService) GetMachine(ctx context.Context, id string) (*domain.Machine, error) {
	return s.machineRepo.GetByID(ctx, id)
}

func (s *machineService) ListMachines(ctx context.Context) ([]domain.Machine, error) {
	return s.machineRepo.List(ctx)
}

func (s *machineService) ListMyMachines(ctx context.Context, ownerID string) ([]domain.Machine, error) {
	return s.machineRepo.ListByOwner(ctx, ownerID)
}

func (s *machineService) SetImage(ctx context.Context, ownerID, machineID, url string) error {
	machine, err := s.machineRepo.GetByID(ctx, machineID)
	if err != nil {
		return err
	}
	if machine.OwnerID != ownerID {
		return ErrUnauthorized
	}
	return s.machineRepo.SetImageURL(ctx, machineID, url)
}

package unit

import (
	"context"
	"testing"

	"agroshare-backend/internal/domain"
	"agroshare-backend/internal/schedule"
	"agroshare-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAddMachine(t *testing.T) {
	ctx := context.Background()

	t.Run("Assigns ID and stores", func(t *testing.T) {
		machineRepo := new(MockMachineRepo)
		svc := service.NewMachineService(machineRepo)

		machineRepo.On("Create", ctx, mock.AnythingOfType("*domain.Machine")).Return(nil)

		machine := &domain.Machine{
			OwnerID:        "seller-1",
			Name:           "Mahindra 575",
			Category:       "tractor",
			PricePerHour:   "₹500",
			AvailableDates: []string{"2099-06-20", "2099-06-21"},
		}
		require.NoError(t, svc.AddMachine(ctx, machine))
		assert.NotEmpty(t, machine.ID)
		machineRepo.AssertExpectations(t)
	})

	t.Run("Requires a name", func(t *testing.T) {
		machineRepo := new(MockMachineRepo)
		svc := service.NewMachineService(machineRepo)

		err := svc.AddMachine(ctx, &domain.Machine{OwnerID: "seller-1"})
		assert.Error(t, err)
		machineRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Rejects malformed advertised date", func(t *testing.T) {
		machineRepo := new(MockMachineRepo)
		svc := service.NewMachineService(machineRepo)

		err := svc.AddMachine(ctx, &domain.Machine{
			OwnerID:        "seller-1",
			Name:           "Rotavator",
			AvailableDates: []string{"20-06-2099"},
		})
		assert.Error(t, err)
	})

	t.Run("Rejects past advertised date", func(t *testing.T) {
		machineRepo := new(MockMachineRepo)
		svc := service.NewMachineService(machineRepo)

		err := svc.AddMachine(ctx, &domain.Machine{
			OwnerID:        "seller-1",
			Name:           "Rotavator",
			AvailableDates: []string{"2001-01-01"},
		})
		assert.ErrorIs(t, err, schedule.ErrPastDate)
	})
}

func TestSetMachineImage(t *testing.T) {
	ctx := context.Background()
	machine := &domain.Machine{ID: "m1", OwnerID: "seller-1", Name: "Mahindra 575"}

	t.Run("Owner replaces image", func(t *testing.T) {
		machineRepo := new(MockMachineRepo)
		svc := service.NewMachineService(machineRepo)

		machineRepo.On("GetByID", ctx, "m1").Return(machine, nil)
		machineRepo.On("SetImageURL", ctx, "m1", "http://localhost:8080/api/v1/images/m1/a.jpg").Return(nil)

		err := svc.SetImage(ctx, "seller-1", "m1", "http://localhost:8080/api/v1/images/m1/a.jpg")
		assert.NoError(t, err)
		machineRepo.AssertExpectations(t)
	})

	t.Run("Stranger is refused", func(t *testing.T) {
		machineRepo := new(MockMachineRepo)
		svc := service.NewMachineService(machineRepo)

		machineRepo.On("GetByID", ctx, "m1").Return(machine, nil)

		err := svc.SetImage(ctx, "someone-else", "m1", "http://x/y.jpg")
		assert.ErrorIs(t, err, service.ErrUnauthorized)
		machineRepo.AssertNotCalled(t, "SetImageURL", mock.Anything, mock.Anything, mock.Anything)
	})
}

package unit

import (
	"context"
	"database/sql"

	"agroshare-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) UpdateProfile(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) ListByIDs(ctx context.Context, ids []string) ([]domain.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

// MockMachineRepo
type MockMachineRepo struct {
	mock.Mock
}

func (m *MockMachineRepo) Create(ctx context.Context, machine *domain.Machine) error {
	args := m.Called(ctx, machine)
	return args.Error(0)
}
func (m *MockMachineRepo) GetByID(ctx context.Context, id string) (*domain.Machine, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Machine), args.Error(1)
}
func (m *MockMachineRepo) List(ctx context.Context) ([]domain.Machine, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Machine), args.Error(1)
}
func (m *MockMachineRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Machine, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.Machine), args.Error(1)
}
func (m *MockMachineRepo) ListIDsByOwner(ctx context.Context, ownerID string) ([]string, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
func (m *MockMachineRepo) SetImageURL(ctx context.Context, id, url string) error {
	args := m.Called(ctx, id, url)
	return args.Error(0)
}

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}
func (m *MockBookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, booking *domain.Booking) error {
	args := m.Called(ctx, tx, booking)
	return args.Error(0)
}
func (m *MockBookingRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ConfirmedDates(ctx context.Context, machineID string) ([]string, error) {
	args := m.Called(ctx, machineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
func (m *MockBookingRepo) ExistsOnDate(ctx context.Context, machineID, date string) (bool, error) {
	args := m.Called(ctx, machineID, date)
	return args.Bool(0), args.Error(1)
}
func (m *MockBookingRepo) ExistsOnDateTx(ctx context.Context, tx *sql.Tx, machineID, date string) (bool, error) {
	args := m.Called(ctx, tx, machineID, date)
	return args.Bool(0), args.Error(1)
}
func (m *MockBookingRepo) ListByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// MockRequestRepo
type MockRequestRepo struct {
	mock.Mock
}

func (m *MockRequestRepo) Create(ctx context.Context, req *domain.RentalRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockRequestRepo) GetByID(ctx context.Context, id string) (*domain.RentalRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalRequest), args.Error(1)
}
func (m *MockRequestRepo) GetForUpdate(ctx context.Context, tx *sql.Tx, id string) (*domain.RentalRequest, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalRequest), args.Error(1)
}
func (m *MockRequestRepo) UpdateStatus(ctx context.Context, id string, status domain.RequestStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockRequestRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id string, status domain.RequestStatus) error {
	args := m.Called(ctx, tx, id, status)
	return args.Error(0)
}
func (m *MockRequestRepo) ListByProduct(ctx context.Context, productID string) ([]domain.RentalRequest, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]domain.RentalRequest), args.Error(1)
}
func (m *MockRequestRepo) ListByProducts(ctx context.Context, productIDs []string) ([]domain.RentalRequest, error) {
	args := m.Called(ctx, productIDs)
	return args.Get(0).([]domain.RentalRequest), args.Error(1)
}
func (m *MockRequestRepo) ListByRequester(ctx context.Context, requesterID string) ([]domain.RentalRequest, error) {
	args := m.Called(ctx, requesterID)
	return args.Get(0).([]domain.RentalRequest), args.Error(1)
}
func (m *MockRequestRepo) CountPending(ctx context.Context, productID string) (int, error) {
	args := m.Called(ctx, productID)
	return args.Int(0), args.Error(1)
}

// MockChatRepo
type MockChatRepo struct {
	mock.Mock
}

func (m *MockChatRepo) Create(ctx context.Context, msg *domain.ChatMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
func (m *MockChatRepo) ListByRequest(ctx context.Context, requestID string) ([]domain.ChatMessage, error) {
	args := m.Called(ctx, requestID)
	return args.Get(0).([]domain.ChatMessage), args.Error(1)
}
func (m *MockChatRepo) MarkRead(ctx context.Context, requestID, readerID string) error {
	args := m.Called(ctx, requestID, readerID)
	return args.Error(0)
}
func (m *MockChatRepo) CountUnread(ctx context.Context, requestID, readerID string) (int, error) {
	args := m.Called(ctx, requestID, readerID)
	return args.Int(0), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendRequestReceived(ctx context.Context, to, requesterName, machineName, date string) error {
	args := m.Called(ctx, to, requesterName, machineName, date)
	return args.Error(0)
}
func (m *MockEmailService) SendRequestAccepted(ctx context.Context, to, machineName, date string) error {
	args := m.Called(ctx, to, machineName, date)
	return args.Error(0)
}
func (m *MockEmailService) SendRequestRejected(ctx context.Context, to, machineName, date string) error {
	args := m.Called(ctx, to, machineName, date)
	return args.Error(0)
}
func (m *MockEmailService) SendPendingReminder(ctx context.Context, to, ownerName string, lines []string) error {
	args := m.Called(ctx, to, ownerName, lines)
	return args.Error(0)
}

// fakeTxRunner runs the transactional closure with a nil tx. The repo
// mocks accept it, so accept-path tests can observe what happens inside
// the transaction without a real database.
type fakeTxRunner struct {
	beginErr error
}

func (f *fakeTxRunner) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	if f.beginErr != nil {
		return f.beginErr
	}
	return fn(nil)
}

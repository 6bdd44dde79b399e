package commands_test

import (
	"errors"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func onlineDriver(t *testing.T, name string, since time.Time) *driver.Driver {
	t.Helper()
	d, err := driver.NewDriver(kernel.NewUUID(), name, "+15550102")
	require.NoError(t, err)
	d.GoOnline(since)
	return d
}

func newRemindCommand(t *testing.T, asOf time.Time) commands.RemindLongShiftsCommand {
	t.Helper()
	cmd, err := commands.NewRemindLongShiftsCommand(10*time.Hour, time.Hour, asOf)
	require.NoError(t, err)
	return cmd
}

func TestRemindLongShiftsCommandHandler_Handle_NotifiesLongShifts(t *testing.T) {
	ctx := t.Context()

	asOf := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)
	cmd := newRemindCommand(t, asOf)

	longShift := onlineDriver(t, "John Doe", asOf.Add(-11*time.Hour))
	freshShift := onlineDriver(t, "Jane Smith", asOf.Add(-2*time.Hour))

	driverRepo := new(MockDriverRepository)
	uow := new(MockUoW)
	dedup := new(MockDedupStore)
	notifier := new(MockNotifier)

	uow.On("DriverRepository").Return(driverRepo).Once()
	driverRepo.On("GetAllAvailable", ctx).Return([]*driver.Driver{longShift, freshShift}, nil).Once()
	dedup.On("SetIfAbsent", ctx, cmd.DedupKey(longShift.ID()), time.Hour).Return(true, nil).Once()
	notifier.On("Notify", ctx, longShift.ID(), mock.AnythingOfType("string")).Return(nil).Once()

	handler := commands.NewRemindLongShiftsCommandHandler(uow, dedup, notifier, discardLogger())
	notified, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 1, notified)
	dedup.AssertExpectations(t)
	notifier.AssertExpectations(t)
	// The fresh driver never reaches the dedup store, let alone the notifier.
	dedup.AssertNumberOfCalls(t, "SetIfAbsent", 1)
}

func TestRemindLongShiftsCommandHandler_Handle_DedupSuppressesRepeat(t *testing.T) {
	ctx := t.Context()

	asOf := time.Date(2025, 6, 15, 14, 45, 0, 0, time.UTC)
	cmd := newRemindCommand(t, asOf)

	longShift := onlineDriver(t, "John Doe", asOf.Add(-12*time.Hour))

	driverRepo := new(MockDriverRepository)
	uow := new(MockUoW)
	dedup := new(MockDedupStore)
	notifier := new(MockNotifier)

	uow.On("DriverRepository").Return(driverRepo).Once()
	driverRepo.On("GetAllAvailable", ctx).Return([]*driver.Driver{longShift}, nil).Once()
	// A previous run within the same hour bucket already claimed the key.
	dedup.On("SetIfAbsent", ctx, cmd.DedupKey(longShift.ID()), time.Hour).Return(false, nil).Once()

	handler := commands.NewRemindLongShiftsCommandHandler(uow, dedup, notifier, discardLogger())
	notified, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 0, notified)
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything)
}

func TestRemindLongShiftsCommandHandler_Handle_NotifyFailureIsNotFatal(t *testing.T) {
	ctx := t.Context()

	asOf := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	cmd := newRemindCommand(t, asOf)

	broken := onlineDriver(t, "John Doe", asOf.Add(-11*time.Hour))
	healthy := onlineDriver(t, "Jane Smith", asOf.Add(-11*time.Hour))

	driverRepo := new(MockDriverRepository)
	uow := new(MockUoW)
	dedup := new(MockDedupStore)
	notifier := new(MockNotifier)

	uow.On("DriverRepository").Return(driverRepo).Once()
	driverRepo.On("GetAllAvailable", ctx).Return([]*driver.Driver{broken, healthy}, nil).Once()
	dedup.On("SetIfAbsent", ctx, cmd.DedupKey(broken.ID()), time.Hour).Return(true, nil).Once()
	dedup.On("SetIfAbsent", ctx, cmd.DedupKey(healthy.ID()), time.Hour).Return(true, nil).Once()
	notifier.On("Notify", ctx, broken.ID(), mock.AnythingOfType("string")).
		Return(errors.New("push gateway timeout")).
		Once()
	notifier.On("Notify", ctx, healthy.ID(), mock.AnythingOfType("string")).Return(nil).Once()

	handler := commands.NewRemindLongShiftsCommandHandler(uow, dedup, notifier, discardLogger())
	notified, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 1, notified)
	notifier.AssertExpectations(t)
}

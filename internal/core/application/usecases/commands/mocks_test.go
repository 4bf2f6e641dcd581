package commands_test

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"deliverytracker/internal/core/application/addressing"
	"deliverytracker/internal/core/application/usecases/commands"
	"deliverytracker/internal/core/domain/model/address"
	"deliverytracker/internal/core/domain/model/kernel"
	"deliverytracker/internal/core/domain/model/order"
	"deliverytracker/internal/core/domain/model/user"
	"deliverytracker/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

var fixedNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func discardLogger() *slog.Logger { return slog.New(slog.DiscardHandler) }

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id int64) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ExistsByTrackingCode(ctx context.Context, code kernel.TrackingCode) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

type MockAddressRepository struct{ mock.Mock }

func (m *MockAddressRepository) Add(ctx context.Context, a *address.Address) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAddressRepository) Get(ctx context.Context, id int64) (*address.Address, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*address.Address), args.Error(1)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id int64) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) GetFirstAdmin(ctx context.Context) (*user.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockOrderUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockOrderUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

func (m *MockOrderUoW) AddressRepository() ports.AddressRepository {
	return m.Called().Get(0).(ports.AddressRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	return m.Called().Get(0).(commands.OrderUoW)
}

type MockUserUoW struct{ mock.Mock }

func (m *MockUserUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUserUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUserUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUserUoW) UserRepository() ports.UserRepository {
	return m.Called().Get(0).(ports.UserRepository)
}

type MockUserUoWFactory struct{ mock.Mock }

func (m *MockUserUoWFactory) Create() commands.UserUoW {
	return m.Called().Get(0).(commands.UserUoW)
}

// stubPostal answers from a fixed table; unknown codes are reported as not found.
type stubPostal struct {
	known map[string]ports.PostalAddress
	calls int
}

func (s *stubPostal) Lookup(_ context.Context, code kernel.PostalCode) (ports.PostalAddress, error) {
	s.calls++
	if a, ok := s.known[code.String()]; ok {
		return a, nil
	}
	return ports.PostalAddress{}, kernel.NewInvalidPostalCodeError(code.String())
}

// noMatchGeocoder never finds coordinates.
type noMatchGeocoder struct{}

func (noMatchGeocoder) GeocodeAddress(context.Context, ports.GeocodeQuery) (kernel.Coordinates, error) {
	return kernel.Coordinates{}, ports.ErrNoGeocodeMatch
}

func (noMatchGeocoder) GeocodePostalCode(context.Context, kernel.PostalCode) (kernel.Coordinates, error) {
	return kernel.Coordinates{}, errors.New("upstream timeout")
}

func newStubPostal() *stubPostal {
	paulista, _ := kernel.NewPostalCode("01310100")
	centro, _ := kernel.NewPostalCode("20040002")
	return &stubPostal{known: map[string]ports.PostalAddress{
		"01310100": {PostalCode: paulista, Street: "Avenida Paulista", City: "São Paulo", Region: "SP"},
		"20040002": {PostalCode: centro, Street: "", City: "Rio de Janeiro", Region: "RJ"},
	}}
}

func newResolver(postal ports.PostalCodeLookup) *addressing.Resolver {
	return addressing.NewResolver(postal, noMatchGeocoder{}, time.Second, discardLogger())
}

// fakeHasher prefixes the password so tests can assert on the stored hash.
type fakeHasher struct{ err error }

func (h fakeHasher) Hash(password string) (string, error) {
	if h.err != nil {
		return "", h.err
	}
	return "hashed:" + password, nil
}

func (h fakeHasher) Verify(password, encoded string) (bool, error) {
	return encoded == "hashed:"+password, nil
}

func restoredUser(id int64, email string, role user.Role) *user.User {
	u, err := user.RestoreUser(id, email, "hashed:secret", "", role, fixedNow)
	if err != nil {
		panic(err)
	}
	return u
}

func restoredOrder(id, ownerID int64, status order.Status) *order.Order {
	o, err := order.RestoreOrder(id, kernel.NewTrackingCode(), status, ownerID, 10, 11, fixedNow, fixedNow)
	if err != nil {
		panic(err)
	}
	return o
}

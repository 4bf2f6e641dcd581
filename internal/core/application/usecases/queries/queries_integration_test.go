package queries_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"deliverytracker/internal/adapters/out/postgres/addressrepo"
	"deliverytracker/internal/adapters/out/postgres/orderrepo"
	"deliverytracker/internal/adapters/out/postgres/pgtest"
	"deliverytracker/internal/adapters/out/postgres/userrepo"
	"deliverytracker/internal/core/application/usecases/queries"
	"deliverytracker/internal/core/domain/model/kernel"
	"deliverytracker/internal/core/domain/model/order"
	"deliverytracker/internal/core/domain/model/user"
	"deliverytracker/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type mockAggregateTracker struct{}

func (mockAggregateTracker) TrackAggregate(any) {}

type QueriesIntegrationTestSuite struct {
	suite.Suite
	pg *pgtest.Database

	owner    *user.User
	stranger *user.User
	admin    *user.User
}

func (suite *QueriesIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
}

func (suite *QueriesIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *QueriesIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate())
	suite.owner = suite.addUser("owner@example.com", user.RoleUser)
	suite.stranger = suite.addUser("stranger@example.com", user.RoleUser)
	suite.admin = suite.addUser("admin@example.com", user.RoleAdmin)
}

func (suite *QueriesIntegrationTestSuite) addUser(email string, role user.Role) *user.User {
	u, err := pgtest.NewUser(email, role)
	suite.Require().NoError(err)
	suite.Require().NoError(userrepo.NewGormUserRepository(suite.pg.DB, mockAggregateTracker{}).Add(context.Background(), u))
	return u
}

// addOrder stores an order created at createdAt and walks it through the given statuses, one hour apart.
func (suite *QueriesIntegrationTestSuite) addOrder(owner *user.User, createdAt time.Time, path ...order.Status) *order.Order {
	ctx := context.Background()
	addresses := addressrepo.NewGormAddressRepository(suite.pg.DB)
	orders := orderrepo.NewGormOrderRepository(suite.pg.DB, mockAggregateTracker{})

	origin, err := pgtest.NewAddress("01310100", "São Paulo", "SP")
	suite.Require().NoError(err)
	suite.Require().NoError(addresses.Add(ctx, origin))
	destination, err := pgtest.NewAddress("20040002", "Rio de Janeiro", "RJ")
	suite.Require().NoError(err)
	suite.Require().NoError(addresses.Add(ctx, destination))

	o, err := order.NewOrder(kernel.NewTrackingCode(), owner.ID(), origin.ID(), destination.ID(), createdAt)
	suite.Require().NoError(err)
	suite.Require().NoError(orders.Add(ctx, o))

	at := createdAt
	for _, s := range path {
		at = at.Add(time.Hour)
		suite.Require().NoError(o.ChangeStatus(s, at))
		suite.Require().NoError(orders.Update(ctx, o))
	}
	return o
}

func (suite *QueriesIntegrationTestSuite) TestGetOrder_OwnerSeesFullDetail() {
	o := suite.addOrder(suite.owner, pgtest.Fixed)

	q, err := queries.NewGetOrderQuery(suite.owner, o.ID())
	suite.Require().NoError(err)

	view, err := queries.NewGetOrderQueryHandler(suite.pg.DB).Handle(context.Background(), q)
	suite.Require().NoError(err)

	suite.Equal(o.ID(), view.ID)
	suite.Equal(o.TrackingCode().String(), view.TrackingCode)
	suite.Equal("created", view.Status)
	suite.Equal("Order created", view.StatusLabel)
	suite.Equal(suite.owner.ID(), view.OwnerID)
	suite.Equal("01310100", view.Origin.PostalCode)
	suite.Equal("Avenida Paulista", view.Origin.Street)
	suite.Equal("SP", view.Origin.Region)
	suite.Require().NotNil(view.Origin.Latitude)
	suite.Equal("Rio de Janeiro", view.Destination.City)
	suite.Nil(view.Destination.Complement)
}

func (suite *QueriesIntegrationTestSuite) TestGetOrder_AccessControl() {
	o := suite.addOrder(suite.owner, pgtest.Fixed)
	handler := queries.NewGetOrderQueryHandler(suite.pg.DB)

	q, err := queries.NewGetOrderQuery(suite.stranger, o.ID())
	suite.Require().NoError(err)
	_, err = handler.Handle(context.Background(), q)
	suite.ErrorIs(err, errs.ErrForbidden)

	q, err = queries.NewGetOrderQuery(suite.admin, o.ID())
	suite.Require().NoError(err)
	_, err = handler.Handle(context.Background(), q)
	suite.NoError(err)

	q, err = queries.NewGetOrderQuery(suite.admin, o.ID()+1000)
	suite.Require().NoError(err)
	_, err = handler.Handle(context.Background(), q)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueriesIntegrationTestSuite) TestListOrders_OwnNewestFirst() {
	older := suite.addOrder(suite.owner, pgtest.Fixed)
	newer := suite.addOrder(suite.owner, pgtest.Fixed.Add(24*time.Hour))
	suite.addOrder(suite.stranger, pgtest.Fixed.Add(48*time.Hour))

	q, err := queries.NewListOwnOrdersQuery(suite.owner.ID(), nil)
	suite.Require().NoError(err)

	list, err := queries.NewListOrdersQueryHandler(suite.pg.DB).Handle(context.Background(), q)
	suite.Require().NoError(err)

	suite.Require().Len(list, 2)
	suite.Equal(newer.ID(), list[0].ID)
	suite.Equal(older.ID(), list[1].ID)
	suite.Equal(newer.TrackingCode().String(), list[0].TrackingCode)
}

func (suite *QueriesIntegrationTestSuite) TestListOrders_AllWithStatusFilter() {
	suite.addOrder(suite.owner, pgtest.Fixed)
	moving := suite.addOrder(suite.stranger, pgtest.Fixed, order.InTransit)
	suite.addOrder(suite.owner, pgtest.Fixed, order.Canceled)

	inTransit := order.InTransit
	q, err := queries.NewListAllOrdersQuery(&inTransit)
	suite.Require().NoError(err)

	list, err := queries.NewListOrdersQueryHandler(suite.pg.DB).Handle(context.Background(), q)
	suite.Require().NoError(err)

	suite.Require().Len(list, 1)
	suite.Equal(moving.ID(), list[0].ID)
	suite.Equal("in_transit", list[0].Status)

	q, err = queries.NewListAllOrdersQuery(nil)
	suite.Require().NoError(err)
	list, err = queries.NewListOrdersQueryHandler(suite.pg.DB).Handle(context.Background(), q)
	suite.Require().NoError(err)
	suite.Len(list, 3)
}

func (suite *QueriesIntegrationTestSuite) TestListOrders_EmptyIsNotNil() {
	q, err := queries.NewListOwnOrdersQuery(suite.owner.ID(), nil)
	suite.Require().NoError(err)

	list, err := queries.NewListOrdersQueryHandler(suite.pg.DB).Handle(context.Background(), q)
	suite.Require().NoError(err)
	suite.NotNil(list)
	suite.Empty(list)
}

func (suite *QueriesIntegrationTestSuite) TestTrackOrder_CaseInsensitiveWithTimeline() {
	o := suite.addOrder(suite.owner, pgtest.Fixed, order.InTransit, order.Delivered)

	q, err := queries.NewTrackOrderQuery(strings.ToLower(o.TrackingCode().String()))
	suite.Require().NoError(err)

	view, err := queries.NewTrackOrderQueryHandler(suite.pg.DB).Handle(context.Background(), q)
	suite.Require().NoError(err)

	suite.Equal(o.TrackingCode().String(), view.TrackingCode)
	suite.Equal("delivered", view.Status)
	suite.Equal("Delivered", view.StatusLabel)
	suite.Equal(queries.PublicPlace{City: "São Paulo", Region: "SP"}, view.Origin)
	suite.Equal(queries.PublicPlace{City: "Rio de Janeiro", Region: "RJ"}, view.Destination)

	suite.Require().Len(view.Events, 3)
	suite.Equal("delivered", view.Events[0].Status)
	suite.Equal("in_transit", view.Events[1].Status)
	suite.Equal("Out for delivery", view.Events[1].StatusLabel)
	suite.Require().NotNil(view.Events[1].Description)
	suite.Equal("order collected and out for delivery", *view.Events[1].Description)
	suite.Equal("created", view.Events[2].Status)
	suite.Equal(view.Status, view.Events[0].Status, "status matches latest event")
}

func (suite *QueriesIntegrationTestSuite) TestTrackOrder_NotFound() {
	q, err := queries.NewTrackOrderQuery("DT-00000000")
	suite.Require().NoError(err)

	_, err = queries.NewTrackOrderQueryHandler(suite.pg.DB).Handle(context.Background(), q)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueriesIntegrationTestSuite) TestUsers() {
	ctx := context.Background()

	q, err := queries.NewGetUserQuery(suite.owner.ID())
	suite.Require().NoError(err)
	view, err := queries.NewGetUserQueryHandler(suite.pg.DB).Handle(ctx, q)
	suite.Require().NoError(err)
	suite.Equal("owner@example.com", view.Email)
	suite.Equal("user", view.Role)
	suite.Require().NotNil(view.FullName)

	q, err = queries.NewGetUserQuery(9999)
	suite.Require().NoError(err)
	_, err = queries.NewGetUserQueryHandler(suite.pg.DB).Handle(ctx, q)
	suite.ErrorIs(err, errs.ErrObjectNotFound)

	all, err := queries.NewListUsersQueryHandler(suite.pg.DB).Handle(ctx, queries.NewListUsersQuery())
	suite.Require().NoError(err)
	suite.Require().Len(all, 3)
	suite.Equal(suite.owner.ID(), all[0].ID)
	suite.Equal("admin", all[2].Role)
}

func (suite *QueriesIntegrationTestSuite) TestOrderStatusSummary() {
	suite.addOrder(suite.owner, pgtest.Fixed)
	suite.addOrder(suite.owner, pgtest.Fixed)
	suite.addOrder(suite.owner, pgtest.Fixed, order.Canceled)

	summary, err := queries.NewOrderStatusSummaryQueryHandler(suite.pg.DB).
		Handle(context.Background(), queries.NewOrderStatusSummaryQuery())
	suite.Require().NoError(err)

	suite.Equal([]queries.StatusCount{
		{Status: "created", Count: 2},
		{Status: "in_transit", Count: 0},
		{Status: "delivered", Count: 0},
		{Status: "canceled", Count: 1},
	}, summary)
}

func TestQueriesIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(QueriesIntegrationTestSuite))
}

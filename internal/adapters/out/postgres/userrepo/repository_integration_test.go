package userrepo_test

import (
	"context"
	"testing"

	"deliverytracker/internal/adapters/out/postgres/pgtest"
	"deliverytracker/internal/adapters/out/postgres/userrepo"
	"deliverytracker/internal/core/domain/model/user"
	"deliverytracker/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type nopTracker struct{ count int }

func (t *nopTracker) TrackAggregate(any) { t.count++ }

type UserRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg      *pgtest.Database
	tracker *nopTracker
	repo    *userrepo.GormUserRepository
}

func (suite *UserRepositoryIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
}

func (suite *UserRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate())
	suite.tracker = &nopTracker{}
	suite.repo = userrepo.NewGormUserRepository(suite.pg.DB, suite.tracker)
}

func (suite *UserRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *UserRepositoryIntegrationTestSuite) add(email string, role user.Role) *user.User {
	u, err := pgtest.NewUser(email, role)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Add(context.Background(), u))
	return u
}

func (suite *UserRepositoryIntegrationTestSuite) TestAdd_AndGetByEmailIgnoresCase() {
	u := suite.add("Ana@Example.com", user.RoleUser)
	suite.Positive(u.ID())
	suite.Equal(1, suite.tracker.count)

	got, err := suite.repo.GetByEmail(context.Background(), "  ANA@example.COM ")
	suite.Require().NoError(err)
	suite.Equal(u.ID(), got.ID())
	suite.Equal("ana@example.com", got.Email())
	suite.Equal(user.RoleUser, got.Role())
	suite.Equal("Test User", got.FullName())
}

func (suite *UserRepositoryIntegrationTestSuite) TestAdd_DuplicateEmail() {
	suite.add("ana@example.com", user.RoleUser)

	dup, err := pgtest.NewUser("ANA@example.com", user.RoleUser)
	suite.Require().NoError(err)

	err = suite.repo.Add(context.Background(), dup)
	suite.ErrorIs(err, errs.ErrAlreadyExists)
}

func (suite *UserRepositoryIntegrationTestSuite) TestUpdate_Role() {
	ctx := context.Background()
	u := suite.add("ana@example.com", user.RoleUser)

	suite.Require().NoError(u.ChangeRole(user.RoleAdmin))
	suite.Require().NoError(suite.repo.Update(ctx, u))

	got, err := suite.repo.Get(ctx, u.ID())
	suite.Require().NoError(err)
	suite.True(got.IsAdmin())
}

func (suite *UserRepositoryIntegrationTestSuite) TestGetFirstAdmin() {
	ctx := context.Background()

	_, err := suite.repo.GetFirstAdmin(ctx)
	suite.ErrorIs(err, errs.ErrObjectNotFound)

	suite.add("plain@example.com", user.RoleUser)
	first := suite.add("root@example.com", user.RoleAdmin)
	suite.add("second@example.com", user.RoleAdmin)

	got, err := suite.repo.GetFirstAdmin(ctx)
	suite.Require().NoError(err)
	suite.Equal(first.ID(), got.ID())
}

func (suite *UserRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repo.Get(context.Background(), 99)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func TestUserRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(UserRepositoryIntegrationTestSuite))
}

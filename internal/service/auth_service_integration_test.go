package service_test

import (
	"strings"
	"testing"
	"time"

	"github.com/artstack/creative-showcase/internal/repository"
	"github.com/artstack/creative-showcase/internal/service"
	"github.com/artstack/creative-showcase/internal/testutil"
	"github.com/artstack/creative-showcase/internal/utils"
	"github.com/artstack/creative-showcase/pkg/logger"
	"github.com/stretchr/testify/suite"
)

const testJWTSecret = "test-secret-key-for-integration-tests"

type AuthServiceIntegrationTestSuite struct {
	suite.Suite
	testDB      *testutil.TestDatabase
	userRepo    *repository.UserRepository
	authService *service.AuthService
}

func (s *AuthServiceIntegrationTestSuite) SetupSuite() {
	logger.Init(false)
	s.testDB = testutil.SetupTestDatabase(s.T())
}

func (s *AuthServiceIntegrationTestSuite) TearDownSuite() {
	s.testDB.Teardown(s.T())
}

func (s *AuthServiceIntegrationTestSuite) SetupTest() {
	testutil.CleanDatabase(s.T(), s.testDB.DB)

	s.userRepo = repository.NewUserRepository(s.testDB.DB)
	s.authService = service.NewAuthService(s.userRepo, testJWTSecret, time.Hour)
}

func (s *AuthServiceIntegrationTestSuite) TestRegisterSuccess() {
	user, token, err := s.authService.Register("alice", "Alice@Example.COM", "secret1")
	s.Require().NoError(err)
	s.NotEmpty(token)

	s.Equal("alice", user.Username)
	s.Equal("alice@example.com", user.Email, "email is normalized to lowercase")
	s.Equal("alice", user.DisplayName, "display name defaults to the username")
	s.True(user.IsPublic)
	s.NotEqual("secret1", user.PasswordHash)

	// The issued token carries the new identity
	claims, err := utils.ValidateToken(token, testJWTSecret)
	s.Require().NoError(err)
	s.Equal(user.ID, claims.UserID)
	s.Equal("alice", claims.Username)
}

func (s *AuthServiceIntegrationTestSuite) TestRegisterDuplicateEmail() {
	_, _, err := s.authService.Register("alice", "alice@example.com", "secret1")
	s.Require().NoError(err)

	_, _, err = s.authService.Register("alice2", "alice@example.com", "secret1")
	s.ErrorIs(err, service.ErrEmailAlreadyExists)
}

func (s *AuthServiceIntegrationTestSuite) TestRegisterDuplicateUsername() {
	_, _, err := s.authService.Register("alice", "alice@example.com", "secret1")
	s.Require().NoError(err)

	_, _, err = s.authService.Register("alice", "other@example.com", "secret1")
	s.ErrorIs(err, service.ErrUsernameAlreadyExists)
}

func (s *AuthServiceIntegrationTestSuite) TestRegisterValidation() {
	cases := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{"short username", "ab", "a@example.com", "secret1"},
		{"long username", strings.Repeat("a", 31), "a@example.com", "secret1"},
		{"bad email", "alice", "not-an-email", "secret1"},
		{"short password", "alice", "a@example.com", "12345"},
		{"long password", "alice", "a@example.com", strings.Repeat("p", 129)},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			_, _, err := s.authService.Register(tc.username, tc.email, tc.password)

			var vErr *service.ValidationError
			s.ErrorAs(err, &vErr)
		})
	}
}

func (s *AuthServiceIntegrationTestSuite) TestLoginSuccess() {
	registered, _, err := s.authService.Register("alice", "alice@example.com", "secret1")
	s.Require().NoError(err)

	user, token, err := s.authService.Login("ALICE@example.com", "secret1")
	s.Require().NoError(err)
	s.Equal(registered.ID, user.ID)
	s.NotEmpty(token)
}

func (s *AuthServiceIntegrationTestSuite) TestLoginWrongPassword() {
	_, _, err := s.authService.Register("alice", "alice@example.com", "secret1")
	s.Require().NoError(err)

	_, _, err = s.authService.Login("alice@example.com", "wrong-password")
	s.ErrorIs(err, service.ErrInvalidCredentials)
}

func (s *AuthServiceIntegrationTestSuite) TestLoginUnknownEmail() {
	// Unknown email and wrong password are indistinguishable to the caller
	_, _, err := s.authService.Login("nobody@example.com", "secret1")
	s.ErrorIs(err, service.ErrInvalidCredentials)
}

func (s *AuthServiceIntegrationTestSuite) TestGetCurrentUser() {
	registered, _, err := s.authService.Register("alice", "alice@example.com", "secret1")
	s.Require().NoError(err)

	user, err := s.authService.GetCurrentUser(registered.ID)
	s.Require().NoError(err)
	s.Equal("alice", user.Username)
	s.Equal("alice@example.com", user.Email)

	missing, _ := testutil.CreateTestUser("ghost", "ghost@example.com", "x12345")
	_, err = s.authService.GetCurrentUser(missing.ID)
	s.ErrorIs(err, service.ErrUserNotFound)
}

func TestAuthServiceIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceIntegrationTestSuite))
}

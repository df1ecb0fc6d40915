package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/minibank/minibank/internal/apperrors"
	"github.com/minibank/minibank/internal/core/domain"
	portssvc "github.com/minibank/minibank/internal/core/ports/services"
	"github.com/minibank/minibank/internal/core/services"
	"github.com/minibank/minibank/internal/dto"
	"github.com/minibank/minibank/internal/utils"
)

// --- Mock ClientRepository (based on ClientRepositoryFacade usage) ---
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	args := m.Called(ctx, clientID)
	var client *domain.Client
	if args.Get(0) != nil {
		client = args.Get(0).(*domain.Client)
	}
	return client, args.Error(1)
}

func (m *MockClientRepository) FindClientByEmail(ctx context.Context, email string) (*domain.Client, error) {
	args := m.Called(ctx, email)
	var client *domain.Client
	if args.Get(0) != nil {
		client = args.Get(0).(*domain.Client)
	}
	return client, args.Error(1)
}

func (m *MockClientRepository) FindClients(ctx context.Context, limit int, offset int) ([]domain.Client, error) {
	args := m.Called(ctx, limit, offset)
	var clients []domain.Client
	if args.Get(0) != nil {
		clients = args.Get(0).([]domain.Client)
	}
	return clients, args.Error(1)
}

func (m *MockClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) ToggleBlacklist(ctx context.Context, clientID string) (*domain.Client, error) {
	args := m.Called(ctx, clientID)
	var client *domain.Client
	if args.Get(0) != nil {
		client = args.Get(0).(*domain.Client)
	}
	return client, args.Error(1)
}

func (m *MockClientRepository) FindClientByIDForUpdate(ctx context.Context, tx pgx.Tx, clientID string) (*domain.Client, error) {
	args := m.Called(ctx, tx, clientID)
	var client *domain.Client
	if args.Get(0) != nil {
		client = args.Get(0).(*domain.Client)
	}
	return client, args.Error(1)
}

// --- Test Suite ---
type ClientServiceTestSuite struct {
	suite.Suite
	mockClientRepo *MockClientRepository
	service        portssvc.ClientSvcFacade
}

func (suite *ClientServiceTestSuite) SetupTest() {
	suite.mockClientRepo = new(MockClientRepository)
	suite.service = services.NewClientService(suite.mockClientRepo)
}

// --- Register Tests ---

func (suite *ClientServiceTestSuite) TestRegister_Success() {
	ctx := context.Background()
	req := dto.RegisterRequest{
		Name:     "Test Client",
		Email:    "  Test@Example.COM ",
		Password: "password123",
	}

	// The saved client must carry a hashed credential and a normalized email.
	suite.mockClientRepo.On("SaveClient", ctx, mock.MatchedBy(func(client domain.Client) bool {
		return client.Email == "test@example.com" &&
			client.Name == "Test Client" &&
			client.PasswordHash != "" &&
			client.PasswordHash != "password123" &&
			!client.IsAdmin &&
			!client.IsBlacklisted
	})).Return(nil).Once()

	client, err := suite.service.Register(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(client)
	suite.NotEmpty(client.ClientID)
	suite.Equal("test@example.com", client.Email)
	suite.True(utils.CheckPasswordHash("password123", client.PasswordHash))
	suite.False(client.IsAdmin)
	suite.False(client.IsBlacklisted)
	suite.mockClientRepo.AssertExpectations(suite.T())
}

func (suite *ClientServiceTestSuite) TestRegister_DuplicateEmail() {
	ctx := context.Background()
	req := dto.RegisterRequest{
		Name:     "Test Client",
		Email:    "taken@example.com",
		Password: "password123",
	}

	suite.mockClientRepo.On("SaveClient", ctx, mock.AnythingOfType("domain.Client")).
		Return(apperrors.ErrDuplicate).Once()

	client, err := suite.service.Register(ctx, req)

	suite.Require().Error(err)
	suite.Nil(client)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockClientRepo.AssertExpectations(suite.T())
}

func (suite *ClientServiceTestSuite) TestRegister_SaveError() {
	ctx := context.Background()
	req := dto.RegisterRequest{
		Name:     "Test Client",
		Email:    "test@example.com",
		Password: "password123",
	}
	expectedErr := assert.AnError

	suite.mockClientRepo.On("SaveClient", ctx, mock.AnythingOfType("domain.Client")).
		Return(expectedErr).Once()

	client, err := suite.service.Register(ctx, req)

	suite.Require().Error(err)
	suite.Nil(client)
	suite.ErrorIs(err, expectedErr)
	suite.mockClientRepo.AssertExpectations(suite.T())
}

// --- Authenticate Tests ---

func (suite *ClientServiceTestSuite) TestAuthenticate_Success() {
	ctx := context.Background()
	password := "password123"
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)

	stored := &domain.Client{
		ClientID:     uuid.NewString(),
		Email:        "test@example.com",
		PasswordHash: hash,
	}

	suite.mockClientRepo.On("FindClientByEmail", ctx, "test@example.com").Return(stored, nil).Once()

	client, err := suite.service.Authenticate(ctx, "Test@Example.com", password)

	suite.Require().NoError(err)
	suite.Equal(stored, client)
	suite.mockClientRepo.AssertExpectations(suite.T())
}

func (suite *ClientServiceTestSuite) TestAuthenticate_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("correct-password")
	suite.Require().NoError(err)

	stored := &domain.Client{
		ClientID:     uuid.NewString(),
		Email:        "test@example.com",
		PasswordHash: hash,
	}

	suite.mockClientRepo.On("FindClientByEmail", ctx, "test@example.com").Return(stored, nil).Once()

	client, err := suite.service.Authenticate(ctx, "test@example.com", "wrong-password")

	suite.Require().Error(err)
	suite.Nil(client)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockClientRepo.AssertExpectations(suite.T())
}

func (suite *ClientServiceTestSuite) TestAuthenticate_UnknownEmail() {
	ctx := context.Background()

	suite.mockClientRepo.On("FindClientByEmail", ctx, "nobody@example.com").
		Return(nil, apperrors.ErrNotFound).Once()

	client, err := suite.service.Authenticate(ctx, "nobody@example.com", "password123")

	suite.Require().Error(err)
	suite.Nil(client)
	// Unknown email must be indistinguishable from a wrong password.
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockClientRepo.AssertExpectations(suite.T())
}

// --- GetClientByID Tests ---

func (suite *ClientServiceTestSuite) TestGetClientByID_Success() {
	ctx := context.Background()
	clientID := uuid.NewString()
	expected := &domain.Client{ClientID: clientID, Name: "Found Client"}

	suite.mockClientRepo.On("FindClientByID", ctx, clientID).Return(expected, nil).Once()

	client, err := suite.service.GetClientByID(ctx, clientID)

	suite.Require().NoError(err)
	suite.Equal(expected, client)
	suite.mockClientRepo.AssertExpectations(suite.T())
}

func (suite *ClientServiceTestSuite) TestGetClientByID_NotFound() {
	ctx := context.Background()
	clientID := uuid.NewString()

	suite.mockClientRepo.On("FindClientByID", ctx, clientID).Return(nil, apperrors.ErrNotFound).Once()

	client, err := suite.service.GetClientByID(ctx, clientID)

	suite.Require().Error(err)
	suite.Nil(client)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockClientRepo.AssertExpectations(suite.T())
}

// --- UpdateClient Tests ---

func (suite *ClientServiceTestSuite) TestUpdateClient_Success() {
	ctx := context.Background()
	clientID := uuid.NewString()
	newName := "New Name"
	stored := &domain.Client{ClientID: clientID, Name: "Old Name"}

	suite.mockClientRepo.On("FindClientByID", ctx, clientID).Return(stored, nil).Once()
	suite.mockClientRepo.On("UpdateClient", ctx, mock.MatchedBy(func(client domain.Client) bool {
		return client.ClientID == clientID && client.Name == newName
	})).Return(nil).Once()

	client, err := suite.service.UpdateClient(ctx, clientID, dto.UpdateClientRequest{Name: &newName})

	suite.Require().NoError(err)
	suite.Equal(newName, client.Name)
	suite.mockClientRepo.AssertExpectations(suite.T())
}

func (suite *ClientServiceTestSuite) TestUpdateClient_NoFields() {
	ctx := context.Background()
	clientID := uuid.NewString()

	client, err := suite.service.UpdateClient(ctx, clientID, dto.UpdateClientRequest{})

	suite.Require().Error(err)
	suite.Nil(client)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockClientRepo.AssertNotCalled(suite.T(), "UpdateClient", mock.Anything, mock.Anything)
}

func (suite *ClientServiceTestSuite) TestUpdateClient_EmptyName() {
	ctx := context.Background()
	clientID := uuid.NewString()
	emptyName := "   "

	client, err := suite.service.UpdateClient(ctx, clientID, dto.UpdateClientRequest{Name: &emptyName})

	suite.Require().Error(err)
	suite.Nil(client)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestClientServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ClientServiceTestSuite))
}

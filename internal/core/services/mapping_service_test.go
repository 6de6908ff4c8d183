package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/praxio/fundledger/internal/apperrors"
	"github.com/praxio/fundledger/internal/core/domain"
	portsrepo "github.com/praxio/fundledger/internal/core/ports/repositories"
	portssvc "github.com/praxio/fundledger/internal/core/ports/services"
	"github.com/praxio/fundledger/internal/core/services"
	"github.com/praxio/fundledger/internal/dto"
	"github.com/praxio/fundledger/internal/utils/rules"
)

// MockMappingRepository is a mock type for the MappingRepositoryFacade interface
type MockMappingRepository struct {
	mock.Mock
}

func (m *MockMappingRepository) FindMappingByID(ctx context.Context, mappingID string) (*domain.GLAccountMapping, error) {
	args := m.Called(ctx, mappingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GLAccountMapping), args.Error(1)
}

func (m *MockMappingRepository) FindActiveMappings(ctx context.Context, sourceSystem string, sourceType string, fundID *string) ([]domain.GLAccountMapping, error) {
	args := m.Called(ctx, sourceSystem, sourceType, fundID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GLAccountMapping), args.Error(1)
}

func (m *MockMappingRepository) ListMappings(ctx context.Context, sourceSystem *string, sourceType *string, activeOnly bool) ([]domain.GLAccountMapping, error) {
	args := m.Called(ctx, sourceSystem, sourceType, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GLAccountMapping), args.Error(1)
}

func (m *MockMappingRepository) SaveMapping(ctx context.Context, mapping domain.GLAccountMapping) error {
	args := m.Called(ctx, mapping)
	return args.Error(0)
}

func (m *MockMappingRepository) DeactivateMapping(ctx context.Context, mappingID string, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, mappingID, updatedBy, updatedAt)
	return args.Error(0)
}

// Ensure the mock satisfies the interface
var _ portsrepo.MappingRepositoryFacade = (*MockMappingRepository)(nil)

// --- Test Suite Setup ---

type MappingServiceTestSuite struct {
	suite.Suite
	mockMappingRepo *MockMappingRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.MappingSvcFacade
}

func (suite *MappingServiceTestSuite) SetupTest() {
	suite.mockMappingRepo = new(MockMappingRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewMappingService(suite.mockMappingRepo, suite.mockAccountRepo)
}

func postableAccount(id string, side domain.NormalBalance) *domain.GLAccount {
	return &domain.GLAccount{
		AccountID:           id,
		AccountNumber:       "1000",
		Name:                "Test Account",
		NormalBalance:       side,
		IsActive:            true,
		AllowsDirectPosting: true,
	}
}

// --- Test Cases ---

func (suite *MappingServiceTestSuite) TestCreateMapping_PairSuccess() {
	ctx := context.Background()
	debitID := uuid.NewString()
	creditID := uuid.NewString()
	req := dto.CreateMappingRequest{
		SourceSystem:    "fund_events",
		SourceType:      "capital_call",
		DebitAccountID:  debitID,
		CreditAccountID: creditID,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, debitID).Return(postableAccount(debitID, domain.DebitBalance), nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, creditID).Return(postableAccount(creditID, domain.CreditBalance), nil).Once()
	suite.mockMappingRepo.On("SaveMapping", ctx, mock.AnythingOfType("domain.GLAccountMapping")).Return(nil).Once()

	created, err := suite.service.CreateMapping(ctx, "user-1", req)

	suite.Require().NoError(err)
	suite.NotEmpty(created.MappingID)
	suite.True(created.IsActive)
	suite.Equal("amount", created.AmountField, "Amount field defaults when not provided")
	suite.mockMappingRepo.AssertExpectations(suite.T())
}

func (suite *MappingServiceTestSuite) TestCreateMapping_BothFormsRejected() {
	ctx := context.Background()
	req := dto.CreateMappingRequest{
		SourceSystem:    "fund_events",
		SourceType:      "capital_call",
		GLAccountID:     uuid.NewString(),
		DebitAccountID:  uuid.NewString(),
		CreditAccountID: uuid.NewString(),
	}

	_, err := suite.service.CreateMapping(ctx, "user-1", req)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrMappingAccountsInvalid)
	suite.mockMappingRepo.AssertNotCalled(suite.T(), "SaveMapping")
}

func (suite *MappingServiceTestSuite) TestCreateMapping_PartialPairRejected() {
	ctx := context.Background()
	req := dto.CreateMappingRequest{
		SourceSystem:   "fund_events",
		SourceType:     "capital_call",
		DebitAccountID: uuid.NewString(),
	}

	_, err := suite.service.CreateMapping(ctx, "user-1", req)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrMappingAccountsInvalid)
}

func (suite *MappingServiceTestSuite) TestCreateMapping_NonPostableAccount() {
	ctx := context.Background()
	accountID := uuid.NewString()
	summary := postableAccount(accountID, domain.DebitBalance)
	summary.AllowsDirectPosting = false
	req := dto.CreateMappingRequest{
		SourceSystem: "fund_events",
		SourceType:   "capital_call",
		GLAccountID:  accountID,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(summary, nil).Once()

	_, err := suite.service.CreateMapping(ctx, "user-1", req)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountNotPostable)
	suite.mockMappingRepo.AssertNotCalled(suite.T(), "SaveMapping")
}

func (suite *MappingServiceTestSuite) TestCreateMapping_UnknownOperatorRejected() {
	ctx := context.Background()
	accountID := uuid.NewString()
	req := dto.CreateMappingRequest{
		SourceSystem: "fund_events",
		SourceType:   "capital_call",
		GLAccountID:  accountID,
		Conditions:   &domain.Condition{Field: "amount", Operator: "matches_regex", Value: ".*"},
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(postableAccount(accountID, domain.DebitBalance), nil).Once()

	_, err := suite.service.CreateMapping(ctx, "user-1", req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockMappingRepo.AssertNotCalled(suite.T(), "SaveMapping")
}

func (suite *MappingServiceTestSuite) TestCreateMapping_UnknownOperatorInGroupRejected() {
	ctx := context.Background()
	accountID := uuid.NewString()
	req := dto.CreateMappingRequest{
		SourceSystem: "fund_events",
		SourceType:   "capital_call",
		GLAccountID:  accountID,
		Conditions: &domain.Condition{All: []domain.Condition{
			{Field: "eventKind", Operator: domain.OpEquals, Value: "call"},
			{Field: "amount", Operator: "greatr_than", Value: 1000},
		}},
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(postableAccount(accountID, domain.DebitBalance), nil).Once()

	_, err := suite.service.CreateMapping(ctx, "user-1", req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation, "A typo'd operator behind a short-circuiting sibling is still rejected")
	suite.mockMappingRepo.AssertNotCalled(suite.T(), "SaveMapping")
}

func (suite *MappingServiceTestSuite) TestFindApplicableMappings_SubTypeAndConditions() {
	ctx := context.Background()
	event := domain.SourceEvent{
		SourceSystem:  "fee_calculator",
		SourceType:    "management_fee",
		SourceSubType: "quarterly",
		SourceData:    map[string]any{"amount": 5000.0, "feeBasis": "committed"},
	}

	matching := domain.GLAccountMapping{
		MappingID:    uuid.NewString(),
		SourceSystem: "fee_calculator",
		SourceType:   "management_fee",
		Priority:     1,
	}
	wrongSubType := domain.GLAccountMapping{
		MappingID:     uuid.NewString(),
		SourceSystem:  "fee_calculator",
		SourceType:    "management_fee",
		SourceSubType: "annual",
		Priority:      2,
	}
	failingCondition := domain.GLAccountMapping{
		MappingID:    uuid.NewString(),
		SourceSystem: "fee_calculator",
		SourceType:   "management_fee",
		Priority:     3,
		Conditions:   &domain.Condition{Field: "feeBasis", Operator: domain.OpEquals, Value: "invested"},
	}

	suite.mockMappingRepo.On("FindActiveMappings", ctx, "fee_calculator", "management_fee", (*string)(nil)).
		Return([]domain.GLAccountMapping{matching, wrongSubType, failingCondition}, nil).Once()

	applicable, err := suite.service.FindApplicableMappings(ctx, event)

	suite.Require().NoError(err)
	suite.Require().Len(applicable, 1)
	suite.Equal(matching.MappingID, applicable[0].MappingID)
	suite.mockMappingRepo.AssertExpectations(suite.T())
}

func (suite *MappingServiceTestSuite) TestFindApplicableMappings_FailsClosedOnBadOperator() {
	ctx := context.Background()
	event := domain.SourceEvent{
		SourceSystem: "fee_calculator",
		SourceType:   "management_fee",
		SourceData:   map[string]any{"amount": 5000.0},
	}
	badMapping := domain.GLAccountMapping{
		MappingID:    uuid.NewString(),
		SourceSystem: "fee_calculator",
		SourceType:   "management_fee",
		Conditions:   &domain.Condition{Field: "amount", Operator: "matches_regex", Value: ".*"},
	}

	suite.mockMappingRepo.On("FindActiveMappings", ctx, "fee_calculator", "management_fee", (*string)(nil)).
		Return([]domain.GLAccountMapping{badMapping}, nil).Once()

	_, err := suite.service.FindApplicableMappings(ctx, event)

	suite.Require().Error(err)
	suite.ErrorIs(err, rules.ErrUnsupportedOperator)
}

func (suite *MappingServiceTestSuite) TestResolveLineItems_PairMapping() {
	ctx := context.Background()
	debitID := uuid.NewString()
	creditID := uuid.NewString()
	event := domain.SourceEvent{
		SourceSystem: "capital_activity",
		SourceType:   "capital_call",
		SourceData:   map[string]any{"amount": "250000.00"},
	}
	mapping := domain.GLAccountMapping{
		MappingID:       uuid.NewString(),
		SourceSystem:    "capital_activity",
		SourceType:      "capital_call",
		DebitAccountID:  debitID,
		CreditAccountID: creditID,
	}

	suite.mockMappingRepo.On("FindActiveMappings", ctx, "capital_activity", "capital_call", (*string)(nil)).
		Return([]domain.GLAccountMapping{mapping}, nil).Once()

	lines, err := suite.service.ResolveLineItems(ctx, event)

	suite.Require().NoError(err)
	suite.Require().Len(lines, 2)

	expected := decimal.RequireFromString("250000.00")
	suite.Equal(debitID, lines[0].GLAccountID)
	suite.True(expected.Equal(lines[0].DebitAmount))
	suite.True(lines[0].CreditAmount.IsZero())
	suite.Equal(creditID, lines[1].GLAccountID)
	suite.True(expected.Equal(lines[1].CreditAmount))
	suite.True(lines[1].DebitAmount.IsZero())
}

func (suite *MappingServiceTestSuite) TestResolveLineItems_SingleAccountNormalSide() {
	ctx := context.Background()
	accountID := uuid.NewString()
	event := domain.SourceEvent{
		SourceSystem: "fee_calculator",
		SourceType:   "management_fee",
		SourceData:   map[string]any{"amount": 12000.0},
	}
	mapping := domain.GLAccountMapping{
		MappingID:    uuid.NewString(),
		SourceSystem: "fee_calculator",
		SourceType:   "management_fee",
		GLAccountID:  accountID,
	}

	suite.mockMappingRepo.On("FindActiveMappings", ctx, "fee_calculator", "management_fee", (*string)(nil)).
		Return([]domain.GLAccountMapping{mapping}, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).
		Return(postableAccount(accountID, domain.CreditBalance), nil).Once()

	lines, err := suite.service.ResolveLineItems(ctx, event)

	suite.Require().NoError(err)
	suite.Require().Len(lines, 1)
	suite.True(lines[0].CreditAmount.Equal(decimal.NewFromInt(12000)), "Credit-normal account receives a credit line")
	suite.True(lines[0].DebitAmount.IsZero())
}

func (suite *MappingServiceTestSuite) TestResolveLineItems_ReversalNatureFlipsSide() {
	ctx := context.Background()
	accountID := uuid.NewString()
	event := domain.SourceEvent{
		SourceSystem: "fee_calculator",
		SourceType:   "management_fee",
		SourceData:   map[string]any{"amount": 12000.0, "isReversal": true},
	}
	mapping := domain.GLAccountMapping{
		MappingID:    uuid.NewString(),
		SourceSystem: "fee_calculator",
		SourceType:   "management_fee",
		GLAccountID:  accountID,
	}

	suite.mockMappingRepo.On("FindActiveMappings", ctx, "fee_calculator", "management_fee", (*string)(nil)).
		Return([]domain.GLAccountMapping{mapping}, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).
		Return(postableAccount(accountID, domain.CreditBalance), nil).Once()

	lines, err := suite.service.ResolveLineItems(ctx, event)

	suite.Require().NoError(err)
	suite.Require().Len(lines, 1)
	suite.True(lines[0].DebitAmount.Equal(decimal.NewFromInt(12000)), "Reversal nature flips to the debit side")
	suite.True(lines[0].CreditAmount.IsZero())
}

func (suite *MappingServiceTestSuite) TestResolveLineItems_NoMappings() {
	ctx := context.Background()
	event := domain.SourceEvent{
		SourceSystem: "unknown_system",
		SourceType:   "mystery",
		SourceData:   map[string]any{"amount": 100.0},
	}

	suite.mockMappingRepo.On("FindActiveMappings", ctx, "unknown_system", "mystery", (*string)(nil)).
		Return([]domain.GLAccountMapping{}, nil).Once()

	_, err := suite.service.ResolveLineItems(ctx, event)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNoApplicableMapping)
}

func (suite *MappingServiceTestSuite) TestResolveLineItems_NonPositiveAmountsSkipped() {
	ctx := context.Background()
	event := domain.SourceEvent{
		SourceSystem: "capital_activity",
		SourceType:   "capital_call",
		SourceData:   map[string]any{"amount": 0.0},
	}
	mapping := domain.GLAccountMapping{
		MappingID:       uuid.NewString(),
		SourceSystem:    "capital_activity",
		SourceType:      "capital_call",
		DebitAccountID:  uuid.NewString(),
		CreditAccountID: uuid.NewString(),
	}

	suite.mockMappingRepo.On("FindActiveMappings", ctx, "capital_activity", "capital_call", (*string)(nil)).
		Return([]domain.GLAccountMapping{mapping}, nil).Once()

	_, err := suite.service.ResolveLineItems(ctx, event)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNoLedgerActivity, "All-zero amounts mean no activity, not a mapping failure")
	suite.NotErrorIs(err, services.ErrNoApplicableMapping)
}

func (suite *MappingServiceTestSuite) TestResolveLineItems_NonNumericAmount() {
	ctx := context.Background()
	event := domain.SourceEvent{
		SourceSystem: "capital_activity",
		SourceType:   "capital_call",
		SourceData:   map[string]any{"amount": "a lot"},
	}
	mapping := domain.GLAccountMapping{
		MappingID:       uuid.NewString(),
		SourceSystem:    "capital_activity",
		SourceType:      "capital_call",
		DebitAccountID:  uuid.NewString(),
		CreditAccountID: uuid.NewString(),
	}

	suite.mockMappingRepo.On("FindActiveMappings", ctx, "capital_activity", "capital_call", (*string)(nil)).
		Return([]domain.GLAccountMapping{mapping}, nil).Once()

	_, err := suite.service.ResolveLineItems(ctx, event)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAmountNotNumeric)
}

func (suite *MappingServiceTestSuite) TestResolveLineItems_CustomAmountField() {
	ctx := context.Background()
	debitID := uuid.NewString()
	creditID := uuid.NewString()
	event := domain.SourceEvent{
		SourceSystem: "fee_calculator",
		SourceType:   "management_fee",
		SourceData:   map[string]any{"amount": 99999.0, "netFee": 12000.0},
	}
	mapping := domain.GLAccountMapping{
		MappingID:       uuid.NewString(),
		SourceSystem:    "fee_calculator",
		SourceType:      "management_fee",
		DebitAccountID:  debitID,
		CreditAccountID: creditID,
		AmountField:     "netFee",
	}

	suite.mockMappingRepo.On("FindActiveMappings", ctx, "fee_calculator", "management_fee", (*string)(nil)).
		Return([]domain.GLAccountMapping{mapping}, nil).Once()

	lines, err := suite.service.ResolveLineItems(ctx, event)

	suite.Require().NoError(err)
	suite.Require().Len(lines, 2)
	suite.True(lines[0].DebitAmount.Equal(decimal.NewFromInt(12000)), "Named amount field wins over the default")
}

func (suite *MappingServiceTestSuite) TestDeactivateMapping() {
	ctx := context.Background()
	mappingID := uuid.NewString()
	mapping := &domain.GLAccountMapping{MappingID: mappingID, IsActive: true}

	suite.mockMappingRepo.On("FindMappingByID", ctx, mappingID).Return(mapping, nil).Once()
	suite.mockMappingRepo.On("DeactivateMapping", ctx, mappingID, "user-1", mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeactivateMapping(ctx, "user-1", mappingID)

	suite.Require().NoError(err)
	suite.mockMappingRepo.AssertExpectations(suite.T())
}

func TestMappingService(t *testing.T) {
	suite.Run(t, new(MappingServiceTestSuite))
}

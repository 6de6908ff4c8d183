package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/praxio/fundledger/internal/apperrors"
	"github.com/praxio/fundledger/internal/core/domain"
	portsrepo "github.com/praxio/fundledger/internal/core/ports/repositories"
	portssvc "github.com/praxio/fundledger/internal/core/ports/services"
	"github.com/praxio/fundledger/internal/core/services"
	"github.com/praxio/fundledger/internal/dto"
)

// MockJournalRepository is a mock type for the JournalRepositoryFacade interface
type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindLineItemsByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryLineItem, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntryLineItem), args.Error(1)
}

func (m *MockJournalRepository) FindEntriesBySource(ctx context.Context, sourceSystem string, sourceID string) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, sourceSystem, sourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, fundID *string, status *domain.EntryStatus, limit int, nextToken *string) ([]domain.JournalEntry, string, error) {
	args := m.Called(ctx, fundID, status, limit, nextToken)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).([]domain.JournalEntry), args.String(1), args.Error(2)
}

func (m *MockJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalEntryLineItem) (domain.JournalEntry, error) {
	args := m.Called(ctx, entry, lines)
	if args.Error(1) != nil {
		return domain.JournalEntry{}, args.Error(1)
	}
	// Echo the entry back with a number assigned, as the repository does.
	saved := entry
	saved.EntryNumber = args.String(0)
	return saved, nil
}

func (m *MockJournalRepository) MarkEntryPosted(ctx context.Context, entryID string, postedBy string, postedAt time.Time) error {
	args := m.Called(ctx, entryID, postedBy, postedAt)
	return args.Error(0)
}

func (m *MockJournalRepository) ReverseEntry(ctx context.Context, original domain.JournalEntry, reversal domain.JournalEntry, lines []domain.JournalEntryLineItem) (domain.JournalEntry, error) {
	args := m.Called(ctx, original, reversal, lines)
	if args.Error(1) != nil {
		return domain.JournalEntry{}, args.Error(1)
	}
	saved := reversal
	saved.EntryNumber = args.String(0)
	return saved, nil
}

// MockAutoPostRuleRepository is a mock type for the AutoPostRuleRepository interface
type MockAutoPostRuleRepository struct {
	mock.Mock
}

var _ portsrepo.AutoPostRuleRepository = (*MockAutoPostRuleRepository)(nil)

func (m *MockAutoPostRuleRepository) IsAutoPost(ctx context.Context, sourceSystem string, sourceType string) (bool, error) {
	args := m.Called(ctx, sourceSystem, sourceType)
	return args.Bool(0), args.Error(1)
}

// MockMappingService is a mock type for the MappingSvcFacade interface
type MockMappingService struct {
	mock.Mock
}

var _ portssvc.MappingSvcFacade = (*MockMappingService)(nil)

func (m *MockMappingService) CreateMapping(ctx context.Context, creatorUserID string, req dto.CreateMappingRequest) (domain.GLAccountMapping, error) {
	args := m.Called(ctx, creatorUserID, req)
	return args.Get(0).(domain.GLAccountMapping), args.Error(1)
}

func (m *MockMappingService) GetMappingByID(ctx context.Context, mappingID string) (domain.GLAccountMapping, error) {
	args := m.Called(ctx, mappingID)
	return args.Get(0).(domain.GLAccountMapping), args.Error(1)
}

func (m *MockMappingService) ListMappings(ctx context.Context, params dto.ListMappingsParams) ([]domain.GLAccountMapping, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GLAccountMapping), args.Error(1)
}

func (m *MockMappingService) FindApplicableMappings(ctx context.Context, event domain.SourceEvent) ([]domain.GLAccountMapping, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GLAccountMapping), args.Error(1)
}

func (m *MockMappingService) ResolveLineItems(ctx context.Context, event domain.SourceEvent) ([]domain.JournalEntryLineItem, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntryLineItem), args.Error(1)
}

func (m *MockMappingService) DeactivateMapping(ctx context.Context, updaterUserID string, mappingID string) error {
	args := m.Called(ctx, updaterUserID, mappingID)
	return args.Error(0)
}

// MockNotifier is a mock type for the NotifierSvc interface
type MockNotifier struct {
	mock.Mock
}

var _ portssvc.NotifierSvc = (*MockNotifier)(nil)

func (m *MockNotifier) NotifyPostingActivity(ctx context.Context, notification domain.PostingNotification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

// --- Test Suite Setup ---

type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo  *MockJournalRepository
	mockAccountRepo  *MockAccountRepository
	mockAutoPostRepo *MockAutoPostRuleRepository
	mockMappingSvc   *MockMappingService
	mockNotifier     *MockNotifier
	service          portssvc.JournalSvcFacade
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockAutoPostRepo = new(MockAutoPostRuleRepository)
	suite.mockMappingSvc = new(MockMappingService)
	suite.mockNotifier = new(MockNotifier)
	suite.service = services.NewJournalService(
		suite.mockJournalRepo,
		suite.mockAccountRepo,
		suite.mockAutoPostRepo,
		suite.mockMappingSvc,
		suite.mockNotifier,
		decimal.NewFromInt(100000),
	)
}

func (suite *JournalServiceTestSuite) postableAccounts(ids ...string) map[string]domain.GLAccount {
	accounts := make(map[string]domain.GLAccount, len(ids))
	for _, id := range ids {
		accounts[id] = domain.GLAccount{
			AccountID:           id,
			AccountNumber:       "1000",
			IsActive:            true,
			AllowsDirectPosting: true,
		}
	}
	return accounts
}

// --- Test Cases ---

func (suite *JournalServiceTestSuite) TestCreateEntry_Success() {
	ctx := context.Background()
	cashID := uuid.NewString()
	capitalID := uuid.NewString()
	req := dto.CreateEntryRequest{
		EntryDate:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		Description: "Q1 capital call receipt",
		FundID:      "fund-2",
		LineItems: []dto.CreateLineItemRequest{
			{GLAccountID: cashID, DebitAmount: decimal.NewFromInt(250000)},
			{GLAccountID: capitalID, CreditAmount: decimal.NewFromInt(250000)},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).
		Return(suite.postableAccounts(cashID, capitalID), nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.Status == domain.Draft &&
			e.TotalDebit.Equal(decimal.NewFromInt(250000)) &&
			e.TotalCredit.Equal(decimal.NewFromInt(250000)) &&
			e.SourceType == domain.SourceManual
	}), mock.AnythingOfType("[]domain.JournalEntryLineItem")).
		Return("JE-20260331-0001", nil).Once()

	created, err := suite.service.CreateEntry(ctx, "user-1", req)

	suite.Require().NoError(err)
	suite.Equal("JE-20260331-0001", created.EntryNumber)
	suite.Equal(domain.Draft, created.Status)
	suite.Require().Len(created.LineItems, 2)
	suite.Equal(1, created.LineItems[0].LineNumber)
	suite.Equal(2, created.LineItems[1].LineNumber)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateEntry_Unbalanced() {
	ctx := context.Background()
	req := dto.CreateEntryRequest{
		EntryDate:   time.Now(),
		Description: "off by ten",
		LineItems: []dto.CreateLineItemRequest{
			{GLAccountID: uuid.NewString(), DebitAmount: decimal.NewFromInt(100)},
			{GLAccountID: uuid.NewString(), CreditAmount: decimal.NewFromInt(90)},
		},
	}

	_, err := suite.service.CreateEntry(ctx, "user-1", req)

	suite.Require().Error(err)
	var unbalanced *services.UnbalancedEntryError
	suite.Require().ErrorAs(err, &unbalanced)
	suite.True(unbalanced.Debits.Equal(decimal.NewFromInt(100)))
	suite.True(unbalanced.Credits.Equal(decimal.NewFromInt(90)))
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry")
}

func (suite *JournalServiceTestSuite) TestCreateEntry_BothSidesOnOneLine() {
	ctx := context.Background()
	req := dto.CreateEntryRequest{
		EntryDate:   time.Now(),
		Description: "bad line",
		LineItems: []dto.CreateLineItemRequest{
			{GLAccountID: uuid.NewString(), DebitAmount: decimal.NewFromInt(100), CreditAmount: decimal.NewFromInt(100)},
			{GLAccountID: uuid.NewString(), CreditAmount: decimal.NewFromInt(100)},
		},
	}

	_, err := suite.service.CreateEntry(ctx, "user-1", req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry")
}

func (suite *JournalServiceTestSuite) TestCreateEntry_NonPostableAccount() {
	ctx := context.Background()
	cashID := uuid.NewString()
	summaryID := uuid.NewString()
	req := dto.CreateEntryRequest{
		EntryDate:   time.Now(),
		Description: "posting to a summary account",
		LineItems: []dto.CreateLineItemRequest{
			{GLAccountID: cashID, DebitAmount: decimal.NewFromInt(100)},
			{GLAccountID: summaryID, CreditAmount: decimal.NewFromInt(100)},
		},
	}

	accounts := suite.postableAccounts(cashID)
	accounts[summaryID] = domain.GLAccount{AccountID: summaryID, IsActive: true, AllowsDirectPosting: false}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).Return(accounts, nil).Once()

	_, err := suite.service.CreateEntry(ctx, "user-1", req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry")
}

func (suite *JournalServiceTestSuite) TestCreateEntry_UnknownAccount() {
	ctx := context.Background()
	cashID := uuid.NewString()
	missingID := uuid.NewString()
	req := dto.CreateEntryRequest{
		EntryDate:   time.Now(),
		Description: "unknown account",
		LineItems: []dto.CreateLineItemRequest{
			{GLAccountID: cashID, DebitAmount: decimal.NewFromInt(100)},
			{GLAccountID: missingID, CreditAmount: decimal.NewFromInt(100)},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).
		Return(suite.postableAccounts(cashID), nil).Once()

	_, err := suite.service.CreateEntry(ctx, "user-1", req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_UnknownSourceType() {
	ctx := context.Background()
	cashID := uuid.NewString()
	capitalID := uuid.NewString()
	req := dto.CreateEntryRequest{
		EntryDate:  time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		SourceType: "TELEPATHY",
		LineItems: []dto.CreateLineItemRequest{
			{GLAccountID: cashID, DebitAmount: decimal.NewFromInt(100)},
			{GLAccountID: capitalID, CreditAmount: decimal.NewFromInt(100)},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).
		Return(suite.postableAccounts(cashID, capitalID), nil).Once()

	_, err := suite.service.CreateEntry(ctx, "user-1", req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry")
}

func (suite *JournalServiceTestSuite) TestCreateAutomatedEntry_DuplicateSource() {
	ctx := context.Background()
	event := domain.SourceEvent{
		SourceSystem: "fee_calculator",
		SourceType:   "management_fee",
		SourceID:     "FEE-2026-Q1-001",
	}
	existing := []domain.JournalEntry{{EntryID: uuid.NewString(), EntryNumber: "JE-20260101-0007"}}

	suite.mockJournalRepo.On("FindEntriesBySource", ctx, "fee_calculator", "FEE-2026-Q1-001").
		Return(existing, nil).Once()

	_, err := suite.service.CreateAutomatedEntry(ctx, event)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrDuplicateSourceEvent)
	suite.mockMappingSvc.AssertNotCalled(suite.T(), "ResolveLineItems")
}

func (suite *JournalServiceTestSuite) TestCreateAutomatedEntry_NoLedgerActivity() {
	ctx := context.Background()
	event := domain.SourceEvent{
		SourceSystem: "fund_events",
		SourceType:   "capital_call",
		SourceID:     "CALL-2026-Q1-017",
		SourceData:   map[string]any{"amount": 0.0},
	}

	suite.mockJournalRepo.On("FindEntriesBySource", ctx, "fund_events", "CALL-2026-Q1-017").
		Return([]domain.JournalEntry{}, nil).Once()
	suite.mockMappingSvc.On("ResolveLineItems", ctx, event).
		Return(nil, fmt.Errorf("%w: all matched mapping amounts were zero or negative", services.ErrNoLedgerActivity)).Once()

	_, err := suite.service.CreateAutomatedEntry(ctx, event)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNoLedgerActivity, "Zero-amount events surface as no activity, not as a failure")
	suite.NotErrorIs(err, services.ErrNoApplicableMapping)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry")
}

func (suite *JournalServiceTestSuite) TestCreateAutomatedEntry_DraftWithoutAutoPost() {
	ctx := context.Background()
	debitID := uuid.NewString()
	creditID := uuid.NewString()
	event := domain.SourceEvent{
		SourceSystem: "fee_calculator",
		SourceType:   "management_fee",
		SourceID:     "FEE-2026-Q1-002",
		EntryDate:    time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		Description:  "Q1 management fee",
		FundID:       "fund-2",
		SourceData:   map[string]any{"amount": 12000.0, "investorID": "inv-9"},
	}
	resolved := []domain.JournalEntryLineItem{
		{GLAccountID: debitID, DebitAmount: decimal.NewFromInt(12000)},
		{GLAccountID: creditID, CreditAmount: decimal.NewFromInt(12000)},
	}

	suite.mockJournalRepo.On("FindEntriesBySource", ctx, "fee_calculator", "FEE-2026-Q1-002").
		Return([]domain.JournalEntry{}, nil).Once()
	suite.mockMappingSvc.On("ResolveLineItems", ctx, event).Return(resolved, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).
		Return(suite.postableAccounts(debitID, creditID), nil).Once()
	suite.mockAutoPostRepo.On("IsAutoPost", ctx, "fee_calculator", "management_fee").Return(false, nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.Status == domain.Draft && e.SourceType == domain.SourceAutomated && e.PostedBy == ""
	}), mock.AnythingOfType("[]domain.JournalEntryLineItem")).
		Return("JE-20260331-0002", nil).Once()

	created, err := suite.service.CreateAutomatedEntry(ctx, event)

	suite.Require().NoError(err)
	suite.Equal(domain.Draft, created.Status)
	suite.Require().Len(created.LineItems, 2)
	suite.Equal("fund-2", created.LineItems[0].FundID, "Fund tag carries onto lines")
	suite.Equal("inv-9", created.LineItems[0].InvestorID, "Investor tag is lifted from source data")
	suite.mockNotifier.AssertNotCalled(suite.T(), "NotifyPostingActivity")
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateAutomatedEntry_AutoPostAndNotify() {
	ctx := context.Background()
	debitID := uuid.NewString()
	creditID := uuid.NewString()
	event := domain.SourceEvent{
		SourceSystem: "capital_activity",
		SourceType:   "capital_call",
		SourceID:     "CC-2026-004",
		EntryDate:    time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC),
		Description:  "Capital call 4",
		SourceData:   map[string]any{"amount": 500000.0},
	}
	resolved := []domain.JournalEntryLineItem{
		{GLAccountID: debitID, DebitAmount: decimal.NewFromInt(500000)},
		{GLAccountID: creditID, CreditAmount: decimal.NewFromInt(500000)},
	}

	suite.mockJournalRepo.On("FindEntriesBySource", ctx, "capital_activity", "CC-2026-004").
		Return([]domain.JournalEntry{}, nil).Once()
	suite.mockMappingSvc.On("ResolveLineItems", ctx, event).Return(resolved, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).
		Return(suite.postableAccounts(debitID, creditID), nil).Once()
	suite.mockAutoPostRepo.On("IsAutoPost", ctx, "capital_activity", "capital_call").Return(true, nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.Status == domain.Posted && e.PostedBy == "system" && e.PostedAt != nil
	}), mock.AnythingOfType("[]domain.JournalEntryLineItem")).
		Return("JE-20260415-0001", nil).Once()
	suite.mockNotifier.On("NotifyPostingActivity", ctx, mock.MatchedBy(func(n domain.PostingNotification) bool {
		return n.EntryNumber == "JE-20260415-0001" && n.TotalAmount.Equal(decimal.NewFromInt(500000))
	})).Return(nil).Once()

	created, err := suite.service.CreateAutomatedEntry(ctx, event)

	suite.Require().NoError(err)
	suite.Equal(domain.Posted, created.Status)
	suite.Equal("system", created.PostedBy)
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateAutomatedEntry_NotifierFailureIgnored() {
	ctx := context.Background()
	debitID := uuid.NewString()
	creditID := uuid.NewString()
	event := domain.SourceEvent{
		SourceSystem: "capital_activity",
		SourceType:   "capital_call",
		SourceID:     "CC-2026-005",
		EntryDate:    time.Now(),
		Description:  "Capital call 5",
		SourceData:   map[string]any{"amount": 500000.0},
	}
	resolved := []domain.JournalEntryLineItem{
		{GLAccountID: debitID, DebitAmount: decimal.NewFromInt(500000)},
		{GLAccountID: creditID, CreditAmount: decimal.NewFromInt(500000)},
	}

	suite.mockJournalRepo.On("FindEntriesBySource", ctx, "capital_activity", "CC-2026-005").
		Return([]domain.JournalEntry{}, nil).Once()
	suite.mockMappingSvc.On("ResolveLineItems", ctx, event).Return(resolved, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).
		Return(suite.postableAccounts(debitID, creditID), nil).Once()
	suite.mockAutoPostRepo.On("IsAutoPost", ctx, "capital_activity", "capital_call").Return(true, nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalEntryLineItem")).
		Return("JE-20260415-0002", nil).Once()
	suite.mockNotifier.On("NotifyPostingActivity", ctx, mock.AnythingOfType("domain.PostingNotification")).
		Return(assert.AnError).Once()

	created, err := suite.service.CreateAutomatedEntry(ctx, event)

	suite.Require().NoError(err, "A failed notification must not fail the posting")
	suite.Equal(domain.Posted, created.Status)
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateAutomatedEntry_BelowThresholdSkipsNotification() {
	ctx := context.Background()
	debitID := uuid.NewString()
	creditID := uuid.NewString()
	event := domain.SourceEvent{
		SourceSystem: "fee_calculator",
		SourceType:   "management_fee",
		SourceID:     "FEE-2026-Q1-003",
		EntryDate:    time.Now(),
		Description:  "small fee",
		SourceData:   map[string]any{"amount": 1200.0},
	}
	resolved := []domain.JournalEntryLineItem{
		{GLAccountID: debitID, DebitAmount: decimal.NewFromInt(1200)},
		{GLAccountID: creditID, CreditAmount: decimal.NewFromInt(1200)},
	}

	suite.mockJournalRepo.On("FindEntriesBySource", ctx, "fee_calculator", "FEE-2026-Q1-003").
		Return([]domain.JournalEntry{}, nil).Once()
	suite.mockMappingSvc.On("ResolveLineItems", ctx, event).Return(resolved, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).
		Return(suite.postableAccounts(debitID, creditID), nil).Once()
	suite.mockAutoPostRepo.On("IsAutoPost", ctx, "fee_calculator", "management_fee").Return(true, nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalEntryLineItem")).
		Return("JE-20260415-0003", nil).Once()

	_, err := suite.service.CreateAutomatedEntry(ctx, event)

	suite.Require().NoError(err)
	suite.mockNotifier.AssertNotCalled(suite.T(), "NotifyPostingActivity")
}

func (suite *JournalServiceTestSuite) TestPostEntry_Success() {
	ctx := context.Background()
	entryID := uuid.NewString()
	cashID := uuid.NewString()
	capitalID := uuid.NewString()
	entry := &domain.JournalEntry{
		EntryID:     entryID,
		EntryNumber: "JE-20260331-0001",
		Status:      domain.Draft,
	}
	lines := []domain.JournalEntryLineItem{
		{GLAccountID: cashID, DebitAmount: decimal.NewFromInt(100)},
		{GLAccountID: capitalID, CreditAmount: decimal.NewFromInt(100)},
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(entry, nil).Once()
	suite.mockJournalRepo.On("FindLineItemsByEntryID", ctx, entryID).Return(lines, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).
		Return(suite.postableAccounts(cashID, capitalID), nil).Once()
	suite.mockJournalRepo.On("MarkEntryPosted", ctx, entryID, "user-1", mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	posted, err := suite.service.PostEntry(ctx, "user-1", entryID)

	suite.Require().NoError(err)
	suite.Equal(domain.Posted, posted.Status)
	suite.Equal("user-1", posted.PostedBy)
	suite.Require().NotNil(posted.PostedAt)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostEntry_NotDraft() {
	ctx := context.Background()
	entryID := uuid.NewString()
	entry := &domain.JournalEntry{
		EntryID:     entryID,
		EntryNumber: "JE-20260331-0001",
		Status:      domain.Posted,
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(entry, nil).Once()

	_, err := suite.service.PostEntry(ctx, "user-1", entryID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrEntryNotDraft)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "MarkEntryPosted")
}

func (suite *JournalServiceTestSuite) TestPostEntry_AccountDeactivatedSinceDraft() {
	ctx := context.Background()
	entryID := uuid.NewString()
	cashID := uuid.NewString()
	closedID := uuid.NewString()
	entry := &domain.JournalEntry{EntryID: entryID, Status: domain.Draft}
	lines := []domain.JournalEntryLineItem{
		{GLAccountID: cashID, DebitAmount: decimal.NewFromInt(100)},
		{GLAccountID: closedID, CreditAmount: decimal.NewFromInt(100)},
	}

	accounts := suite.postableAccounts(cashID)
	accounts[closedID] = domain.GLAccount{AccountID: closedID, IsActive: false, AllowsDirectPosting: true}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(entry, nil).Once()
	suite.mockJournalRepo.On("FindLineItemsByEntryID", ctx, entryID).Return(lines, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).Return(accounts, nil).Once()

	_, err := suite.service.PostEntry(ctx, "user-1", entryID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "MarkEntryPosted")
}

func (suite *JournalServiceTestSuite) TestReverseEntry_Success() {
	ctx := context.Background()
	entryID := uuid.NewString()
	cashID := uuid.NewString()
	capitalID := uuid.NewString()
	original := &domain.JournalEntry{
		EntryID:     entryID,
		EntryNumber: "JE-20260331-0001",
		Status:      domain.Posted,
		TotalDebit:  decimal.NewFromInt(250000),
		TotalCredit: decimal.NewFromInt(250000),
		FundID:      "fund-2",
	}
	lines := []domain.JournalEntryLineItem{
		{GLAccountID: cashID, DebitAmount: decimal.NewFromInt(250000), FundID: "fund-2", InvestorID: "inv-9"},
		{GLAccountID: capitalID, CreditAmount: decimal.NewFromInt(250000), FundID: "fund-2", InvestorID: "inv-9"},
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(original, nil).Once()
	suite.mockJournalRepo.On("FindLineItemsByEntryID", ctx, entryID).Return(lines, nil).Once()
	suite.mockJournalRepo.On("ReverseEntry", ctx,
		mock.MatchedBy(func(o domain.JournalEntry) bool {
			return o.Status == domain.Reversed && o.ReversalReason == "booked twice" && o.ReversalEntryID != ""
		}),
		mock.MatchedBy(func(r domain.JournalEntry) bool {
			return r.Status == domain.Posted && r.SourceType == domain.SourceAdjustment && r.SourceID == entryID
		}),
		mock.MatchedBy(func(reversalLines []domain.JournalEntryLineItem) bool {
			if len(reversalLines) != 2 {
				return false
			}
			// Sides swap, sub-ledger tags carry over.
			return reversalLines[0].CreditAmount.Equal(decimal.NewFromInt(250000)) &&
				reversalLines[0].DebitAmount.IsZero() &&
				reversalLines[0].InvestorID == "inv-9" &&
				reversalLines[1].DebitAmount.Equal(decimal.NewFromInt(250000)) &&
				reversalLines[1].FundID == "fund-2"
		}),
	).Return("JE-20260601-0001", nil).Once()

	reversal, err := suite.service.ReverseEntry(ctx, "user-1", entryID, "booked twice")

	suite.Require().NoError(err)
	suite.Equal("JE-20260601-0001", reversal.EntryNumber)
	suite.Equal(domain.Posted, reversal.Status)
	suite.Contains(reversal.Description, "Reversal of JE-20260331-0001")
	suite.Contains(reversal.Description, "booked twice")
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestReverseEntry_AlreadyReversed() {
	ctx := context.Background()
	entryID := uuid.NewString()
	original := &domain.JournalEntry{
		EntryID:         entryID,
		EntryNumber:     "JE-20260331-0001",
		Status:          domain.Reversed,
		ReversalEntryID: uuid.NewString(),
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(original, nil).Once()

	_, err := suite.service.ReverseEntry(ctx, "user-1", entryID, "again")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrEntryAlreadyReversed)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "ReverseEntry")
}

func (suite *JournalServiceTestSuite) TestReverseEntry_DraftRejected() {
	ctx := context.Background()
	entryID := uuid.NewString()
	original := &domain.JournalEntry{
		EntryID:     entryID,
		EntryNumber: "JE-20260331-0002",
		Status:      domain.Draft,
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(original, nil).Once()

	_, err := suite.service.ReverseEntry(ctx, "user-1", entryID, "wrong amount")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrEntryNotPosted)
}

func (suite *JournalServiceTestSuite) TestGetEntry() {
	ctx := context.Background()
	entryID := uuid.NewString()
	entry := &domain.JournalEntry{EntryID: entryID, EntryNumber: "JE-20260331-0001"}
	lines := []domain.JournalEntryLineItem{{LineItemID: uuid.NewString(), EntryID: entryID}}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(entry, nil).Once()
	suite.mockJournalRepo.On("FindLineItemsByEntryID", ctx, entryID).Return(lines, nil).Once()

	result, err := suite.service.GetEntry(ctx, entryID)

	suite.Require().NoError(err)
	suite.Equal(entryID, result.EntryID)
	suite.Len(result.LineItems, 1)
}

func (suite *JournalServiceTestSuite) TestListEntries_DefaultsLimit() {
	ctx := context.Background()
	entries := []domain.JournalEntry{{EntryID: uuid.NewString()}}

	suite.mockJournalRepo.On("ListEntries", ctx, (*string)(nil), (*domain.EntryStatus)(nil), 20, (*string)(nil)).
		Return(entries, "", nil).Once()

	result, nextToken, err := suite.service.ListEntries(ctx, dto.ListEntriesParams{})

	suite.Require().NoError(err)
	suite.Len(result, 1)
	suite.Empty(nextToken)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func TestJournalService(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}

package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/omcerp/fuel_accounting_app/internal/apperrors"
	"github.com/omcerp/fuel_accounting_app/internal/core/accounting"
	"github.com/omcerp/fuel_accounting_app/internal/core/domain"
	portsrepo "github.com/omcerp/fuel_accounting_app/internal/core/ports/repositories"
	portssvc "github.com/omcerp/fuel_accounting_app/internal/core/ports/services"
	"github.com/omcerp/fuel_accounting_app/internal/core/services"
	"github.com/omcerp/fuel_accounting_app/internal/dto"
)

// MockEntryRepository is a mock implementation of portsrepo.EntryRepositoryFacade.
type MockEntryRepository struct {
	mock.Mock
}

var _ portsrepo.EntryRepositoryFacade = (*MockEntryRepository)(nil)

func (m *MockEntryRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockEntryRepository) FindEntryBySource(ctx context.Context, templateCode, sourceDocumentID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, templateCode, sourceDocumentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockEntryRepository) ListEntries(ctx context.Context, filter portsrepo.ListEntriesFilter) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, filter)
	var entries []domain.JournalEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.JournalEntry)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return entries, token, args.Error(2)
}

func (m *MockEntryRepository) MarkPosted(ctx context.Context, entryID, approverID string, postedAt time.Time) error {
	args := m.Called(ctx, entryID, approverID, postedAt)
	return args.Error(0)
}

func (m *MockEntryRepository) SaveReversal(ctx context.Context, reversal domain.JournalEntry, originalEntryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, reversal, originalEntryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockEntryRepository) Summarize(ctx context.Context, from, to time.Time, templateCode *string) (*domain.EntrySummary, error) {
	args := m.Called(ctx, from, to, templateCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EntrySummary), args.Error(1)
}

type PostingServiceTestSuite struct {
	suite.Suite
	mockRepo *MockEntryRepository
	service  portssvc.PostingSvcFacade
	ctx      context.Context
}

func (s *PostingServiceTestSuite) SetupTest() {
	s.mockRepo = new(MockEntryRepository)
	catalog := accounting.DefaultTemplateCatalog()
	builder := services.NewEntryBuilder(accounting.NewResolver(accounting.DefaultChart()), catalog, accounting.DefaultLevyRates())
	s.service = services.NewPostingService(s.mockRepo, builder, catalog, services.NewLogNotifier())
	s.ctx = context.Background()
}

func (s *PostingServiceTestSuite) fuelSaleRequest(invoice string) dto.CreateEntryRequest {
	return dto.CreateEntryRequest{
		TransactionType:  accounting.TemplateFuelSale,
		SourceDocumentID: invoice,
		Payload: mustJSON(s.T(), domain.FuelSaleEvent{
			StationID:     "ST-ACCRA-01",
			ProductCode:   "PMS",
			InvoiceNumber: invoice,
			Volume:        decimal.NewFromInt(100),
			BasePrice:     decimal.NewFromFloat(10.00),
		}),
	}
}

func (s *PostingServiceTestSuite) uppfClaimRequest(claim string, amount decimal.Decimal) dto.CreateEntryRequest {
	return dto.CreateEntryRequest{
		TransactionType:  accounting.TemplateUPPFClaim,
		SourceDocumentID: claim,
		Payload: mustJSON(s.T(), domain.UPPFClaimEvent{
			ClaimNumber: claim,
			WindowID:    "2025-W18",
			ClaimAmount: amount,
		}),
	}
}

func (s *PostingServiceTestSuite) TestCreateEntryAutoPosts() {
	s.mockRepo.On("FindEntryBySource", s.ctx, accounting.TemplateFuelSale, "INV-100").
		Return(nil, apperrors.ErrNotFound).Once()
	s.mockRepo.On("SaveEntry", s.ctx, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.Status == domain.Posted && e.PostedBy == domain.SystemActor && e.PostedAt != nil
	})).Return(&domain.JournalEntry{
		EntryID:     "e-1",
		EntryNumber: "JE-FUEL_SALE-20250901-001",
		Status:      domain.Posted,
		PostedBy:    domain.SystemActor,
		TotalDebit:  decimal.NewFromFloat(1175.00),
		TotalCredit: decimal.NewFromFloat(1175.00),
	}, nil).Once()

	entry, err := s.service.CreateEntry(s.ctx, s.fuelSaleRequest("INV-100"), "pricing-service")
	s.Require().NoError(err)
	s.Equal(domain.Posted, entry.Status)
	s.Equal("JE-FUEL_SALE-20250901-001", entry.EntryNumber)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *PostingServiceTestSuite) TestCreateEntryHoldsDraftAboveThreshold() {
	s.mockRepo.On("FindEntryBySource", s.ctx, accounting.TemplateUPPFClaim, "UPPF-6000").
		Return(nil, apperrors.ErrNotFound).Once()
	s.mockRepo.On("SaveEntry", s.ctx, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.Status == domain.Draft && e.PostedBy == "" && e.PostedAt == nil
	})).Return(&domain.JournalEntry{EntryID: "e-2", Status: domain.Draft}, nil).Once()

	entry, err := s.service.CreateEntry(s.ctx, s.uppfClaimRequest("UPPF-6000", decimal.NewFromInt(6000)), "uppf-service")
	s.Require().NoError(err)
	s.Equal(domain.Draft, entry.Status)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *PostingServiceTestSuite) TestCreateEntryBelowThresholdAutoPosts() {
	s.mockRepo.On("FindEntryBySource", s.ctx, accounting.TemplateUPPFClaim, "UPPF-4999").
		Return(nil, apperrors.ErrNotFound).Once()
	s.mockRepo.On("SaveEntry", s.ctx, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.Status == domain.Posted
	})).Return(&domain.JournalEntry{EntryID: "e-3", Status: domain.Posted}, nil).Once()

	_, err := s.service.CreateEntry(s.ctx, s.uppfClaimRequest("UPPF-4999", decimal.NewFromFloat(4999.99)), "uppf-service")
	s.Require().NoError(err)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *PostingServiceTestSuite) TestCreateEntryReturnsExistingOnReplay() {
	existing := &domain.JournalEntry{EntryID: "e-1", Status: domain.Posted}
	s.mockRepo.On("FindEntryBySource", s.ctx, accounting.TemplateFuelSale, "INV-100").
		Return(existing, nil).Once()

	entry, err := s.service.CreateEntry(s.ctx, s.fuelSaleRequest("INV-100"), "pricing-service")
	s.Require().NoError(err)
	s.Equal(existing, entry)
	s.mockRepo.AssertNotCalled(s.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (s *PostingServiceTestSuite) TestCreateEntryLosesInsertRace() {
	winner := &domain.JournalEntry{EntryID: "e-winner", Status: domain.Posted}
	s.mockRepo.On("FindEntryBySource", s.ctx, accounting.TemplateFuelSale, "INV-100").
		Return(nil, apperrors.ErrNotFound).Once()
	s.mockRepo.On("SaveEntry", s.ctx, mock.Anything).
		Return(nil, apperrors.ErrDuplicate).Once()
	s.mockRepo.On("FindEntryBySource", s.ctx, accounting.TemplateFuelSale, "INV-100").
		Return(winner, nil).Once()

	entry, err := s.service.CreateEntry(s.ctx, s.fuelSaleRequest("INV-100"), "pricing-service")
	s.Require().NoError(err)
	s.Equal("e-winner", entry.EntryID)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *PostingServiceTestSuite) TestCreateEntryUnknownTransactionType() {
	req := dto.CreateEntryRequest{
		TransactionType:  "PAYROLL",
		SourceDocumentID: "PAY-1",
		Payload:          []byte(`{}`),
	}
	_, err := s.service.CreateEntry(s.ctx, req, "hr-service")
	s.ErrorIs(err, services.ErrTemplateNotFound)
	s.mockRepo.AssertNotCalled(s.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (s *PostingServiceTestSuite) TestApproveEntryPostsDraft() {
	draft := &domain.JournalEntry{EntryID: "e-5", EntryNumber: "JE-UPPF_CLAIM-20250901-001", Status: domain.Draft}
	s.mockRepo.On("FindEntryByID", s.ctx, "e-5").Return(draft, nil).Once()
	s.mockRepo.On("MarkPosted", s.ctx, "e-5", "finance-manager", mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	entry, err := s.service.ApproveEntry(s.ctx, "e-5", "finance-manager")
	s.Require().NoError(err)
	s.Equal(domain.Posted, entry.Status)
	s.Equal("finance-manager", entry.PostedBy)
	s.NotNil(entry.PostedAt)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *PostingServiceTestSuite) TestApproveEntryIdempotentForSameApprover() {
	posted := &domain.JournalEntry{EntryID: "e-5", Status: domain.Posted, PostedBy: "finance-manager"}
	s.mockRepo.On("FindEntryByID", s.ctx, "e-5").Return(posted, nil).Once()

	entry, err := s.service.ApproveEntry(s.ctx, "e-5", "finance-manager")
	s.Require().NoError(err)
	s.Equal(posted, entry)
	s.mockRepo.AssertNotCalled(s.T(), "MarkPosted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *PostingServiceTestSuite) TestApproveEntryRejectsDifferentApprover() {
	posted := &domain.JournalEntry{EntryID: "e-5", Status: domain.Posted, PostedBy: "finance-manager"}
	s.mockRepo.On("FindEntryByID", s.ctx, "e-5").Return(posted, nil).Once()

	_, err := s.service.ApproveEntry(s.ctx, "e-5", "other-manager")
	s.ErrorIs(err, services.ErrInvalidStateTransition)
}

func (s *PostingServiceTestSuite) TestApproveEntryRejectsReversed() {
	reversed := &domain.JournalEntry{EntryID: "e-6", Status: domain.Reversed}
	s.mockRepo.On("FindEntryByID", s.ctx, "e-6").Return(reversed, nil).Once()

	_, err := s.service.ApproveEntry(s.ctx, "e-6", "finance-manager")
	s.ErrorIs(err, services.ErrInvalidStateTransition)
}

func (s *PostingServiceTestSuite) TestApproveEntryNotFound() {
	s.mockRepo.On("FindEntryByID", s.ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.ApproveEntry(s.ctx, "missing", "finance-manager")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *PostingServiceTestSuite) TestApproveEntryLostRaceSameApprover() {
	draft := &domain.JournalEntry{EntryID: "e-7", Status: domain.Draft}
	s.mockRepo.On("FindEntryByID", s.ctx, "e-7").Return(draft, nil).Once()
	s.mockRepo.On("MarkPosted", s.ctx, "e-7", "finance-manager", mock.AnythingOfType("time.Time")).
		Return(apperrors.ErrConflict).Once()
	s.mockRepo.On("FindEntryByID", s.ctx, "e-7").
		Return(&domain.JournalEntry{EntryID: "e-7", Status: domain.Posted, PostedBy: "finance-manager"}, nil).Once()

	entry, err := s.service.ApproveEntry(s.ctx, "e-7", "finance-manager")
	s.Require().NoError(err)
	s.Equal(domain.Posted, entry.Status)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *PostingServiceTestSuite) TestApproveEntryLostRaceDifferentApprover() {
	draft := &domain.JournalEntry{EntryID: "e-8", Status: domain.Draft}
	s.mockRepo.On("FindEntryByID", s.ctx, "e-8").Return(draft, nil).Once()
	s.mockRepo.On("MarkPosted", s.ctx, "e-8", "finance-manager", mock.AnythingOfType("time.Time")).
		Return(apperrors.ErrConflict).Once()
	s.mockRepo.On("FindEntryByID", s.ctx, "e-8").
		Return(&domain.JournalEntry{EntryID: "e-8", Status: domain.Posted, PostedBy: "other-manager"}, nil).Once()

	_, err := s.service.ApproveEntry(s.ctx, "e-8", "finance-manager")
	s.ErrorIs(err, services.ErrInvalidStateTransition)
}

func (s *PostingServiceTestSuite) TestReverseEntrySwapsSides() {
	original := &domain.JournalEntry{
		EntryID:          "e-10",
		EntryNumber:      "JE-FUEL_SALE-20250901-004",
		Description:      "Fuel sale - ST-ACCRA-01 - 1000L PMS",
		SourceDocument:   "FUEL_INVOICE",
		SourceDocumentID: "INV-2025-001",
		TemplateCode:     accounting.TemplateFuelSale,
		TotalDebit:       decimal.NewFromInt(11750),
		TotalCredit:      decimal.NewFromInt(11750),
		Status:           domain.Posted,
		Lines: []domain.JournalLine{
			{LineID: "l-1", AccountCode: accounting.CodeAccountsReceivable, Debit: decimal.NewFromInt(11750), Credit: decimal.Zero, CostCenter: "ST-ACCRA-01"},
			{LineID: "l-2", AccountCode: accounting.CodeFuelSalesPMS, Debit: decimal.Zero, Credit: decimal.NewFromInt(11750), CostCenter: "ST-ACCRA-01"},
		},
	}
	s.mockRepo.On("FindEntryByID", s.ctx, "e-10").Return(original, nil).Once()

	var captured domain.JournalEntry
	s.mockRepo.On("SaveReversal", s.ctx, mock.AnythingOfType("domain.JournalEntry"), "e-10").
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(domain.JournalEntry)
		}).
		Return(&domain.JournalEntry{EntryID: "e-11", EntryNumber: "JE-REVERSAL-20250901-001", Status: domain.Posted}, nil).Once()

	reversal, err := s.service.ReverseEntry(s.ctx, "e-10", "pricing correction", "finance-manager")
	s.Require().NoError(err)
	s.Equal("e-11", reversal.EntryID)

	s.Equal(accounting.ReversalTemplateCode, captured.TemplateCode)
	s.Equal(domain.Posted, captured.Status)
	s.Require().NotNil(captured.ReversalOf)
	s.Equal("e-10", *captured.ReversalOf)
	s.Contains(captured.Description, "pricing correction")
	s.Require().Len(captured.Lines, 2)
	s.True(captured.Lines[0].Credit.Equal(decimal.NewFromInt(11750)), "debit line flips to credit")
	s.True(captured.Lines[0].Debit.IsZero())
	s.True(captured.Lines[1].Debit.Equal(decimal.NewFromInt(11750)), "credit line flips to debit")
	s.Equal("ST-ACCRA-01", captured.Lines[0].CostCenter, "dimension tags survive reversal")
	s.mockRepo.AssertExpectations(s.T())
}

func (s *PostingServiceTestSuite) TestReverseEntryRejectsDraft() {
	draft := &domain.JournalEntry{EntryID: "e-12", Status: domain.Draft}
	s.mockRepo.On("FindEntryByID", s.ctx, "e-12").Return(draft, nil).Once()

	_, err := s.service.ReverseEntry(s.ctx, "e-12", "mistake", "finance-manager")
	s.ErrorIs(err, services.ErrInvalidStateTransition)
	s.mockRepo.AssertNotCalled(s.T(), "SaveReversal", mock.Anything, mock.Anything, mock.Anything)
}

func (s *PostingServiceTestSuite) TestReverseEntryRejectsAlreadyReversed() {
	reversed := &domain.JournalEntry{EntryID: "e-13", Status: domain.Reversed}
	s.mockRepo.On("FindEntryByID", s.ctx, "e-13").Return(reversed, nil).Once()

	_, err := s.service.ReverseEntry(s.ctx, "e-13", "again", "finance-manager")
	s.ErrorIs(err, services.ErrInvalidStateTransition)
}

func (s *PostingServiceTestSuite) TestReverseEntryLostRace() {
	original := &domain.JournalEntry{EntryID: "e-14", Status: domain.Posted, TotalDebit: decimal.NewFromInt(100), TotalCredit: decimal.NewFromInt(100)}
	s.mockRepo.On("FindEntryByID", s.ctx, "e-14").Return(original, nil).Once()
	s.mockRepo.On("SaveReversal", s.ctx, mock.AnythingOfType("domain.JournalEntry"), "e-14").
		Return(nil, apperrors.ErrConflict).Once()

	_, err := s.service.ReverseEntry(s.ctx, "e-14", "duplicate", "finance-manager")
	s.ErrorIs(err, services.ErrInvalidStateTransition)
}

func (s *PostingServiceTestSuite) TestListEntriesRejectsUnknownStatus() {
	bad := "PENDING"
	_, err := s.service.ListEntries(s.ctx, dto.ListEntriesParams{Status: &bad})
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockRepo.AssertNotCalled(s.T(), "ListEntries", mock.Anything, mock.Anything)
}

func (s *PostingServiceTestSuite) TestListEntriesDefaultsLimit() {
	s.mockRepo.On("ListEntries", s.ctx, mock.MatchedBy(func(f portsrepo.ListEntriesFilter) bool {
		return f.Limit == 20
	})).Return([]domain.JournalEntry{{EntryID: "e-1"}}, nil, nil).Once()

	page, err := s.service.ListEntries(s.ctx, dto.ListEntriesParams{})
	s.Require().NoError(err)
	s.Len(page.Entries, 1)
	s.Nil(page.NextToken)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *PostingServiceTestSuite) TestGetSummary() {
	from := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	expected := &domain.EntrySummary{TotalEntries: 3}
	s.mockRepo.On("Summarize", s.ctx, from, to, (*string)(nil)).Return(expected, nil).Once()

	summary, err := s.service.GetSummary(s.ctx, from, to, nil)
	s.Require().NoError(err)
	s.Equal(expected, summary)
}

func TestPostingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PostingServiceTestSuite))
}

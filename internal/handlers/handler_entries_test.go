package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	limiter "github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/omcerp/fuel_accounting_app/internal/apperrors"
	"github.com/omcerp/fuel_accounting_app/internal/core/accounting"
	"github.com/omcerp/fuel_accounting_app/internal/core/domain"
	portssvc "github.com/omcerp/fuel_accounting_app/internal/core/ports/services"
	"github.com/omcerp/fuel_accounting_app/internal/core/services"
	"github.com/omcerp/fuel_accounting_app/internal/dto"
	"github.com/omcerp/fuel_accounting_app/internal/handlers"
	"github.com/omcerp/fuel_accounting_app/pkg/config"
)

// --- Mock PostingService ---
type MockPostingService struct {
	mock.Mock
}

var _ portssvc.PostingSvcFacade = (*MockPostingService)(nil)

func (m *MockPostingService) CreateEntry(ctx context.Context, req dto.CreateEntryRequest, actorID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockPostingService) ApproveEntry(ctx context.Context, entryID, approverID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID, approverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockPostingService) ReverseEntry(ctx context.Context, entryID, reason, actorID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID, reason, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockPostingService) GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockPostingService) ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListEntriesResponse), args.Error(1)
}
func (m *MockPostingService) GetSummary(ctx context.Context, from, to time.Time, templateCode *string) (*domain.EntrySummary, error) {
	args := m.Called(ctx, from, to, templateCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EntrySummary), args.Error(1)
}

// --- Mock ChartService ---
type MockChartService struct {
	mock.Mock
}

var _ portssvc.ChartSvcFacade = (*MockChartService)(nil)

func (m *MockChartService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

type EntryHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockPosting *MockPostingService
	mockChart   *MockChartService
	jwtSecret   string
	jwtIssuer   string
}

// generateTestToken creates a signed service JWT for the given caller.
func (suite *EntryHandlerTestSuite) generateTestToken(subject string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    suite.jwtIssuer,
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *EntryHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.jwtIssuer = "omc-erp-test"

	suite.mockPosting = new(MockPostingService)
	suite.mockChart = new(MockChartService)

	cfg := &config.Config{
		Port:               "8080",
		IsProduction:       true, // no swagger routes in the test router
		ServiceJWTSecret:   suite.jwtSecret,
		ServiceJWTIssuer:   suite.jwtIssuer,
		CORSAllowedOrigins: []string{"http://localhost:3000"},
	}

	rateLimiter := limiter.New(memory.NewStore(), limiter.Rate{Period: time.Minute, Limit: 1000})
	serviceProvider := &portssvc.ServiceProvider{Posting: suite.mockPosting, Chart: suite.mockChart}
	handlers.RegisterRoutes(suite.router, cfg, serviceProvider, accounting.DefaultTemplateCatalog(), rateLimiter)
}

func (suite *EntryHandlerTestSuite) doRequest(method, url, caller string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if caller != "" {
		req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(caller))
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *EntryHandlerTestSuite) createEntryBody(transactionType string) map[string]any {
	return map[string]any{
		"transactionType":  transactionType,
		"sourceDocumentID": "INV-2025-001",
		"payload": map[string]any{
			"stationId":     "ST-ACCRA-01",
			"productCode":   "PMS",
			"invoiceNumber": "INV-2025-001",
			"volume":        "1000",
			"basePrice":     "10.00",
		},
	}
}

func (suite *EntryHandlerTestSuite) TestCreateEntry_Success() {
	expected := &domain.JournalEntry{
		EntryID:     "e-1",
		EntryNumber: "JE-FUEL_SALE-20250901-001",
		Status:      domain.Posted,
		TotalDebit:  decimal.NewFromFloat(11750.00),
		TotalCredit: decimal.NewFromFloat(11750.00),
	}
	suite.mockPosting.On("CreateEntry", mock.Anything, mock.MatchedBy(func(req dto.CreateEntryRequest) bool {
		return req.TransactionType == accounting.TemplateFuelSale && req.SourceDocumentID == "INV-2025-001"
	}), "pricing-service").Return(expected, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/entries", "pricing-service", suite.createEntryBody("FUEL_SALE"))

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.EntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("e-1", resp.EntryID)
	suite.Equal("POSTED", resp.Status)
	suite.mockPosting.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestCreateEntry_Unauthorized() {
	w := suite.doRequest(http.MethodPost, "/api/v1/entries", "", suite.createEntryBody("FUEL_SALE"))
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockPosting.AssertNotCalled(suite.T(), "CreateEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *EntryHandlerTestSuite) TestCreateEntry_UnknownTransactionTypeFailsBinding() {
	w := suite.doRequest(http.MethodPost, "/api/v1/entries", "pricing-service", suite.createEntryBody("PAYROLL"))
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockPosting.AssertNotCalled(suite.T(), "CreateEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *EntryHandlerTestSuite) TestGetEntry_NotFound() {
	suite.mockPosting.On("GetEntry", mock.Anything, "missing").
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/entries/missing", "reporting-service", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *EntryHandlerTestSuite) TestGetEntry_Success() {
	entry := &domain.JournalEntry{EntryID: "e-2", Status: domain.Draft}
	suite.mockPosting.On("GetEntry", mock.Anything, "e-2").Return(entry, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/entries/e-2", "reporting-service", nil)
	suite.Equal(http.StatusOK, w.Code)

	var resp dto.EntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("DRAFT", resp.Status)
}

func (suite *EntryHandlerTestSuite) TestApproveEntry_Success() {
	now := time.Now().UTC()
	entry := &domain.JournalEntry{EntryID: "e-3", Status: domain.Posted, PostedBy: "finance-manager", PostedAt: &now}
	suite.mockPosting.On("ApproveEntry", mock.Anything, "e-3", "finance-manager").Return(entry, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/entries/e-3/approve", "approval-ui",
		dto.ApproveEntryRequest{ApproverID: "finance-manager"})
	suite.Equal(http.StatusOK, w.Code)
	suite.mockPosting.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestApproveEntry_Conflict() {
	suite.mockPosting.On("ApproveEntry", mock.Anything, "e-3", "finance-manager").
		Return(nil, services.ErrInvalidStateTransition).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/entries/e-3/approve", "approval-ui",
		dto.ApproveEntryRequest{ApproverID: "finance-manager"})
	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *EntryHandlerTestSuite) TestReverseEntry_Success() {
	reversal := &domain.JournalEntry{EntryID: "e-5", TemplateCode: accounting.ReversalTemplateCode, Status: domain.Posted}
	suite.mockPosting.On("ReverseEntry", mock.Anything, "e-4", "pricing correction", "finance-manager").
		Return(reversal, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/entries/e-4/reverse", "approval-ui",
		dto.ReverseEntryRequest{Reason: "pricing correction", ActorID: "finance-manager"})
	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.EntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(accounting.ReversalTemplateCode, resp.TemplateCode)
}

func (suite *EntryHandlerTestSuite) TestReverseEntry_NotFound() {
	suite.mockPosting.On("ReverseEntry", mock.Anything, "missing", "typo", "finance-manager").
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/entries/missing/reverse", "approval-ui",
		dto.ReverseEntryRequest{Reason: "typo", ActorID: "finance-manager"})
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *EntryHandlerTestSuite) TestListEntries_PassesFilter() {
	expected := &dto.ListEntriesResponse{Entries: []dto.EntryResponse{{EntryID: "e-1"}}}
	suite.mockPosting.On("ListEntries", mock.Anything, mock.MatchedBy(func(p dto.ListEntriesParams) bool {
		return p.Limit == 10 && p.TemplateCode != nil && *p.TemplateCode == "FUEL_SALE"
	})).Return(expected, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/entries?limit=10&templateCode=FUEL_SALE", "reporting-service", nil)
	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ListEntriesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Entries, 1)
	suite.mockPosting.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestListEntries_InvalidLimit() {
	w := suite.doRequest(http.MethodGet, "/api/v1/entries?limit=abc", "reporting-service", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockPosting.AssertNotCalled(suite.T(), "ListEntries", mock.Anything, mock.Anything)
}

func (suite *EntryHandlerTestSuite) TestGetSummary_Success() {
	summary := &domain.EntrySummary{TotalEntries: 2, ByStatus: map[string]int{"POSTED": 2}}
	suite.mockPosting.On("GetSummary", mock.Anything, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time"), (*string)(nil)).
		Return(summary, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/entries/summary", "reporting-service", nil)
	suite.Equal(http.StatusOK, w.Code)

	var resp domain.EntrySummary
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(2, resp.TotalEntries)
}

func (suite *EntryHandlerTestSuite) TestPostEvent_RoutesToPosting() {
	expected := &domain.JournalEntry{EntryID: "e-6", Status: domain.Posted}
	suite.mockPosting.On("CreateEntry", mock.Anything, mock.MatchedBy(func(req dto.CreateEntryRequest) bool {
		return req.TransactionType == accounting.TemplateUPPFClaim && req.SourceDocumentID == "UPPF-2025-100"
	}), "uppf-service").Return(expected, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/events", "uppf-service", map[string]any{
		"eventType":        "uppf.claim",
		"sourceDocumentId": "UPPF-2025-100",
		"data": map[string]any{
			"claimNumber": "UPPF-2025-100",
			"windowId":    "2025-W18",
			"claimAmount": "6000.00",
		},
	})
	suite.Equal(http.StatusCreated, w.Code)
	suite.mockPosting.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestPostEvent_UnknownEventType() {
	w := suite.doRequest(http.MethodPost, "/api/v1/events", "uppf-service", map[string]any{
		"eventType":        "payroll.run",
		"sourceDocumentId": "PAY-1",
		"data":             map[string]any{},
	})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockPosting.AssertNotCalled(suite.T(), "CreateEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *EntryHandlerTestSuite) TestListAccounts_Success() {
	suite.mockChart.On("ListAccounts", mock.Anything).
		Return(accounting.DefaultChart().Accounts(), nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/accounts", "reporting-service", nil)
	suite.Equal(http.StatusOK, w.Code)

	var resp []dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.NotEmpty(resp)
	suite.mockChart.AssertExpectations(suite.T())
}

func TestEntryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(EntryHandlerTestSuite))
}

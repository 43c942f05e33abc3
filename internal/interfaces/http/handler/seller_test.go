package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nasiya/backend/internal/application/dashboard"
	identityapp "github.com/nasiya/backend/internal/application/identity"
	"github.com/nasiya/backend/internal/domain/debtor"
	"github.com/nasiya/backend/internal/domain/identity"
	"github.com/nasiya/backend/internal/domain/loan"
	"github.com/nasiya/backend/internal/infrastructure/cache"
	"github.com/nasiya/backend/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type sellerMocks struct {
	sellerRepo  *MockSellerRepository
	walletRepo  *MockWalletTransactionRepository
	productRepo *MockBorrowedProductRepository
	debtorRepo  *MockDebtorRepository
}

func setupSellerHandler() (*SellerHandler, *sellerMocks) {
	mocks := &sellerMocks{
		sellerRepo:  new(MockSellerRepository),
		walletRepo:  new(MockWalletTransactionRepository),
		productRepo: new(MockBorrowedProductRepository),
		debtorRepo:  new(MockDebtorRepository),
	}
	sellerService := identityapp.NewSellerService(mocks.sellerRepo, mocks.walletRepo, zap.NewNop())
	dashCache := cache.NewInMemoryDashboardCache(time.Minute)
	dashboardService := dashboard.NewDashboardService(mocks.productRepo, mocks.debtorRepo, dashCache, zap.NewNop())
	return NewSellerHandler(sellerService, dashboardService), mocks
}

// Tests

func TestSellerHandler_GetProfile(t *testing.T) {
	handler, mocks := setupSellerHandler()

	seller := createFundedSeller(25000)
	mocks.sellerRepo.On("FindByID", mock.Anything, testSellerID).Return(seller, nil)

	router := setupTestRouter()
	router.GET("/seller/profile", handler.GetProfile)

	req := httptest.NewRequest(http.MethodGet, "/seller/profile", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "test-seller", data["login"])
	assert.Equal(t, "25000", data["balance"])
}

func TestSellerHandler_TopUpWallet(t *testing.T) {
	handler, mocks := setupSellerHandler()

	seller := createFundedSeller(0)
	mocks.sellerRepo.On("FindByID", mock.Anything, testSellerID).Return(seller, nil)
	mocks.sellerRepo.On("SaveWithLock", mock.Anything, mock.AnythingOfType("*identity.Seller")).Return(nil)
	mocks.walletRepo.On("Save", mock.Anything, mock.AnythingOfType("*identity.WalletTransaction")).Return(nil)

	router := setupTestRouter()
	router.POST("/seller/wallet/payments", handler.TopUpWallet)

	body, _ := json.Marshal(TopUpRequest{Amount: decimal.NewFromInt(50000), Note: "Click transfer"})
	req := httptest.NewRequest(http.MethodPost, "/seller/wallet/payments", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mocks.walletRepo.AssertExpectations(t)
	assert.True(t, seller.Balance.Equal(decimal.NewFromInt(50000)))
}

func TestSellerHandler_TopUpWallet_NegativeAmount(t *testing.T) {
	handler, mocks := setupSellerHandler()

	seller := createFundedSeller(0)
	mocks.sellerRepo.On("FindByID", mock.Anything, testSellerID).Return(seller, nil)

	router := setupTestRouter()
	router.POST("/seller/wallet/payments", handler.TopUpWallet)

	body, _ := json.Marshal(TopUpRequest{Amount: decimal.NewFromInt(-100)})
	req := httptest.NewRequest(http.MethodPost, "/seller/wallet/payments", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	mocks.walletRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestSellerHandler_WalletTransactions(t *testing.T) {
	handler, mocks := setupSellerHandler()

	tx, err := identity.NewWalletTransaction(testSellerID, identity.WalletTransactionTopUp, decimal.NewFromInt(50000), "")
	require.NoError(t, err)
	mocks.walletRepo.On("FindBySeller", mock.Anything, testSellerID, mock.AnythingOfType("shared.Filter")).
		Return([]identity.WalletTransaction{*tx}, int64(1), nil)

	router := setupTestRouter()
	router.GET("/seller/wallet/transactions", handler.WalletTransactions)

	req := httptest.NewRequest(http.MethodGet, "/seller/wallet/transactions", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(1), resp.Meta.Total)
}

func TestSellerHandler_ChangePassword_WrongOldPassword(t *testing.T) {
	handler, mocks := setupSellerHandler()

	seller := createFundedSeller(0)
	mocks.sellerRepo.On("FindByID", mock.Anything, testSellerID).Return(seller, nil)

	router := setupTestRouter()
	router.POST("/seller/password", handler.ChangePassword)

	body, _ := json.Marshal(ChangePasswordRequest{
		OldPassword: "wrong-password",
		NewPassword: "NewS3cretPass",
	})
	req := httptest.NewRequest(http.MethodPost, "/seller/password", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mocks.sellerRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
}

func TestSellerHandler_MonthTotal(t *testing.T) {
	handler, mocks := setupSellerHandler()

	d := createTestDebtor(testSellerID)
	start := time.Date(2026, time.August, 10, 0, 0, 0, 0, time.UTC)
	p, err := loan.NewBorrowedProduct(testSellerID, d.ID, "TV",
		decimal.NewFromInt(6000000), 6, decimal.Zero, start)
	require.NoError(t, err)

	mocks.productRepo.On("FindActiveBySeller", mock.Anything, testSellerID).
		Return([]loan.BorrowedProduct{*p}, nil)
	mocks.debtorRepo.On("FindByIDs", mock.Anything, testSellerID, mock.Anything).
		Return([]debtor.Debtor{*d}, nil)

	router := setupTestRouter()
	router.GET("/seller/month-total", handler.MonthTotal)

	// First installment falls one month after the start date
	req := httptest.NewRequest(http.MethodGet, "/seller/month-total?year=2026&month=9", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(1), data["thisMonthDebtorsCount"])
	assert.Equal(t, "1000000", data["thisMonthTotalAmount"])
}

func TestSellerHandler_MonthTotal_InvalidMonth(t *testing.T) {
	handler, _ := setupSellerHandler()

	router := setupTestRouter()
	router.GET("/seller/month-total", handler.MonthTotal)

	req := httptest.NewRequest(http.MethodGet, "/seller/month-total?year=2026&month=13", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSellerHandler_TotalDebt(t *testing.T) {
	handler, mocks := setupSellerHandler()

	d := createTestDebtor(testSellerID)
	p := createTestProduct(testSellerID, d.ID)
	require.NoError(t, p.ApplyPayment(decimal.NewFromInt(2000000)))

	mocks.productRepo.On("FindActiveBySeller", mock.Anything, testSellerID).
		Return([]loan.BorrowedProduct{*p}, nil)

	router := setupTestRouter()
	router.GET("/seller/total-debt", handler.TotalDebt)

	req := httptest.NewRequest(http.MethodGet, "/seller/total-debt", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "10000000", data["totalAmount"])
}

func TestSellerHandler_LateCustomers(t *testing.T) {
	handler, mocks := setupSellerHandler()

	d := createTestDebtor(testSellerID)
	// Started over a year ago with a 3 month term, nothing paid
	start := time.Now().UTC().AddDate(-1, 0, 0)
	p, err := loan.NewBorrowedProduct(testSellerID, d.ID, "Washing machine",
		decimal.NewFromInt(3000000), 3, decimal.Zero, start)
	require.NoError(t, err)

	mocks.productRepo.On("FindActiveBySeller", mock.Anything, testSellerID).
		Return([]loan.BorrowedProduct{*p}, nil)
	mocks.debtorRepo.On("FindByIDs", mock.Anything, testSellerID, mock.Anything).
		Return([]debtor.Debtor{*d}, nil)

	router := setupTestRouter()
	router.GET("/seller/late-customers", handler.LateCustomers)

	req := httptest.NewRequest(http.MethodGet, "/seller/late-customers", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(1), data["lateDebtorsCount"])
}

func TestSellerHandler_PaymentsForDay_InvalidDate(t *testing.T) {
	handler, _ := setupSellerHandler()

	router := setupTestRouter()
	router.GET("/seller/dates/:day", handler.PaymentsForDay)

	req := httptest.NewRequest(http.MethodGet, "/seller/dates/not-a-date", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSellerHandler_PaymentsForDay(t *testing.T) {
	handler, mocks := setupSellerHandler()

	d := createTestDebtor(testSellerID)
	start := time.Date(2026, time.August, 10, 0, 0, 0, 0, time.UTC)
	p, err := loan.NewBorrowedProduct(testSellerID, d.ID, "TV",
		decimal.NewFromInt(6000000), 6, decimal.Zero, start)
	require.NoError(t, err)

	mocks.productRepo.On("FindActiveBySeller", mock.Anything, testSellerID).
		Return([]loan.BorrowedProduct{*p}, nil)
	mocks.debtorRepo.On("FindByIDs", mock.Anything, testSellerID, mock.Anything).
		Return([]debtor.Debtor{*d}, nil)

	router := setupTestRouter()
	router.GET("/seller/dates/:day", handler.PaymentsForDay)

	req := httptest.NewRequest(http.MethodGet, "/seller/dates/2026-09-10", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	items := resp.Data.([]interface{})
	require.Len(t, items, 1)
	first := items[0].(map[string]interface{})
	assert.Equal(t, d.ID.String(), first["debtorId"])
	assert.NotEqual(t, uuid.Nil.String(), first["productId"])
}

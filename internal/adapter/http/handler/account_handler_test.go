package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/adapter/http/dto"
	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/usecase"
)

type accountServiceStub struct {
	createFn   func(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error)
	getFn      func(ctx context.Context, id string) (*domain.Account, error)
	balanceFn  func(ctx context.Context, id string) (decimal.Decimal, error)
	listFn     func(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error)
	depositFn  func(ctx context.Context, id string, amount decimal.Decimal) (*domain.Account, error)
	withdrawFn func(ctx context.Context, id string, amount decimal.Decimal) (*domain.Account, error)
	interestFn func(ctx context.Context, id string) (domain.InterestResult, error)
}

func (s *accountServiceStub) CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
	return s.createFn(ctx, input)
}

func (s *accountServiceStub) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return s.getFn(ctx, id)
}

func (s *accountServiceStub) GetBalance(ctx context.Context, id string) (decimal.Decimal, error) {
	return s.balanceFn(ctx, id)
}

func (s *accountServiceStub) ListAccounts(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error) {
	return s.listFn(ctx, input)
}

func (s *accountServiceStub) Deposit(ctx context.Context, id string, amount decimal.Decimal) (*domain.Account, error) {
	return s.depositFn(ctx, id, amount)
}

func (s *accountServiceStub) Withdraw(ctx context.Context, id string, amount decimal.Decimal) (*domain.Account, error) {
	return s.withdrawFn(ctx, id, amount)
}

func (s *accountServiceStub) CalculateInterest(ctx context.Context, id string) (domain.InterestResult, error) {
	return s.interestFn(ctx, id)
}

func TestAccountHandler_Create_Success(t *testing.T) {
	account := &domain.Account{
		ID:           "001",
		Holder:       "Alice",
		Kind:         domain.AccountKindSavings,
		Balance:      decimal.NewFromInt(1000),
		InterestRate: decimal.RequireFromString("0.05"),
	}

	var captured usecase.CreateAccountInput
	handler := NewAccountHandler(&accountServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
			captured = input
			return account, nil
		},
	})

	rate := "0.05"
	body, _ := json.Marshal(dto.CreateAccountRequest{
		ID:             "001",
		Holder:         "Alice",
		Type:           "savings",
		OpeningBalance: "1000",
		InterestRate:   &rate,
	})

	req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.ID != "001" || captured.Kind != "savings" || !captured.OpeningBalance.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("expected input to match request, got %+v", captured)
	}

	var resp dto.AccountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "001" || resp.Balance != "1000" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAccountHandler_Create_InvalidJSON(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
			t.Fatal("CreateAccount should not be called for invalid payload")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewBufferString("{invalid json"))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAccountHandler_Create_ServiceErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"duplicate", domain.ErrAccountExists, http.StatusConflict},
		{"bad type", domain.ErrInvalidAccountType, http.StatusBadRequest},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAccountHandler(&accountServiceStub{
				createFn: func(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
					return nil, tt.err
				},
			})

			body, _ := json.Marshal(dto.CreateAccountRequest{ID: "001", Holder: "Alice", Type: "checking"})
			req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))
			rec := httptest.NewRecorder()

			handler.Create(rec, req)

			if rec.Code != tt.expected {
				t.Fatalf("expected %d, got %d", tt.expected, rec.Code)
			}
		})
	}
}

func TestAccountHandler_Get(t *testing.T) {
	account := &domain.Account{ID: "001", Holder: "Alice", Kind: domain.AccountKindChecking}
	handler := NewAccountHandler(&accountServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.Account, error) {
			if id != "001" {
				t.Fatalf("expected id 001, got %s", id)
			}
			return account, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/accounts/001", nil)
	req = setChiURLParam(req, "id", "001")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAccountHandler_Get_NotFound(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.Account, error) {
			return nil, domain.ErrAccountNotFound
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/accounts/001", nil)
	req = setChiURLParam(req, "id", "001")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAccountHandler_GetBalance(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		balanceFn: func(ctx context.Context, id string) (decimal.Decimal, error) {
			return decimal.RequireFromString("42.5"), nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/accounts/001/balance", nil)
	req = setChiURLParam(req, "id", "001")
	rec := httptest.NewRecorder()

	handler.GetBalance(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.BalanceResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.AccountID != "001" || resp.Balance != "42.5" {
		t.Fatalf("unexpected balance response: %+v", resp)
	}
}

func TestAccountHandler_List(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		listFn: func(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error) {
			if input.Limit != 5 || input.Offset != 2 {
				t.Fatalf("expected limit=5 offset=2, got %+v", input)
			}
			return []*domain.Account{{ID: "001"}, {ID: "002"}}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/accounts?limit=5&offset=2", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.ListAccountsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Accounts) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(resp.Accounts))
	}
}

func TestAccountHandler_Deposit(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		depositFn: func(ctx context.Context, id string, amount decimal.Decimal) (*domain.Account, error) {
			if !amount.Equal(decimal.NewFromInt(50)) {
				t.Fatalf("expected amount 50, got %s", amount)
			}
			return &domain.Account{ID: id, Balance: decimal.NewFromInt(150)}, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/accounts/001/deposit", bytes.NewBufferString(`{"amount":"50"}`))
	req = setChiURLParam(req, "id", "001")
	rec := httptest.NewRecorder()

	handler.Deposit(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.AccountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Balance != "150" {
		t.Fatalf("expected balance 150, got %s", resp.Balance)
	}
}

func TestAccountHandler_Deposit_InvalidAmount(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		depositFn: func(ctx context.Context, id string, amount decimal.Decimal) (*domain.Account, error) {
			t.Fatal("Deposit should not be called for unparsable amount")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/accounts/001/deposit", bytes.NewBufferString(`{"amount":"ten"}`))
	req = setChiURLParam(req, "id", "001")
	rec := httptest.NewRecorder()

	handler.Deposit(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAccountHandler_Withdraw_InsufficientFunds(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		withdrawFn: func(ctx context.Context, id string, amount decimal.Decimal) (*domain.Account, error) {
			return nil, &domain.InsufficientFundsError{
				AccountID: id,
				Balance:   decimal.NewFromInt(100),
				Requested: amount,
			}
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/accounts/001/withdraw", bytes.NewBufferString(`{"amount":"150"}`))
	req = setChiURLParam(req, "id", "001")
	rec := httptest.NewRecorder()

	handler.Withdraw(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}

	var resp dto.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Message != "insufficient funds. Available balance is 100" {
		t.Fatalf("unexpected error message: %q", resp.Message)
	}
}

func TestAccountHandler_CalculateInterest(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		interestFn: func(ctx context.Context, id string) (domain.InterestResult, error) {
			return domain.InterestResult{
				Interest:   decimal.NewFromInt(50),
				NewBalance: decimal.NewFromInt(1050),
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/accounts/001/interest", nil)
	req = setChiURLParam(req, "id", "001")
	rec := httptest.NewRecorder()

	handler.CalculateInterest(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.InterestResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Interest != "50" || resp.Balance != "1050" {
		t.Fatalf("unexpected interest response: %+v", resp)
	}
}

func TestAccountHandler_CalculateInterest_Checking(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		interestFn: func(ctx context.Context, id string) (domain.InterestResult, error) {
			return domain.InterestResult{}, domain.ErrInterestNotSupported
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/accounts/001/interest", nil)
	req = setChiURLParam(req, "id", "001")
	rec := httptest.NewRecorder()

	handler.CalculateInterest(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func setChiURLParam(r *http.Request, key, value string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, &chi.Context{
		URLParams: chi.RouteParams{
			Keys:   []string{key},
			Values: []string{value},
		},
	}))
}

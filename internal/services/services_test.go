package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"rockie-classroom-api/internal/auth"
	"rockie-classroom-api/internal/models"
	"rockie-classroom-api/internal/repositories"
	"rockie-classroom-api/internal/repositories/memory"
)

func seedStudent(t *testing.T, students *memory.StudentStore) *models.Student {
	t.Helper()
	student := &models.Student{
		TenantID:     "t1",
		StudentID:    "s1",
		StudentEmail: "ana@example.edu",
		PasswordHash: models.HashPassword("secret"),
	}
	if err := students.Put(context.Background(), student); err != nil {
		t.Fatal(err)
	}
	return student
}

func TestAuthService_Login(t *testing.T) {
	students := memory.NewStudentStore("dev_t_students")
	tokens := memory.NewTokenStore("dev_t_access_tokens")
	seedStudent(t, students)

	service := NewAuthService(students, tokens, time.Hour, nil)

	resp, err := service.Login(context.Background(), &LoginRequest{
		TenantID:     "t1",
		StudentEmail: "ana@example.edu",
		Password:     "secret",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("Expected an issued token")
	}

	// The issued token must be immediately valid and resolvable.
	stored, err := tokens.Get(context.Background(), resp.Token)
	if err != nil {
		t.Fatalf("Issued token not stored: %v", err)
	}
	if stored.TenantID != "t1" || stored.StudentID != "s1" {
		t.Errorf("Token identity mismatch: %+v", stored)
	}
	if stored.IsExpired(time.Now()) {
		t.Error("Freshly issued token must not be expired")
	}
}

func TestAuthService_LoginFailures(t *testing.T) {
	tests := []struct {
		name    string
		req     *LoginRequest
		wantErr error
	}{
		{
			name: "unknown email",
			req: &LoginRequest{
				TenantID:     "t1",
				StudentEmail: "nobody@example.edu",
				Password:     "secret",
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name: "wrong password",
			req: &LoginRequest{
				TenantID:     "t1",
				StudentEmail: "ana@example.edu",
				Password:     "wrong",
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name: "wrong tenant",
			req: &LoginRequest{
				TenantID:     "t2",
				StudentEmail: "ana@example.edu",
				Password:     "secret",
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name: "missing fields",
			req: &LoginRequest{
				TenantID: "t1",
			},
			wantErr: repositories.ErrValidation,
		},
	}

	students := memory.NewStudentStore("dev_t_students")
	tokens := memory.NewTokenStore("dev_t_access_tokens")
	seedStudent(t, students)
	service := NewAuthService(students, tokens, time.Hour, nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Login(context.Background(), tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

type purchaseFixture struct {
	purchasables *memory.RecordStore
	rockies      *memory.RecordStore
	transactions *memory.TransactionStore
	service      PurchaseService
}

func newPurchaseFixture(t *testing.T, stock, coins int64) *purchaseFixture {
	t.Helper()

	f := &purchaseFixture{
		purchasables: memory.NewRecordStore("dev_t_purchasables"),
		rockies:      memory.NewRecordStore("dev_t_rockies"),
		transactions: memory.NewTransactionStore("dev_t_transactions"),
	}
	f.service = NewPurchaseService(f.purchasables, f.rockies, f.transactions, nil)

	item := &models.Record{
		TenantID:   "t1",
		EntityID:   "item-1",
		EntityType: models.EntityTypePurchasable,
		Payload: map[string]interface{}{
			"name":  "Wizard Hat",
			"price": int64(25),
			"stock": stock,
		},
	}
	if err := f.purchasables.Put(context.Background(), item); err != nil {
		t.Fatal(err)
	}

	rockie := (&models.CreateRockieRequest{}).NewRockieRecord("t1", "s1")
	rockie.Payload["coins"] = coins
	if err := f.rockies.Put(context.Background(), rockie); err != nil {
		t.Fatal(err)
	}

	return f
}

func TestPurchaseService_Buy(t *testing.T) {
	f := newPurchaseFixture(t, 3, 100)
	identity := auth.Identity{TenantID: "t1", SubjectID: "s1"}

	tx, err := f.service.Buy(context.Background(), identity, &models.BuyItemRequest{ItemID: "item-1"})
	if err != nil {
		t.Fatalf("Buy failed: %v", err)
	}
	if tx.ItemID != "item-1" || tx.Amount != 25 {
		t.Errorf("Unexpected transaction: %+v", tx)
	}

	item, _ := f.purchasables.Get(context.Background(), "t1", "item-1")
	if item.Payload["stock"] != int64(2) {
		t.Errorf("Expected stock 2, got %v", item.Payload["stock"])
	}

	rockie, _ := f.rockies.Get(context.Background(), "t1", "s1")
	if rockie.Payload["coins"] != int64(75) {
		t.Errorf("Expected 75 coins, got %v", rockie.Payload["coins"])
	}

	if got := len(f.transactions.Transactions()); got != 1 {
		t.Errorf("Expected 1 recorded transaction, got %d", got)
	}
}

func TestPurchaseService_OutOfStock(t *testing.T) {
	f := newPurchaseFixture(t, 0, 100)
	identity := auth.Identity{TenantID: "t1", SubjectID: "s1"}

	_, err := f.service.Buy(context.Background(), identity, &models.BuyItemRequest{ItemID: "item-1"})
	if !errors.Is(err, ErrOutOfStock) {
		t.Errorf("Expected ErrOutOfStock, got %v", err)
	}

	// Nothing may change on a refused purchase.
	rockie, _ := f.rockies.Get(context.Background(), "t1", "s1")
	if rockie.Payload["coins"] != int64(100) {
		t.Errorf("Coins must be untouched, got %v", rockie.Payload["coins"])
	}
	if got := len(f.transactions.Transactions()); got != 0 {
		t.Errorf("Expected no transactions, got %d", got)
	}
}

func TestPurchaseService_InsufficientFunds(t *testing.T) {
	f := newPurchaseFixture(t, 3, 10)
	identity := auth.Identity{TenantID: "t1", SubjectID: "s1"}

	_, err := f.service.Buy(context.Background(), identity, &models.BuyItemRequest{ItemID: "item-1"})
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("Expected ErrInsufficientFunds, got %v", err)
	}

	item, _ := f.purchasables.Get(context.Background(), "t1", "item-1")
	if item.Payload["stock"] != int64(3) {
		t.Errorf("Stock must be untouched, got %v", item.Payload["stock"])
	}
}

func TestPurchaseService_UnknownItem(t *testing.T) {
	f := newPurchaseFixture(t, 3, 100)
	identity := auth.Identity{TenantID: "t1", SubjectID: "s1"}

	_, err := f.service.Buy(context.Background(), identity, &models.BuyItemRequest{ItemID: "item-missing"})
	if !repositories.IsNotFound(err) {
		t.Errorf("Expected not found, got %v", err)
	}
}

func TestPurchaseService_BuyerWithoutRockie(t *testing.T) {
	f := newPurchaseFixture(t, 3, 100)
	identity := auth.Identity{TenantID: "t1", SubjectID: "s2"}

	_, err := f.service.Buy(context.Background(), identity, &models.BuyItemRequest{ItemID: "item-1"})
	if !repositories.IsNotFound(err) {
		t.Errorf("Expected not found, got %v", err)
	}
}

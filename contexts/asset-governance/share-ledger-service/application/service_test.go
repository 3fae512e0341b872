package application

import (
	"context"
	"testing"

	"fungify/contexts/asset-governance/share-ledger-service/adapters/memory"
	domainerrors "fungify/contexts/asset-governance/share-ledger-service/domain/errors"
)

func newService(store *memory.Store) Service {
	return Service{
		Ledger:          store,
		Outbox:          store,
		Clock:           store,
		IDGen:           store,
		TotalSupply:     1000,
		RegistrationFee: 1000,
		DeployerID:      "deployer",
	}
}

func TestSeedInitialAllocationRunsOnce(t *testing.T) {
	store := memory.NewStore()
	service := newService(store)

	if err := service.SeedInitialAllocation(context.Background()); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if err := service.SeedInitialAllocation(context.Background()); err != nil {
		t.Fatalf("second seed failed: %v", err)
	}
	balance, err := service.BalanceOf(context.Background(), "deployer")
	if err != nil {
		t.Fatalf("balance lookup failed: %v", err)
	}
	if balance != 1000 {
		t.Fatalf("expected deployer to hold the full supply, got %d", balance)
	}
}

func TestRegisterRequiresExactDeposit(t *testing.T) {
	service := newService(memory.NewStore())

	if _, err := service.Register(context.Background(), "alice", 999); err != domainerrors.ErrInvalidDeposit {
		t.Fatalf("expected invalid deposit for underpayment, got %v", err)
	}
	if _, err := service.Register(context.Background(), "alice", 1001); err != domainerrors.ErrInvalidDeposit {
		t.Fatalf("expected invalid deposit for overpayment, got %v", err)
	}
	created, err := service.Register(context.Background(), "alice", 1000)
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if !created {
		t.Fatal("expected a fresh registration")
	}
}

func TestRegisterExistingAccountKeepsBalance(t *testing.T) {
	store := memory.NewStore()
	service := newService(store)

	if _, err := store.CreateAccount(context.Background(), "alice", 600); err != nil {
		t.Fatalf("seed account failed: %v", err)
	}
	created, err := service.Register(context.Background(), "alice", 1000)
	if err != nil {
		t.Fatalf("re-register failed: %v", err)
	}
	if created {
		t.Fatal("expected re-registration to be a no-op")
	}
	balance, err := service.BalanceOf(context.Background(), "alice")
	if err != nil {
		t.Fatalf("balance lookup failed: %v", err)
	}
	if balance != 600 {
		t.Fatalf("expected balance to survive re-registration, got %d", balance)
	}
}

func TestBalanceOfUnregisteredAccount(t *testing.T) {
	service := newService(memory.NewStore())
	if _, err := service.BalanceOf(context.Background(), "ghost"); err != domainerrors.ErrNotRegistered {
		t.Fatalf("expected not registered, got %v", err)
	}
}

func TestTransferMovesShares(t *testing.T) {
	store := memory.NewStore()
	service := newService(store)
	seedAccount(t, store, "alice", 600)
	seedAccount(t, store, "bob", 400)

	if err := service.Transfer(context.Background(), "alice", "bob", 100, ConfirmationDeposit); err != nil {
		t.Fatalf("transfer failed: %v", err)
	}
	assertBalance(t, service, "alice", 500)
	assertBalance(t, service, "bob", 500)
}

func TestTransferRequiresStrictlyGreaterBalance(t *testing.T) {
	store := memory.NewStore()
	service := newService(store)
	seedAccount(t, store, "alice", 600)
	seedAccount(t, store, "bob", 400)

	err := service.Transfer(context.Background(), "alice", "bob", 600, ConfirmationDeposit)
	if err != domainerrors.ErrInsufficientShares {
		t.Fatalf("expected insufficient shares when amount equals balance, got %v", err)
	}
	if err := service.Transfer(context.Background(), "alice", "bob", 599, ConfirmationDeposit); err != nil {
		t.Fatalf("transfer of balance-1 failed: %v", err)
	}
	assertBalance(t, service, "alice", 1)
}

func TestTransferRejectsSelf(t *testing.T) {
	store := memory.NewStore()
	service := newService(store)
	seedAccount(t, store, "alice", 600)

	err := service.Transfer(context.Background(), "alice", "alice", 100, ConfirmationDeposit)
	if err != domainerrors.ErrInvalidInput {
		t.Fatalf("expected self-transfer rejection, got %v", err)
	}
}

func TestTransferRequiresConfirmationDeposit(t *testing.T) {
	store := memory.NewStore()
	service := newService(store)
	seedAccount(t, store, "alice", 600)
	seedAccount(t, store, "bob", 400)

	err := service.Transfer(context.Background(), "alice", "bob", 100, 0)
	if err != domainerrors.ErrInvalidDeposit {
		t.Fatalf("expected invalid deposit, got %v", err)
	}
}

func TestTransferRequiresRegisteredReceiver(t *testing.T) {
	store := memory.NewStore()
	service := newService(store)
	seedAccount(t, store, "alice", 600)

	err := service.Transfer(context.Background(), "alice", "ghost", 100, ConfirmationDeposit)
	if err != domainerrors.ErrNotRegistered {
		t.Fatalf("expected not registered, got %v", err)
	}
}

func seedAccount(t *testing.T, store *memory.Store, accountID string, balance uint64) {
	t.Helper()
	if _, err := store.CreateAccount(context.Background(), accountID, balance); err != nil {
		t.Fatalf("seed %s failed: %v", accountID, err)
	}
}

func assertBalance(t *testing.T, service Service, accountID string, expected uint64) {
	t.Helper()
	balance, err := service.BalanceOf(context.Background(), accountID)
	if err != nil {
		t.Fatalf("balance lookup for %s failed: %v", accountID, err)
	}
	if balance != expected {
		t.Fatalf("expected %s to hold %d, got %d", accountID, expected, balance)
	}
}

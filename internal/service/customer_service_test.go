package service_test

import (
	"strings"
	"testing"

	"github.com/minicrm/campaign-backend/internal/model"
	"github.com/minicrm/campaign-backend/internal/service"
)

func TestBulkCreateCollectsValidationErrors(t *testing.T) {
	repo := &fakeCustomerRepo{}
	svc := service.NewCustomerService(repo)

	result, err := svc.BulkCreate([]model.Customer{
		{Name: "Alice", Email: "alice@x.com", AddedBy: "a@x.com"},
		{Name: "", Email: "noname@x.com", AddedBy: "a@x.com"},
		{Name: "NoEmail", Email: "", AddedBy: "a@x.com"},
		{Name: "Bob", Email: "bob@x.com", AddedBy: "a@x.com"},
	}, "")
	if err != nil {
		t.Fatal(err)
	}

	if result.Added != 2 {
		t.Errorf("expected 2 added, got %d", result.Added)
	}
	if len(result.Errors) != 2 {
		t.Errorf("expected 2 collected errors, got %d", len(result.Errors))
	}
	if result.Skipped != 0 {
		t.Errorf("expected 0 skipped, got %d", result.Skipped)
	}
}

func TestBulkCreateSkipsDuplicateUnderSameOwner(t *testing.T) {
	repo := &fakeCustomerRepo{}
	svc := service.NewCustomerService(repo)

	first, _ := svc.BulkCreate([]model.Customer{
		{Name: "Alice", Email: "alice@x.com", AddedBy: "a@x.com"},
	}, "")
	second, _ := svc.BulkCreate([]model.Customer{
		{Name: "Alice Again", Email: "ALICE@x.com", AddedBy: "a@x.com"},
	}, "")

	if first.Added != 1 || second.Added != 0 || second.Skipped != 1 {
		t.Errorf("expected one record and one skip, got added=%d/%d skipped=%d",
			first.Added, second.Added, second.Skipped)
	}
	if len(repo.customers) != 1 {
		t.Errorf("exactly one record should exist, found %d", len(repo.customers))
	}
}

func TestBulkCreateAllowsSameEmailForDifferentOwners(t *testing.T) {
	repo := &fakeCustomerRepo{}
	svc := service.NewCustomerService(repo)

	result, _ := svc.BulkCreate([]model.Customer{
		{Name: "Alice", Email: "alice@x.com", AddedBy: "a@x.com"},
		{Name: "Alice", Email: "alice@x.com", AddedBy: "b@x.com"},
	}, "")

	if result.Added != 2 {
		t.Errorf("same email under different owners should both land, got %d", result.Added)
	}
}

func TestBulkCreateTreatsStoreConflictAsSkip(t *testing.T) {
	// conflict past the Exists pre-check models the concurrent-create
	// race: the unique index wins and the item is a benign skip
	repo := &fakeCustomerRepo{conflict: true}
	svc := service.NewCustomerService(repo)

	result, err := svc.BulkCreate([]model.Customer{
		{Name: "Alice", Email: "alice@x.com", AddedBy: "a@x.com"},
	}, "")
	if err != nil {
		t.Fatal(err)
	}

	if result.Skipped != 1 || result.Added != 0 || len(result.Errors) != 0 {
		t.Errorf("conflict should be a skip: %+v", result)
	}
}

func TestBulkCreateUsesFallbackOwner(t *testing.T) {
	repo := &fakeCustomerRepo{}
	svc := service.NewCustomerService(repo)

	result, _ := svc.BulkCreate([]model.Customer{
		{Name: "Alice", Email: "alice@x.com"},
	}, "owner@x.com")

	if result.Added != 1 {
		t.Fatalf("expected 1 added, got %d", result.Added)
	}
	if repo.customers[0].AddedBy != "owner@x.com" {
		t.Errorf("expected fallback owner, got %q", repo.customers[0].AddedBy)
	}
}

func TestImportCSV(t *testing.T) {
	repo := &fakeCustomerRepo{}
	svc := service.NewCustomerService(repo)

	csvData := strings.Join([]string{
		"name,email,phone,total_spent,visits,last_active",
		"Alice,alice@x.com,+111,150.5,12,2024-01-15",
		"Bob,bob@x.com,,80,3,",
		",missingname@x.com,,0,0,",
		"Alice Dup,alice@x.com,,10,1,",
	}, "\n")

	result, err := svc.ImportCSV(strings.NewReader(csvData), "a@x.com")
	if err != nil {
		t.Fatal(err)
	}

	if result.Added != 2 {
		t.Errorf("expected 2 added, got %d", result.Added)
	}
	// one row missing a name, one duplicate email under the same owner
	if result.Skipped != 2 {
		t.Errorf("expected 2 skipped, got %d", result.Skipped)
	}

	if repo.customers[0].Spend != 150.5 || repo.customers[0].Visits != 12 {
		t.Errorf("numeric columns not parsed: %+v", repo.customers[0])
	}
	if repo.customers[0].LastActive == nil {
		t.Error("last_active not parsed")
	}
	if repo.customers[0].AddedBy != "a@x.com" {
		t.Errorf("owner not attached, got %q", repo.customers[0].AddedBy)
	}
}

func TestImportCSVEmptyFile(t *testing.T) {
	svc := service.NewCustomerService(&fakeCustomerRepo{})

	if _, err := svc.ImportCSV(strings.NewReader(""), "a@x.com"); err == nil {
		t.Fatal("expected an error for an empty file")
	}
}

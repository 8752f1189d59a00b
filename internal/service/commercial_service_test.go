package service

import (
	"context"
	"testing"

	"commerce/internal/apperror"
	"commerce/internal/repository"
)

func newCommercialService(t *testing.T) CommercialService {
	t.Helper()
	db := setupTestDB(t)
	return NewCommercialService(repository.NewCommercialRepository(db))
}

func TestCommercialCodeMustBeUnique(t *testing.T) {
	commerciaux := newCommercialService(t)
	ctx := context.Background()

	if _, err := commerciaux.Create(ctx, CommercialRequest{Code: "COM001", FullName: "Alice"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err := commerciaux.Create(ctx, CommercialRequest{Code: "COM001", FullName: "Bob"})
	ve, ok := apperror.AsValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if ve.Fields["code"] == "" {
		t.Fatalf("expected violation on code, got %v", ve.Fields)
	}
}

func TestCommercialCopyIncrementsCodeAndPhone(t *testing.T) {
	commerciaux := newCommercialService(t)
	ctx := context.Background()

	original, err := commerciaux.Create(ctx, CommercialRequest{Code: "COM009", FullName: "Alice", Phone: "0612345678"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	dup, err := commerciaux.Copy(ctx, original.ID)
	if err != nil {
		t.Fatalf("copy: %v", err)
	}
	if dup.Code != "COM010" {
		t.Errorf("code = %q, want COM010", dup.Code)
	}
	if dup.Phone != "0612345679" {
		t.Errorf("phone = %q, want 0612345679", dup.Phone)
	}
	if dup.FullName != "Alice (copy)" {
		t.Errorf("name = %q, want %q", dup.FullName, "Alice (copy)")
	}
}

// A copy of a copy keeps probing until it finds a free code.
func TestCommercialCopySkipsTakenCodes(t *testing.T) {
	commerciaux := newCommercialService(t)
	ctx := context.Background()

	first, err := commerciaux.Create(ctx, CommercialRequest{Code: "COM001", FullName: "Alice"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := commerciaux.Create(ctx, CommercialRequest{Code: "COM002", FullName: "Bob"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	dup, err := commerciaux.Copy(ctx, first.ID)
	if err != nil {
		t.Fatalf("copy: %v", err)
	}
	if dup.Code != "COM003" {
		t.Errorf("code = %q, want COM003", dup.Code)
	}
}

func TestIncrementTrailingDigits(t *testing.T) {
	cases := []struct{ in, want string }{
		{"COM009", "COM010"},
		{"COM099", "COM100"},
		{"0612345678", "0612345679"},
		{"ABC", "ABC1"},
		{"", "1"},
		{"X9", "X10"},
	}
	for _, c := range cases {
		if got := incrementTrailingDigits(c.in); got != c.want {
			t.Errorf("incrementTrailingDigits(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

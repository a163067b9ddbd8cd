package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
)

func TestMapWriteError(t *testing.T) {
	cases := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"exclusion", &pgconn.PgError{Code: "23P01", ConstraintName: "appointments_no_overlap"}, domain.ErrOverlapViolation},
		{"wrapped exclusion", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23P01", ConstraintName: "appointments_no_overlap"}), domain.ErrOverlapViolation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := mapWriteError(tc.in); !errors.Is(got, tc.want) || (tc.want == nil && got != nil) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}

	t.Run("other constraint stays as is", func(t *testing.T) {
		in := &pgconn.PgError{Code: "23P01", ConstraintName: "something_else"}
		if got := mapWriteError(in); errors.Is(got, domain.ErrOverlapViolation) {
			t.Fatalf("expected unrelated constraint to pass through")
		}
	})
}

func TestNotFound(t *testing.T) {
	if got := notFound(gorm.ErrRecordNotFound, domain.ErrClientNotFound); !errors.Is(got, domain.ErrNotFound) {
		t.Fatalf("expected not found kind, got %v", got)
	}
	boom := errors.New("connection reset")
	if got := notFound(boom, domain.ErrClientNotFound); got != boom {
		t.Fatalf("expected unexpected errors to pass through, got %v", got)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	if !isUniqueViolation(&pgconn.PgError{Code: "23505"}) {
		t.Fatalf("expected 23505 to be a unique violation")
	}
	if isUniqueViolation(errors.New("x")) {
		t.Fatalf("expected plain error not to be a unique violation")
	}
}

package implementation

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"studynotes-be/internal/repository/contract"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestTranslateError(t *testing.T) {
	plain := errors.New("syntax error")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "nil", err: nil, want: nil},
		{name: "duplicate email", err: &pgconn.PgError{Code: "23505", ConstraintName: "uq_users_email"}, want: contract.ErrDuplicateEmail},
		{name: "duplicate cwid", err: &pgconn.PgError{Code: "23505", ConstraintName: "users_pkey"}, want: contract.ErrDuplicateCWID},
		{name: "duplicate rating wrapped", err: fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "uq_ratings_rater_note"}), want: contract.ErrDuplicateRating},
		{name: "rating for deleted note", err: &pgconn.PgError{Code: "23503", ConstraintName: "fk_ratings_note"}, want: contract.ErrMissingReference},
		{name: "statement timeout", err: &pgconn.PgError{Code: "57014"}, want: contract.ErrStoreUnavailable},
		{name: "connection failure", err: &pgconn.PgError{Code: "08006"}, want: contract.ErrStoreUnavailable},
		{name: "deadline", err: fmt.Errorf("query: %w", context.DeadlineExceeded), want: contract.ErrStoreUnavailable},
		{name: "unrelated", err: plain, want: plain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateError(tt.err)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestTranslateError_UnknownConstraintPassesThrough(t *testing.T) {
	err := &pgconn.PgError{Code: "23505", ConstraintName: "some_other_index"}
	got := translateError(err)
	assert.Same(t, err, got)
}

package implementation

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"studynotes-be/internal/repository/contract"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

var constraintErrors = map[string]error{
	"users_pkey":            contract.ErrDuplicateCWID,
	"uq_users_email":        contract.ErrDuplicateEmail,
	"uq_ratings_rater_note": contract.ErrDuplicateRating,
}

// translateError maps driver failures onto the contract sentinels so services
// never inspect Postgres codes themselves.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == uniqueViolation {
			if mapped, ok := constraintErrors[pgErr.ConstraintName]; ok {
				return mapped
			}
		}
		if pgErr.Code == foreignKeyViolation {
			return fmt.Errorf("%w: %s", contract.ErrMissingReference, pgErr.ConstraintName)
		}
		// 08xxx connection exceptions, 57014 statement timeout, 57P01-03 shutdown
		if strings.HasPrefix(pgErr.Code, "08") || strings.HasPrefix(pgErr.Code, "57") {
			return unavailable(err)
		}
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, driver.ErrBadConn) || pgconn.Timeout(err) {
		return unavailable(err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return unavailable(err)
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return unavailable(err)
	}

	return err
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %v", contract.ErrStoreUnavailable, err)
}

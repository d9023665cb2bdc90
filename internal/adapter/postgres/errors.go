package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/nova-backend/internal/domain"
)

// MapError translates driver errors into domain sentinels, prefixed with the
// entity and the key it was addressed by (an id, a phone number). Context
// cancellation passes through untouched.
func MapError(err error, entity string, key any) error {
	if err == nil {
		return nil
	}
	wrap := func(target error) error {
		return fmt.Errorf("%s %v: %w", entity, key, target)
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return wrap(err)
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return wrap(domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if sentinel := classify(pgErr.Code); sentinel != nil {
			return fmt.Errorf("%s %v: %w: %s", entity, key, sentinel, pgErr.Message)
		}
		return wrap(err)
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return fmt.Errorf("%s %v: %w: %w", entity, key, domain.ErrUnavailable, err)
	}

	return wrap(err)
}

func classify(code string) error {
	switch code {
	case "23505", "40001", "40P01": // unique_violation, serialization_failure, deadlock_detected
		return domain.ErrConflict
	case "23503": // foreign_key_violation
		return domain.ErrNotFound
	case "23514", "22P02", "22003": // check_violation, invalid_text_representation, numeric_value_out_of_range
		return domain.ErrValidation
	case "53300", "57P01", "57P03": // too_many_connections, admin_shutdown, cannot_connect_now
		return domain.ErrUnavailable
	}
	if len(code) == 5 && code[:2] == "08" { // connection_exception class
		return domain.ErrUnavailable
	}
	return nil
}

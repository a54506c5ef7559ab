package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeInvalidText         = "22P02"
)

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, opTimeout)
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool {
	return pgCode(err) == codeUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	return pgCode(err) == codeForeignKeyViolation
}

// malformedID переводит ошибку приведения строки к uuid в ErrMalformedID.
// Остальные ошибки оборачиваются описанием операции.
func malformedID(err error, op string) error {
	if pgCode(err) == codeInvalidText {
		return fmt.Errorf("%s: %w: %v", op, domain.ErrMalformedID, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

package storage

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	ErrDuplicateKey        = errors.New("duplicate key violation")
	ErrForeignKeyViolation = errors.New("foreign key violation")
	ErrInvalidIdentifier   = errors.New("invalid identifier")
)

func handlePQError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%w: %s", ErrDuplicateKey, pqErr.Message)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%w: %s", ErrForeignKeyViolation, pqErr.Message)
		case "22P02": // invalid_text_representation, e.g. a malformed uuid
			return fmt.Errorf("%w: %s", ErrInvalidIdentifier, pqErr.Message)
		}
	}
	return err
}

package order

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ValidationError reports a bad input detected before any store mutation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Reason)
}

// ReferentialError reports a foreign key violation raised by the store at
// commit time. The surrounding transaction has been rolled back.
type ReferentialError struct {
	Ref string
	Err error
}

func (e *ReferentialError) Error() string {
	return fmt.Sprintf("referential integrity violated: %s: %v", e.Ref, e.Err)
}

func (e *ReferentialError) Unwrap() error { return e.Err }

// TransactionError reports any other failure during the atomic write. The
// prior state is intact and the caller may retry.
type TransactionError struct {
	Op  string
	Err error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("transaction failed: %s: %v", e.Op, e.Err)
}

func (e *TransactionError) Unwrap() error { return e.Err }

// wrapStoreErr classifies a transaction failure into the service error
// taxonomy. ValidationError and record-not-found pass through untouched.
func wrapStoreErr(op, ref string, err error) error {
	if err == nil {
		return nil
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return &ReferentialError{Ref: ref, Err: err}
	}
	return &TransactionError{Op: op, Err: err}
}

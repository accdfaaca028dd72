package repository

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// classifyPQ tags constraint violations reported by Postgres with the
// matching repository sentinel. Other errors are returned unchanged.
func classifyPQ(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch pqErr.Code.Name() {
	case "unique_violation":
		return fmt.Errorf("%w: %s", ErrConflict, pqErr.Message)
	case "not_null_violation", "foreign_key_violation", "check_violation":
		return fmt.Errorf("%w: %s", ErrConstraint, pqErr.Message)
	}
	return err
}

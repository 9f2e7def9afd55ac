package database

import (
	"errors"

	"github.com/lib/pq"
)

// IsUniqueViolation reports whether the error is a Postgres unique
// constraint violation.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// IsMissingRelation reports whether the error means the schema has not been
// migrated yet: an undefined table or an undefined column.
func IsMissingRelation(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}

	return pqErr.Code == "42P01" || pqErr.Code == "42703"
}

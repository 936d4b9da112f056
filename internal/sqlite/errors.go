package sqlite

import "strings"

// modernc.org/sqlite surfaces constraint failures as flat error strings, so
// classification is by message. The repository maps these to its sentinels:
// unique violations to ErrDuplicate, foreign-key violations (an allocation
// pointing at a missing resource) to ErrNotFound.

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

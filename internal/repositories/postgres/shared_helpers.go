package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/schoolsync/student-service/internal/repositories"
)

// getDB returns the transaction handle when one is supplied, otherwise the
// pooled connection.
func getDB(db, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return db
}

// translateError maps GORM errors onto the repository sentinels. The driver
// is opened with TranslateError so unique violations arrive as
// gorm.ErrDuplicatedKey.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repositories.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return repositories.ErrDuplicateKey
	}
	return err
}

// applySort appends an ORDER BY from whitelisted column names.
func applySort(query *gorm.DB, sortBy, sortOrder string, allowed map[string]string) *gorm.DB {
	column, ok := allowed[sortBy]
	if !ok {
		column = allowed["created_at"]
	}
	direction := "DESC"
	if sortOrder == "asc" {
		direction = "ASC"
	}
	return query.Order(column + " " + direction)
}

// applyPagination applies limit/offset with a sane default page size.
func applyPagination(query *gorm.DB, limit, offset int) *gorm.DB {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return query.Limit(limit).Offset(offset)
}

// Package store persists tenant-scoped entities. Every query is filtered by
// the organisation id taken from the caller's verified credential, and a row
// that exists in another organisation is reported exactly like a missing one.
package store

import (
	"context"
	"log/slog"

	"github.com/hugh/orgroster/internal/apperr"
	"github.com/hugh/orgroster/internal/database"
	"gorm.io/gorm"
)

// scoped implements the lookups shared by employees and teams.
type scoped[T any] struct {
	db       *gorm.DB
	logger   *slog.Logger
	entity   string
	notFound *apperr.Error
}

func (s *scoped[T]) get(ctx context.Context, orgID, id uint) (*T, error) {
	var row T
	err := s.db.WithContext(ctx).
		Where("id = ? AND organisation_id = ?", id, orgID).
		First(&row).Error
	if err != nil {
		if database.IsNotFound(err) {
			return nil, s.notFound
		}
		return nil, s.internal(ctx, "get", err, orgID, id)
	}
	return &row, nil
}

func (s *scoped[T]) list(ctx context.Context, orgID uint) ([]T, error) {
	rows := []T{}
	if err := s.db.WithContext(ctx).
		Where("organisation_id = ?", orgID).
		Order("id").
		Find(&rows).Error; err != nil {
		return nil, s.internal(ctx, "list", err, orgID, 0)
	}
	return rows, nil
}

// delete removes the row; assignment rows referencing it are removed by the
// foreign key cascade.
func (s *scoped[T]) delete(ctx context.Context, orgID, id uint) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND organisation_id = ?", id, orgID).
		Delete(new(T))
	if result.Error != nil {
		return s.internal(ctx, "delete", result.Error, orgID, id)
	}
	if result.RowsAffected == 0 {
		return s.notFound
	}
	s.logger.InfoContext(ctx, "deleted "+s.entity, "organisation_id", orgID, "id", id)
	return nil
}

// exists reports whether a row matching the extra condition exists in orgID,
// ignoring excludeID when it is non-zero.
func (s *scoped[T]) exists(ctx context.Context, orgID, excludeID uint, query string, args ...interface{}) (bool, error) {
	q := s.db.WithContext(ctx).Model(new(T)).
		Where("organisation_id = ?", orgID).
		Where(query, args...)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *scoped[T]) internal(ctx context.Context, op string, err error, orgID, id uint) error {
	return logInternal(ctx, s.logger, s.entity+"."+op, err, orgID, id)
}

// logInternal records an unexpected storage failure and hides it behind a
// generic internal error.
func logInternal(ctx context.Context, logger *slog.Logger, op string, err error, orgID, id uint) error {
	logger.ErrorContext(ctx, "storage failure",
		"op", op,
		"organisation_id", orgID,
		"id", id,
		"error", err,
	)
	return apperr.Internal(op, err)
}

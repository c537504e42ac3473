// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"basecamp/internal/domain/entity"
)

// TutorSettingRepository reads tutor settings from the remote data store.
type TutorSettingRepository interface {
	// FindAll returns every row of the table in the source's default order.
	// An empty table yields an empty, non-nil slice.
	FindAll(ctx context.Context) ([]*entity.TutorSetting, error)
}

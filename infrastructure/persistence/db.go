// Package persistence provides database storage implementations.
package persistence

import (
	"fmt"

	"github.com/newsroomhq/newstag/internal/database"
)

// AutoMigrate runs GORM auto migration for all models.
func AutoMigrate(db database.Database) error {
	if err := db.GORM().AutoMigrate(
		&ArticleModel{},
		&TagModel{},
		&QueueItemModel{},
		&RecordModel{},
		&AssignmentModel{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

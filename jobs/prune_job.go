package jobs

import (
	"log"

	"gorm.io/gorm"

	"github.com/tutorpress/tutorpress-api/database"
	"github.com/tutorpress/tutorpress-api/models"
	"github.com/tutorpress/tutorpress-api/utils"
)

// PruneBundleCourseLinks removes linked-course IDs that no longer resolve
// to a course post. Courses deleted outside this API leave stale entries
// behind; the read path already skips them, this keeps the stored lists
// clean.
func PruneBundleCourseLinks() {
	if err := pruneBundleCourseLinks(database.DB); err != nil {
		log.Printf("🔥 Bundle course-link pruning failed: %v", err)
	}
}

func pruneBundleCourseLinks(db *gorm.DB) error {
	var rows []models.PostMeta
	if err := db.Where("meta_key = ?", models.MetaBundleCourseIDs).Find(&rows).Error; err != nil {
		return err
	}

	pruned := 0
	for _, row := range rows {
		ids := utils.ParseIDList(row.MetaValue)
		kept := ids[:0]
		for _, id := range ids {
			var count int64
			if err := db.Model(&models.Post{}).
				Where("id = ? AND post_type = ?", id, models.PostTypeCourse).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				kept = append(kept, id)
			}
		}

		joined := utils.JoinIDList(kept)
		if joined == row.MetaValue {
			continue
		}
		if err := database.UpdatePostMeta(db, row.PostID, models.MetaBundleCourseIDs, joined); err != nil {
			return err
		}
		pruned++
	}

	if pruned > 0 {
		log.Printf("✅ Pruned stale course links from %d bundle(s).", pruned)
	}
	return nil
}

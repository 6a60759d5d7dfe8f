package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tutorpress/tutorpress-api/models"
)

// GetPostMeta returns the stored value for (postID, key), or "" when no
// row exists. Missing meta is not an error; any other failure is.
func GetPostMeta(db *gorm.DB, postID uuid.UUID, key string) (string, error) {
	var meta models.PostMeta
	err := db.Where("post_id = ? AND meta_key = ?", postID, key).First(&meta).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return meta.MetaValue, nil
}

// UpdatePostMeta upserts the (postID, key) row.
func UpdatePostMeta(db *gorm.DB, postID uuid.UUID, key, value string) error {
	meta := models.PostMeta{PostID: postID, MetaKey: key, MetaValue: value}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "post_id"}, {Name: "meta_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"meta_value"}),
	}).Create(&meta).Error
}

func GetUserMeta(db *gorm.DB, userID uuid.UUID, key string) (string, error) {
	var meta models.UserMeta
	err := db.Where("user_id = ? AND meta_key = ?", userID, key).First(&meta).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return meta.MetaValue, nil
}

func UpdateUserMeta(db *gorm.DB, userID uuid.UUID, key, value string) error {
	meta := models.UserMeta{UserID: userID, MetaKey: key, MetaValue: value}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "meta_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"meta_value"}),
	}).Create(&meta).Error
}

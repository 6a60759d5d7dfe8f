package database

import (
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	config "github.com/tutorpress/tutorpress-api/configs"
	"github.com/tutorpress/tutorpress-api/models"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	dsn := config.Config("DATABASE_URL")

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:                              false,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}

	fmt.Println("✅ Database connected successfully")
}

func Migrate() {
	if err := MigrateWith(DB); err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}
	fmt.Println("✅ Database migration successful")
}

// MigrateWith runs the schema migration against an explicit handle so
// tests can migrate their own database.
func MigrateWith(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.UserMeta{},
		&models.Post{},
		&models.PostMeta{},
	)
}

func SeedAdmin() {
	adminEmail := config.Config("ADMIN_EMAIL")
	adminPassword := config.Config("ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		log.Println("Admin credentials not configured, skipping seed.")
		return
	}

	var count int64
	if err := DB.Model(&models.User{}).Where("email = ?", adminEmail).Count(&count).Error; err != nil {
		log.Fatalf("🔥 Failed to check for admin user: %v", err)
	}
	if count > 0 {
		log.Println("Admin user already exists.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("🔥 Failed to hash admin password: %v", err)
	}

	adminUser := models.User{
		DisplayName: config.Config("ADMIN_FULL_NAME"),
		Email:       adminEmail,
		UserLogin:   adminEmail,
		Password:    string(hashedPassword),
		Role:        models.RoleAdmin,
	}

	if err := DB.Create(&adminUser).Error; err != nil {
		log.Fatalf("🔥 Failed to seed admin user: %v", err)
	}

	log.Println("✅ Admin user seeded successfully")
}

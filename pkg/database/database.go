package database

import (
	"exam_prep_backend/internal/config"
	"exam_prep_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Question{},
		&model.MockTest{},
		&model.MockTestQuestion{},
		&model.TestAttempt{},
		&model.Badge{},
		&model.UserBadge{},
		&model.Bookmark{},
		&model.ChatSession{},
		&model.ChatMessage{},
		&model.IngestJob{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	seedBadgeCatalog(db)

	return db, nil
}

// seedBadgeCatalog inserts the default badges if the catalog is empty. The
// codes here are what BadgeService evaluates against after submissions.
func seedBadgeCatalog(db *gorm.DB) {
	var count int64
	db.Model(&model.Badge{}).Count(&count)
	if count > 0 {
		return
	}

	defaults := []model.Badge{
		{Code: "first_test", Name: "First Step", Description: "Complete your first mock test", Icon: "🎯", RewardXP: 20},
		{Code: "correct_10", Name: "Warming Up", Description: "Answer 10 questions correctly", Icon: "🔥", RewardXP: 10},
		{Code: "correct_50", Name: "On a Roll", Description: "Answer 50 questions correctly", Icon: "⚡", RewardXP: 30},
		{Code: "correct_100", Name: "Century", Description: "Answer 100 questions correctly", Icon: "💯", RewardXP: 50},
		{Code: "sharp_shooter", Name: "Sharp Shooter", Description: "Score 90% or more in a mock test", Icon: "🏹", RewardXP: 40},
		{Code: "streak_7", Name: "Week Warrior", Description: "Practice 7 days in a row", Icon: "📅", RewardXP: 50},
	}
	for _, b := range defaults {
		db.Create(&b)
	}
}

package model

import (
	"time"
)

type UserRole string

const (
	Student UserRole = "student"
	Admin   UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Name           string    `gorm:"size:100;not null" json:"name"`
	Email          string    `gorm:"size:100;unique;not null" json:"email"`
	Password       string    `gorm:"size:100;not null" json:"-"`
	Role           UserRole  `gorm:"type:enum('student','admin');default:'student'" json:"role"`
	XP             int       `gorm:"default:0" json:"xp"` // lifetime XP, feeds leaderboard
	DailyStreak    int       `gorm:"default:0" json:"dailyStreak"`
	TargetExam     string    `gorm:"size:50" json:"targetExam"` // SSC, Banking, Railways, UPSC...
	Avatar         string    `gorm:"size:255" json:"avatar"`
	Disabled       bool      `gorm:"default:false" json:"disabled"`
	LastPracticeAt time.Time `json:"lastPracticeAt"`
	LastLogin      time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
	LastSeen       time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}

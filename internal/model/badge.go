package model

import "time"

// Badge is a catalog entry; the catalog is seeded at migration time.
type Badge struct {
	BaseModel
	Code        string `gorm:"size:50;unique;not null" json:"code"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`
	Icon        string `gorm:"size:255" json:"icon"`
	RewardXP    int    `gorm:"default:0" json:"rewardXp"`
}

func (Badge) TableName() string {
	return "badges"
}

// UserBadge is one award of a badge to a user.
type UserBadge struct {
	BaseModel
	UserID    uint      `gorm:"index:idx_user_badge,unique;type:bigint unsigned" json:"userId"`
	BadgeID   uint      `gorm:"index:idx_user_badge,unique;type:bigint unsigned" json:"badgeId"`
	Badge     *Badge    `gorm:"foreignKey:BadgeID" json:"badge,omitempty"`
	AttemptID string    `gorm:"size:36" json:"attemptId"` // attempt that triggered the award
	EarnedAt  time.Time `json:"earnedAt"`
}

func (UserBadge) TableName() string {
	return "user_badges"
}

package domain

import (
	"math"
	"time"

	"github.com/lib/pq"
)

type Region struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

type FoodCategory struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

// Store rows are read joined with their region and category names.
type Store struct {
	ID           int64     `db:"id"`
	Name         string    `db:"name"`
	Address      string    `db:"address"`
	CategoryID   *int64    `db:"category_id"`
	CategoryName *string   `db:"category_name"`
	RegionID     int64     `db:"region_id"`
	RegionName   string    `db:"region_name"`
	Contact      *string   `db:"contact"`
	Description  *string   `db:"description"`
	OpeningHours *string   `db:"opening_hours"`
	Score        float64   `db:"score"`
	ReviewCount  int       `db:"review_count"`
	CreatedAt    time.Time `db:"created_at"`
}

type NewStore struct {
	Name         string
	Address      string
	CategoryID   *int64
	RegionID     int64
	Contact      *string
	Description  *string
	OpeningHours *string
}

type Review struct {
	ID        int64          `db:"id"`
	Content   string         `db:"content"`
	Score     float64        `db:"score"`
	ImageURLs pq.StringArray `db:"image_urls"`
	StoreID   int64          `db:"store_id"`
	StoreName string         `db:"store_name"`
	UserID    int64          `db:"user_id"`
	UserName  string         `db:"user_name"`
	CreatedAt time.Time      `db:"created_at"`
}

type NewReview struct {
	StoreID   int64
	UserID    int64
	Content   string
	Score     float64
	ImageURLs []string
}

const (
	// DefaultMissionReward is stored when a mission is created without a reward.
	DefaultMissionReward = 0
	// MaxMissionReward is the largest reward the INT column holds.
	MaxMissionReward = math.MaxInt32
	// DefaultMissionDuration is added to the creation time when no deadline is given.
	DefaultMissionDuration = 7 * 24 * time.Hour
)

type Mission struct {
	ID        int64     `db:"id"`
	Title     string    `db:"title"`
	Content   string    `db:"content"`
	Reward    int       `db:"reward"`
	Deadline  time.Time `db:"deadline"`
	StoreID   int64     `db:"store_id"`
	StoreName string    `db:"store_name"`
	CreatedAt time.Time `db:"created_at"`
}

type NewMission struct {
	StoreID  int64
	Title    string
	Content  string
	Reward   *int
	Deadline *time.Time
}

// WithDefaults fills reward and deadline relative to now.
func (m NewMission) WithDefaults(now time.Time) NewMission {
	if m.Reward == nil {
		reward := DefaultMissionReward
		m.Reward = &reward
	}

	if m.Deadline == nil {
		deadline := now.Add(DefaultMissionDuration)
		m.Deadline = &deadline
	}

	return m
}

type User struct {
	ID            int64     `db:"id"`
	Email         string    `db:"email"`
	Name          string    `db:"name"`
	Gender        string    `db:"gender"`
	Birth         time.Time `db:"birth"`
	Address       string    `db:"address"`
	DetailAddress string    `db:"detail_address"`
	PhoneNumber   string    `db:"phone_number"`
	CreatedAt     time.Time `db:"created_at"`
}

type NewUser struct {
	Email         string
	Name          string
	Gender        string
	Birth         time.Time
	Address       string
	DetailAddress string
	PhoneNumber   string
	Preferences   []int64
}

// Preference is a user's link to a food category.
type Preference struct {
	FoodCategoryID int64  `db:"food_category_id"`
	Name           string `db:"name"`
}

type UserWithPreferences struct {
	User
	Preferences []Preference
}

// Principal is the caller on whose behalf a service operation runs.
type Principal struct {
	UserID int64
}

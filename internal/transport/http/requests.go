package http

import (
	"time"

	"github.com/gumwoo/umc-pr/internal/domain"
	"github.com/gumwoo/umc-pr/internal/validation"
)

type storeBody struct {
	Name         string  `json:"name" validate:"notblank,max=100"`
	Address      string  `json:"address" validate:"max=255"`
	CategoryID   *int64  `json:"categoryId" validate:"omitempty,gt=0"`
	Contact      *string `json:"contact" validate:"omitempty,max=50"`
	Description  *string `json:"description"`
	OpeningHours *string `json:"openingHours" validate:"omitempty,max=100"`
}

func (b storeBody) toDomain(regionID int64) domain.NewStore {
	return domain.NewStore{
		Name:         b.Name,
		Address:      b.Address,
		CategoryID:   b.CategoryID,
		RegionID:     regionID,
		Contact:      b.Contact,
		Description:  b.Description,
		OpeningHours: b.OpeningHours,
	}
}

// createStoreRequest is the body of POST /api/stores, which names the region itself.
type createStoreRequest struct {
	storeBody
	RegionID int64 `json:"regionId" validate:"required,gt=0"`
}

type reviewBody struct {
	Content   string   `json:"content" validate:"max=2000"`
	Score     *float64 `json:"score" validate:"required,gte=0,lte=5"`
	ImageURL  string   `json:"imageUrl" validate:"omitempty,url"`
	ImageURLs []string `json:"imageUrls" validate:"omitempty,max=10,dive,url"`
}

// toDomain accepts both the single imageUrl field and the imageUrls list.
func (b reviewBody) toDomain(storeID int64) domain.NewReview {
	urls := make([]string, 0, len(b.ImageURLs)+1)
	if b.ImageURL != "" {
		urls = append(urls, b.ImageURL)
	}

	urls = append(urls, b.ImageURLs...)

	return domain.NewReview{
		StoreID:   storeID,
		Content:   b.Content,
		Score:     *b.Score,
		ImageURLs: urls,
	}
}

type createReviewRequest struct {
	reviewBody
	StoreID int64 `json:"storeId" validate:"required,gt=0"`
}

type missionBody struct {
	Title    string     `json:"title" validate:"notblank,max=100"`
	Content  string     `json:"content"`
	Reward   *int       `json:"reward" validate:"omitempty,gte=0,lte=2147483647"`
	Deadline *time.Time `json:"deadline"`
}

func (b missionBody) toDomain(storeID int64) domain.NewMission {
	return domain.NewMission{
		StoreID:  storeID,
		Title:    b.Title,
		Content:  b.Content,
		Reward:   b.Reward,
		Deadline: b.Deadline,
	}
}

type createMissionRequest struct {
	missionBody
	StoreID int64 `json:"storeId" validate:"required,gt=0"`
}

type signUpRequest struct {
	Email         string  `json:"email" validate:"required,email,max=255"`
	Name          string  `json:"name" validate:"notblank,max=50"`
	Gender        string  `json:"gender" validate:"notblank,max=15"`
	Birth         string  `json:"birth" validate:"required,date"`
	Address       string  `json:"address" validate:"max=255"`
	DetailAddress string  `json:"detailAddress" validate:"max=255"`
	PhoneNumber   string  `json:"phoneNumber" validate:"required,phone"`
	Preferences   []int64 `json:"preferences" validate:"omitempty,dive,gt=0"`
}

// toDomain expects the request to be validated, so birth parses.
func (r signUpRequest) toDomain() domain.NewUser {
	birth, _ := time.Parse(validation.DateLayout, r.Birth)

	return domain.NewUser{
		Email:         r.Email,
		Name:          r.Name,
		Gender:        r.Gender,
		Birth:         birth,
		Address:       r.Address,
		DetailAddress: r.DetailAddress,
		PhoneNumber:   r.PhoneNumber,
		Preferences:   r.Preferences,
	}
}

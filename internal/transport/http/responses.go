package http

import (
	"time"

	"github.com/gumwoo/umc-pr/internal/domain"
	"github.com/gumwoo/umc-pr/internal/validation"
)

type ref struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type regionResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func toRegionResponse(r domain.Region) regionResponse {
	return regionResponse{ID: r.ID, Name: r.Name}
}

type storeResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	Region       ref       `json:"region"`
	Category     *ref      `json:"category"`
	Contact      *string   `json:"contact"`
	Description  *string   `json:"description"`
	OpeningHours *string   `json:"openingHours"`
	Score        float64   `json:"score"`
	ReviewCount  int       `json:"reviewCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

func toStoreResponse(s domain.Store) storeResponse {
	resp := storeResponse{
		ID:           s.ID,
		Name:         s.Name,
		Address:      s.Address,
		Region:       ref{ID: s.RegionID, Name: s.RegionName},
		Contact:      s.Contact,
		Description:  s.Description,
		OpeningHours: s.OpeningHours,
		Score:        s.Score,
		ReviewCount:  s.ReviewCount,
		CreatedAt:    s.CreatedAt,
	}

	if s.CategoryID != nil {
		category := ref{ID: *s.CategoryID}
		if s.CategoryName != nil {
			category.Name = *s.CategoryName
		}

		resp.Category = &category
	}

	return resp
}

type reviewResponse struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	Score     float64   `json:"score"`
	ImageURLs []string  `json:"imageUrls"`
	Store     ref       `json:"store"`
	User      ref       `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
}

func toReviewResponse(r domain.Review) reviewResponse {
	urls := []string(r.ImageURLs)
	if urls == nil {
		urls = []string{}
	}

	return reviewResponse{
		ID:        r.ID,
		Content:   r.Content,
		Score:     r.Score,
		ImageURLs: urls,
		Store:     ref{ID: r.StoreID, Name: r.StoreName},
		User:      ref{ID: r.UserID, Name: r.UserName},
		CreatedAt: r.CreatedAt,
	}
}

type missionResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Reward    int       `json:"reward"`
	Deadline  time.Time `json:"deadline"`
	Store     ref       `json:"store"`
	CreatedAt time.Time `json:"createdAt"`
}

func toMissionResponse(m domain.Mission) missionResponse {
	return missionResponse{
		ID:        m.ID,
		Title:     m.Title,
		Content:   m.Content,
		Reward:    m.Reward,
		Deadline:  m.Deadline,
		Store:     ref{ID: m.StoreID, Name: m.StoreName},
		CreatedAt: m.CreatedAt,
	}
}

type challengeMission struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Reward int    `json:"reward"`
	Store  ref    `json:"store"`
}

type challengeResponse struct {
	ID      int64                  `json:"id"`
	Status  domain.ChallengeStatus `json:"status"`
	StartAt time.Time              `json:"startAt"`
	EndAt   *time.Time             `json:"endAt"`
	Mission challengeMission       `json:"mission"`
	User    ref                    `json:"user"`
}

func toChallengeResponse(c domain.MissionChallenge) challengeResponse {
	return challengeResponse{
		ID:      c.ID,
		Status:  c.Status,
		StartAt: c.StartAt,
		EndAt:   c.EndAt,
		Mission: challengeMission{
			ID:     c.MissionID,
			Title:  c.MissionTitle,
			Reward: c.MissionReward,
			Store:  ref{ID: c.StoreID, Name: c.StoreName},
		},
		User: ref{ID: c.UserID, Name: c.UserName},
	}
}

type userResponse struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Gender        string    `json:"gender"`
	Birth         string    `json:"birth"`
	Address       string    `json:"address"`
	DetailAddress string    `json:"detailAddress"`
	PhoneNumber   string    `json:"phoneNumber"`
	Preferences   []ref     `json:"preferences"`
	CreatedAt     time.Time `json:"createdAt"`
}

func toUserResponse(u domain.UserWithPreferences) userResponse {
	prefs := make([]ref, len(u.Preferences))
	for i, p := range u.Preferences {
		prefs[i] = ref{ID: p.FoodCategoryID, Name: p.Name}
	}

	return userResponse{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		Gender:        u.Gender,
		Birth:         u.Birth.Format(validation.DateLayout),
		Address:       u.Address,
		DetailAddress: u.DetailAddress,
		PhoneNumber:   u.PhoneNumber,
		Preferences:   prefs,
		CreatedAt:     u.CreatedAt,
	}
}

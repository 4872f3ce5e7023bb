package models

import (
	"time"

	"github.com/google/uuid"
)

type RoomType string

const (
	RoomTypeBanyo   RoomType = "banyo"
	RoomTypeMutfak  RoomType = "mutfak"
	RoomTypeTuvalet RoomType = "tuvalet"
	RoomTypeLavabo  RoomType = "lavabo"
)

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type PlacedProduct struct {
	ProductID int64    `json:"productId"`
	Position  Position `json:"position"`
	Rotation  *float64 `json:"rotation,omitempty"`
}

type Configuration struct {
	ID               int64           `db:"id"`
	UserID           *uuid.UUID      `db:"user_id"`
	SessionID        string          `db:"session_id"`
	QuizResultID     *int64          `db:"quiz_result_id"`
	Title            string          `db:"title"`
	RoomType         RoomType        `db:"room_type"`
	SelectedProducts []PlacedProduct `db:"selected_products"`
	TotalPrice       int64           `db:"total_price"`
	PreviewImageURL  string          `db:"preview_image_url"`
	IsPublic         bool            `db:"is_public"`
	CreatedAt        time.Time       `db:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at"`
}

func (c *Configuration) OwnedBy(userID uuid.UUID) bool {
	return c.UserID != nil && *c.UserID == userID
}

func (c *Configuration) ProductIDs() []int64 {
	ids := make([]int64, 0, len(c.SelectedProducts))
	for _, p := range c.SelectedProducts {
		ids = append(ids, p.ProductID)
	}
	return ids
}

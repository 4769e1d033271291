package entities

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         string    `gorm:"default:user" json:"role"`

	Recipes []*Recipe `gorm:"foreignKey:AuthorID" json:"recipes,omitempty"`
	Timestamp
}

// Follow is a directed subscription: Follower reads FollowingID's recipes.
type Follow struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	FollowerID  uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_follower_following" json:"follower_id"`
	FollowingID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_follower_following" json:"following_id"`
	CreatedAt   time.Time `gorm:"type:timestamp" json:"created_at"`

	Follower  *User `gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE" json:"follower,omitempty"`
	Following *User `gorm:"foreignKey:FollowingID;constraint:OnDelete:CASCADE" json:"following,omitempty"`
}

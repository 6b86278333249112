package demo

import (
	"time"

	"github.com/google/uuid"
)

// Todo is a single todo item.
type Todo struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Done      bool      `gorm:"not null;default:false" json:"done"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName pins the table name.
func (Todo) TableName() string {
	return "todos"
}

// EntityID implements entity.
func (t Todo) EntityID() uuid.UUID { return t.ID }

// User is a registered account.
type User struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Username  string    `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Email     string    `gorm:"size:100;not null" json:"email"`
	Bio       string    `gorm:"size:500" json:"bio,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName pins the table name.
func (User) TableName() string {
	return "users"
}

// EntityID implements entity.
func (u User) EntityID() uuid.UUID { return u.ID }

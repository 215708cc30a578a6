package profile

import (
	"time"

	"github.com/google/uuid"
)

// Record is one user's stored profile document. Data holds serialized JSON
// text and is kept as text so a corrupt value can be detected on read.
type Record struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username string    `gorm:"column:username;not null;uniqueIndex" json:"username"`
	Data     string    `gorm:"column:data;type:text;not null" json:"data"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Record) TableName() string { return "profile" }

// Identity is the authenticated caller. The zero value is an anonymous caller.
type Identity struct {
	Username string
}

func (i Identity) Anonymous() bool { return i.Username == "" }

// Is reports whether the caller is authenticated as username.
func (i Identity) Is(username string) bool {
	return !i.Anonymous() && i.Username == username
}

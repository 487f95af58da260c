package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User mirrors an identity-provider subject locally. Authentication itself is
// delegated to the provider; this record only exists so meetings and tasks
// have an owner to reference.
type User struct {
	ID      uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Subject string    `json:"subject" gorm:"type:varchar(255);uniqueIndex;not null"`
	Email   string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`

	FirstName string  `json:"first_name" gorm:"type:varchar(255)"`
	LastName  string  `json:"last_name" gorm:"type:varchar(255)"`
	ImageURL  *string `json:"image_url,omitempty" gorm:"type:varchar(500)"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// NewUser creates a local mirror for an identity-provider subject
func NewUser(subject, email string) *User {
	now := time.Now()
	return &User{
		ID:        uuid.New(),
		Subject:   subject,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// BeforeCreate assigns an ID when the caller did not
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// DisplayName joins first and last name, falling back to the email
func (u *User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Email
	}
}

// Validate validates user data
func (u *User) Validate() error {
	if u.Subject == "" {
		return ErrInvalidSubject
	}
	if u.Email == "" {
		return ErrInvalidEmail
	}
	return nil
}

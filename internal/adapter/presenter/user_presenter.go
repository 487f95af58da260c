package presenter

import (
	identityDTO "github.com/meetmind-team/meetmind/internal/adapter/dto/identity"
	"github.com/meetmind-team/meetmind/internal/domain/entities"
)

// ToUserResponse converts a User entity to UserResponse DTO
func ToUserResponse(u *entities.User) *identityDTO.UserResponse {
	if u == nil {
		return nil
	}

	response := &identityDTO.UserResponse{
		ID:        u.ID.String(),
		Subject:   u.Subject,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}

	if u.ImageURL != nil {
		response.ImageURL = *u.ImageURL
	}

	return response
}

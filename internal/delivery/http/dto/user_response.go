package dto

import (
	"time"

	"talentboard/internal/domain/profile"
)

// SignupUserResponse omits createdAt, matching what signup has always
// returned.
type SignupUserResponse struct {
	ID       string       `json:"id"`
	Email    string       `json:"email"`
	Name     string       `json:"name"`
	UserType profile.Role `json:"userType"`
}

type UserProfileResponse struct {
	ID        string       `json:"id"`
	Email     string       `json:"email"`
	Name      string       `json:"name"`
	UserType  profile.Role `json:"userType"`
	CreatedAt time.Time    `json:"createdAt"`
}

func NewSignupUserResponse(p profile.UserProfile) SignupUserResponse {
	return SignupUserResponse{ID: p.ID, Email: p.Email, Name: p.Name, UserType: p.Role}
}

func NewUserProfileResponse(p profile.UserProfile) UserProfileResponse {
	return UserProfileResponse{ID: p.ID, Email: p.Email, Name: p.Name, UserType: p.Role, CreatedAt: p.CreatedAt}
}

type LoginResponse struct {
	AccessToken string               `json:"access_token"`
	TokenType   string               `json:"token_type"`
	ExpiresIn   int64                `json:"expires_in"`
	User        *UserProfileResponse `json:"user"`
}

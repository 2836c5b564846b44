package models

import "github.com/google/uuid"

type User struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	CreatedAt      string    `json:"created_at"`
	ProfilePicture *string   `json:"profile_picture"`
}

// UserLogin is the payload of a successful login or register call.
type UserLogin struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	UserData     User   `json:"user_data"`
}

// AccessToken is the payload of a successful refresh call.
type AccessToken struct {
	AccessToken string `json:"access_token"`
}

package dto

import "anoa.com/schoolattendance/internal/model"

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	ExpiresIn   int64       `json:"expires_in"`
	User        *model.User `json:"user"`
	Role        *model.Role `json:"role"`
	// Dashboard is the role-specific landing path the client should load
	// after login.
	Dashboard string `json:"dashboard"`
}

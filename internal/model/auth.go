package model

import "github.com/golang-jwt/jwt/v5"

// PlayerClaims are JWT claims for a player picked from a group roster
type PlayerClaims struct {
	GroupID  string `json:"groupId"`
	PlayerID string `json:"playerId"`
	jwt.RegisteredClaims
}

// AdminClaims are JWT claims for the admin panel
type AdminClaims struct {
	Admin bool `json:"admin"`
	jwt.RegisteredClaims
}

// LoginRequest is the request body for picking a profile
type LoginRequest struct {
	GroupID  string `json:"groupId"`
	PlayerID string `json:"playerId"`
}

// LoginResponse is returned after a successful profile pick
type LoginResponse struct {
	Token  string    `json:"token"`
	Player Player    `json:"player"`
	Group  GroupInfo `json:"group"`
}

// GroupInfo is the group header shown after login
type GroupInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// AdminLoginRequest is the request body for admin login
type AdminLoginRequest struct {
	Password string `json:"password"`
}

// AdminLoginResponse is returned after a successful admin login
type AdminLoginResponse struct {
	Token string `json:"token"`
}

package service

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"teambalancer/internal/apperror"
	"teambalancer/internal/common/clock"
	"teambalancer/internal/model"
	"teambalancer/internal/repository"
)

const tokenTTL = 24 * time.Hour

// AuthService issues and validates session tokens. Players pick their
// profile from a group roster; there is no password for them.
type AuthService struct {
	groupRepo     repository.GroupRepo
	adminPassword string
	jwtSecret     []byte
	clock         clock.Clock
}

// NewAuthService creates a new auth service
func NewAuthService(groupRepo repository.GroupRepo, adminPassword, jwtSecret string, clk clock.Clock) *AuthService {
	return &AuthService{
		groupRepo:     groupRepo,
		adminPassword: adminPassword,
		jwtSecret:     []byte(jwtSecret),
		clock:         clk,
	}
}

// Login issues a token for an active player of an active group
func (s *AuthService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	groupID := strings.TrimSpace(req.GroupID)
	playerID := strings.TrimSpace(req.PlayerID)
	if groupID == "" || playerID == "" {
		return nil, apperror.NewValidationError("groupId and playerId are required", nil)
	}

	group, err := findActiveGroup(ctx, s.groupRepo, groupID)
	if err != nil {
		return nil, err
	}
	if !isActiveMember(group, playerID) {
		return nil, playerNotFound()
	}
	idx := group.FindPlayer(playerID)

	now := s.clock.Now()
	claims := &model.PlayerClaims{
		GroupID:  groupID,
		PlayerID: playerID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   playerID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	token, err := s.sign(claims)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		Token:  token,
		Player: group.Players[idx],
		Group: model.GroupInfo{
			ID:    group.ID,
			Name:  group.Name,
			Icon:  group.Icon,
			Color: group.Color,
		},
	}, nil
}

// AdminLogin compares the password with the configured one
func (s *AuthService) AdminLogin(password string) (*model.AdminLoginResponse, error) {
	if password == "" || password != s.adminPassword {
		appErr := apperror.NewAuthenticationError("Invalid admin password")
		appErr.Internal = ErrInvalidCredentials
		return nil, appErr
	}

	now := s.clock.Now()
	claims := &model.AdminClaims{
		Admin: true,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	token, err := s.sign(claims)
	if err != nil {
		return nil, err
	}
	return &model.AdminLoginResponse{Token: token}, nil
}

// ValidatePlayerToken validates a player JWT and returns claims
func (s *AuthService) ValidatePlayerToken(tokenString string) (*model.PlayerClaims, error) {
	claims := &model.PlayerClaims{}
	if err := s.parse(tokenString, claims); err != nil {
		return nil, err
	}
	if claims.GroupID == "" || claims.PlayerID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ValidateAdminToken validates an admin JWT and returns claims
func (s *AuthService) ValidateAdminToken(tokenString string) (*model.AdminClaims, error) {
	claims := &model.AdminClaims{}
	if err := s.parse(tokenString, claims); err != nil {
		return nil, err
	}
	if !claims.Admin {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *AuthService) sign(claims jwt.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *AuthService) parse(tokenString string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil || !token.Valid {
		return ErrInvalidToken
	}
	return nil
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"anoa.com/schoolattendance/internal/dto"
	"anoa.com/schoolattendance/internal/model"
	"anoa.com/schoolattendance/internal/repository"
	"anoa.com/schoolattendance/pkg/apperror"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"
)

type AuthService interface {
	Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error)
	GoogleLogin() string
	GoogleCallback(ctx context.Context, code string) (*dto.AuthResponse, error)
}

type authService struct {
	repo          repository.UserRepository
	secret        string
	tokenTTL      time.Duration
	allowedDomain string
	googleConfig  *oauth2.Config
}

func NewAuthService(repo repository.UserRepository) AuthService {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "change-me"
	}

	ttl := time.Hour
	if ttlStr := os.Getenv("JWT_TTL_MINUTES"); ttlStr != "" {
		if minutes, err := strconv.Atoi(ttlStr); err == nil {
			ttl = time.Duration(minutes) * time.Minute
		}
	}

	googleConfig := &oauth2.Config{
		ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		RedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}

	return &authService{
		repo:          repo,
		secret:        secret,
		tokenTTL:      ttl,
		allowedDomain: os.Getenv("GOOGLE_ALLOWED_DOMAIN"),
		googleConfig:  googleConfig,
	}
}

func (s *authService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error) {
	user, err := s.repo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Unauthorized("invalid credentials")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, apperror.Unauthorized("invalid credentials")
	}

	return s.buildAuthResponse(user)
}

func (s *authService) GoogleLogin() string {
	return s.googleConfig.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
}

// GoogleCallback logs in an existing account by email, or registers a new
// one with the default STUDENT role. The admin completes the registry record
// afterwards.
func (s *authService) GoogleCallback(ctx context.Context, code string) (*dto.AuthResponse, error) {
	token, err := s.googleConfig.Exchange(ctx, code)
	if err != nil {
		return nil, apperror.Unauthorized("failed to exchange token: " + err.Error())
	}

	client := s.googleConfig.Client(ctx, token)
	userInfoResp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, errors.New("failed to get user info: " + err.Error())
	}
	defer userInfoResp.Body.Close()

	var googleUser struct {
		ID         string `json:"id"`
		Email      string `json:"email"`
		Name       string `json:"name"`
		GivenName  string `json:"given_name"`
		FamilyName string `json:"family_name"`
	}

	if err := json.NewDecoder(userInfoResp.Body).Decode(&googleUser); err != nil {
		return nil, errors.New("failed to decode user info: " + err.Error())
	}

	if s.allowedDomain != "" && !strings.HasSuffix(googleUser.Email, "@"+s.allowedDomain) {
		return nil, apperror.Unauthorized("email domain must be @" + s.allowedDomain)
	}

	user, err := s.repo.FindByEmail(ctx, googleUser.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		role, err := s.repo.FindRoleByName(ctx, model.RoleStudent)
		if err != nil {
			return nil, errors.New("default role not found")
		}

		username := strings.Split(googleUser.Email, "@")[0]
		username = strings.ReplaceAll(username, " ", "_")
		if _, err := s.repo.FindByUsername(ctx, username); err == nil {
			username = username + "_" + uuid.New().String()[:4]
		}

		newUser, err := newIdentity(role, username, googleUser.GivenName, googleUser.FamilyName, uuid.New().String())
		if err != nil {
			return nil, err
		}
		newUser.Email = &googleUser.Email
		newUser.GoogleID = &googleUser.ID

		if err := s.repo.Create(ctx, newUser); err != nil {
			return nil, errors.New("failed to create user: " + err.Error())
		}

		user = newUser
	} else if user.GoogleID == nil || *user.GoogleID != googleUser.ID {
		user.GoogleID = &googleUser.ID
		if err := s.repo.Update(ctx, user); err != nil {
			return nil, err
		}
	}

	return s.buildAuthResponse(user)
}

func (s *authService) buildAuthResponse(user *model.User) (*dto.AuthResponse, error) {
	token, expiresAt, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""

	return &dto.AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresAt,
		User:        user,
		Role:        &user.Role,
		Dashboard:   dashboardPath(user.Role.Name),
	}, nil
}

func (s *authService) generateToken(user *model.User) (string, int64, error) {
	expiresAt := time.Now().Add(s.tokenTTL)

	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", 0, err
	}

	return signed, expiresAt.Unix(), nil
}

func dashboardPath(role string) string {
	switch role {
	case model.RoleAdmin:
		return "/api/dashboard/admin"
	case model.RoleTeacher:
		return "/api/dashboard/teacher"
	default:
		return "/api/dashboard/student"
	}
}

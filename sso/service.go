package sso

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/oauth2"

	"themison-be/auth"
	"themison-be/user"
	"themison-be/util"
)

const stateTTL = 5 * time.Minute

type SSOService struct {
	userRepo *user.UserRepository
	redis    *redis.Client
}

func NewSSOService(userRepo *user.UserRepository, redisClient *redis.Client) *SSOService {
	return &SSOService{
		userRepo: userRepo,
		redis:    redisClient,
	}
}

// BeginLogin generates a CSRF state, stores it in redis and returns the
// provider authorization URL.
func (s *SSOService) BeginLogin(ctx context.Context) (string, error) {
	state := util.RandString(16)
	key := "oauth_state:" + state
	if err := s.redis.Set(ctx, key, "1", stateTTL).Err(); err != nil {
		return "", fmt.Errorf("failed to store oauth state: %w", err)
	}

	oauthConfig := GetMicrosoftOAuthConfig()
	return oauthConfig.AuthCodeURL(
		state,
		oauth2.SetAuthURLParam("prompt", "select_account"),
	), nil
}

// ConsumeState validates a callback state and deletes it so it cannot
// be replayed.
func (s *SSOService) ConsumeState(ctx context.Context, state string) bool {
	if state == "" {
		return false
	}
	key := "oauth_state:" + state
	deleted, err := s.redis.Del(ctx, key).Result()
	return err == nil && deleted > 0
}

func (s *SSOService) HandleCallback(ctx context.Context, code string) (*user.LoginResponse, error) {
	oauthConfig := GetMicrosoftOAuthConfig()

	token, err := oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange token: %w", err)
	}

	client := oauthConfig.Client(ctx, token)
	resp, err := client.Get("https://graph.microsoft.com/v1.0/me")
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var msUser MicrosoftUser
	if err := json.Unmarshal(body, &msUser); err != nil {
		return nil, err
	}

	email := msUser.Email
	if email == "" {
		email = msUser.UserPrincipalName
	}
	if email == "" {
		return nil, errors.New("email not provided by identity provider")
	}

	dbUser, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		// First login through the provider, provision a local account
		// with an unguessable password.
		hashedPassword, hashErr := util.HashPassword(util.RandString(32))
		if hashErr != nil {
			return nil, fmt.Errorf("failed to provision user: %w", hashErr)
		}
		newUser := &user.User{
			Name:     msUser.DisplayName,
			Email:    email,
			Password: hashedPassword,
		}
		dbUser, err = s.userRepo.CreateUser(newUser)
		if err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
	}

	accessToken, err := auth.GenerateAccessToken(dbUser.ID, dbUser.Email, dbUser.Name)
	if err != nil {
		return nil, err
	}

	refreshToken, err := auth.GenerateRefreshToken(dbUser.ID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("refresh_token:%d", dbUser.ID)
	if err := s.redis.Set(ctx, key, refreshToken, 7*24*time.Hour).Err(); err != nil {
		return nil, err
	}

	dbUser.Password = ""
	return &user.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         dbUser,
	}, nil
}

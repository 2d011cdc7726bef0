package user

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"themison-be/auth"
	"themison-be/util"

	"github.com/redis/go-redis/v9"
)

type UserService struct {
	Repo  *UserRepository
	Redis *redis.Client
}

func NewUserService(repo *UserRepository, redisClient *redis.Client) *UserService {
	return &UserService{
		Repo:  repo,
		Redis: redisClient,
	}
}

func (s *UserService) Register(req *RegisterRequest) (*User, error) {
	hashedPassword, err := util.HashPassword(req.Password)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	newUser := &User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashedPassword,
		Phone:    req.Phone,
	}

	return s.Repo.CreateUser(newUser)
}

func (s *UserService) GetUsers() ([]User, error) {
	return s.Repo.GetUsers()
}

func (s *UserService) GetUserByID(id int64) (*User, error) {
	return s.Repo.GetUserByID(id)
}

func (s *UserService) UpdateUser(id int64, req *UpdateUserRequest) (*User, error) {
	current, err := s.Repo.GetUserByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		current.Name = req.Name
	}
	if req.Phone != nil {
		current.Phone = req.Phone
	}
	if req.Password != "" {
		hashedPassword, err := util.HashPassword(req.Password)
		if err != nil {
			return nil, errors.New("failed to hash password")
		}
		current.Password = hashedPassword
	}

	return s.Repo.UpdateUser(id, current)
}

func (s *UserService) DeleteUser(id int64) error {
	return s.Repo.DeleteUser(id)
}

func (s *UserService) Login(email, password string) (*LoginResponse, error) {
	u, err := s.Repo.GetUserByEmail(email)
	if err != nil {
		return nil, errors.New("invalid email or password")
	}

	if err := util.VerifyPassword(u.Password, password); err != nil {
		return nil, errors.New("invalid email or password")
	}

	accessToken, err := auth.GenerateAccessToken(u.ID, u.Email, u.Name)
	if err != nil {
		return nil, errors.New("failed to generate access token")
	}

	refreshToken, err := auth.GenerateRefreshToken(u.ID)
	if err != nil {
		return nil, errors.New("failed to generate refresh token")
	}

	ctx := context.Background()
	key := fmt.Sprintf("refresh_token:%d", u.ID)
	if err := s.Redis.Set(ctx, key, refreshToken, 7*24*time.Hour).Err(); err != nil {
		return nil, errors.New("failed to store refresh token")
	}

	u.Password = ""
	return &LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         u,
	}, nil
}

func (s *UserService) Logout(userID int64) error {
	ctx := context.Background()
	key := fmt.Sprintf("refresh_token:%d", userID)
	return s.Redis.Del(ctx, key).Err()
}

func (s *UserService) RefreshAccessToken(refreshToken string) (string, error) {
	claims, err := auth.ValidateToken(refreshToken)
	if err != nil {
		return "", errors.New("invalid refresh token")
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return "", errors.New("invalid user ID in token")
	}

	ctx := context.Background()
	key := fmt.Sprintf("refresh_token:%d", userID)
	storedToken, err := s.Redis.Get(ctx, key).Result()
	if err != nil || storedToken != refreshToken {
		return "", errors.New("refresh token not found or invalid")
	}

	u, err := s.Repo.GetUserByID(userID)
	if err != nil {
		return "", errors.New("user not found")
	}

	return auth.GenerateAccessToken(u.ID, u.Email, u.Name)
}

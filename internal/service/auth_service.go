package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quiz_backend/internal/config"
	"quiz_backend/internal/model"
	"quiz_backend/internal/repository"
	"quiz_backend/internal/util"

	"github.com/go-redis/redis/v8"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	Redis    *redis.Client
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, rdb *redis.Client, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Redis:    rdb,
		Cfg:      cfg,
	}
}

func (s *AuthService) Register(username, password string) (*model.User, error) {
	_, err := s.UserRepo.FindByUsername(username)
	if err == nil {
		return nil, util.ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username: username,
		Password: string(hashedPassword),
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues a JWT. Failed logins per username
// are counted in redis; past the limit every login for that name is refused
// until the window expires.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *model.User, error) {
	blocked, err := s.tooManyFailures(ctx, username)
	if err == nil && blocked {
		return "", nil, util.ErrTooManyLogins
	}

	user, err := s.UserRepo.FindByUsername(username)
	if err != nil {
		s.recordFailure(ctx, username)
		return "", nil, util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.recordFailure(ctx, username)
		return "", nil, util.ErrInvalidCredentials
	}

	s.clearFailures(ctx, username)

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func loginFailuresKey(username string) string {
	return fmt.Sprintf("login:failures:%s", username)
}

func (s *AuthService) tooManyFailures(ctx context.Context, username string) (bool, error) {
	if s.Redis == nil {
		return false, nil
	}
	count, err := s.Redis.Get(ctx, loginFailuresKey(username)).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return count >= s.Cfg.Login.MaxFailures, nil
}

func (s *AuthService) recordFailure(ctx context.Context, username string) {
	if s.Redis == nil {
		return
	}
	key := loginFailuresKey(username)
	count, err := s.Redis.Incr(ctx, key).Result()
	if err != nil {
		return
	}
	if count == 1 {
		window := time.Duration(s.Cfg.Login.WindowMinutes) * time.Minute
		s.Redis.Expire(ctx, key, window)
	}
}

func (s *AuthService) clearFailures(ctx context.Context, username string) {
	if s.Redis == nil {
		return
	}
	s.Redis.Del(ctx, loginFailuresKey(username))
}

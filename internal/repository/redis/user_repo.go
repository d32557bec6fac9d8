package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrTokenNotFound    = errors.New("token not found")
	ErrRedisUnavailable = errors.New("redis unavailable")
	ErrExtendFailed     = errors.New("token extend failed")
	ErrTokenDeleted     = errors.New("token delete failed")
)

const UserTokenTTL = 30 * time.Minute

// UserRepository 登录 token 存储，单设备：新登录顶掉旧 token
type UserRepository struct{}

func tokenKey(usrID uint64) string {
	return key(fmt.Sprintf("login:user:token:%d", usrID))
}

func (r *UserRepository) AddUserToken(usrID uint64, token string) error {
	if err := Client.Set(context.Background(), tokenKey(usrID), token, UserTokenTTL).Err(); err != nil {
		return ErrRedisUnavailable
	}
	return nil
}

func (r *UserRepository) GetUserToken(usrID uint64) (string, error) {
	token, err := Client.Get(context.Background(), tokenKey(usrID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", ErrRedisUnavailable
	}
	return token, nil
}

// ExtendUserToken 滑动续期
func (r *UserRepository) ExtendUserToken(usrID uint64) error {
	if _, err := Client.Expire(context.Background(), tokenKey(usrID), UserTokenTTL).Result(); err != nil {
		return ErrExtendFailed
	}
	return nil
}

func (r *UserRepository) DeleteUserToken(usrID uint64) error {
	if err := Client.Del(context.Background(), tokenKey(usrID)).Err(); err != nil {
		return ErrTokenDeleted
	}
	return nil
}

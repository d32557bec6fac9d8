package redis

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	DefaultEmailCodeTTL = 5 * time.Minute

	ScopeRegister = "register"
	ScopeReset    = "reset"

	// 两阶段键：邮件发出去之前是 pending，发送成功后转 confirmed 才可用于校验
	pendingSuffix   = "pending"
	confirmedSuffix = "confirmed"
)

var (
	ErrEmailNotFound       = errors.New("email code not found")
	ErrEmailCodeDelFailed  = errors.New("email code delete failed")
	ErrCodePendingFailed   = errors.New("code pending failed")
	ErrCodeConfirmedFailed = errors.New("code confirmed failed")
)

type EmailRepository struct{}

func codeKey(scope, phase, email string) string {
	return key(fmt.Sprintf("email:code:%s:%s:%s", scope, phase, email))
}

// SetPending 写入 pending 验证码
func (e *EmailRepository) SetPending(scope, email, code string) error {
	if err := Client.Set(context.Background(), codeKey(scope, pendingSuffix, email),
		code, DefaultEmailCodeTTL).Err(); err != nil {
		return ErrCodePendingFailed
	}
	return nil
}

// ConfirmPending 将 pending 转为 confirmed。
// lua 脚本原子执行：取值 + 写入目标 + 设置 TTL + 删除源
func (e *EmailRepository) ConfirmPending(scope, email string) error {
	srcKey := codeKey(scope, pendingSuffix, email)
	dstKey := codeKey(scope, confirmedSuffix, email)

	script := `
local val = redis.call("GET", KEYS[1])
if not val then
  return 0
end
redis.call("SET", KEYS[2], val, "PX", ARGV[1])
redis.call("DEL", KEYS[1])
return 1
`
	px := int64(DefaultEmailCodeTTL / time.Millisecond)
	res := Client.Eval(context.Background(), script, []string{srcKey, dstKey}, px)
	if err := res.Err(); err != nil {
		return ErrCodeConfirmedFailed
	}
	ok, _ := res.Int()
	if ok != 1 {
		return ErrCodeConfirmedFailed
	}
	return nil
}

// DeletePending 删除 pending 键（幂等）
func (e *EmailRepository) DeletePending(scope, email string) error {
	if err := Client.Del(context.Background(), codeKey(scope, pendingSuffix, email)).Err(); err != nil {
		return ErrEmailCodeDelFailed
	}
	return nil
}

// GetConfirmed 取 confirmed 验证码（校验时用）
func (e *EmailRepository) GetConfirmed(scope, email string) (string, error) {
	val, err := Client.Get(context.Background(), codeKey(scope, confirmedSuffix, email)).Result()
	if err != nil {
		return "", ErrEmailNotFound
	}
	return val, nil
}

// DeleteConfirmed 验证码一次性使用，校验通过后删除
func (e *EmailRepository) DeleteConfirmed(scope, email string) error {
	if err := Client.Del(context.Background(), codeKey(scope, confirmedSuffix, email)).Err(); err != nil {
		return ErrEmailCodeDelFailed
	}
	return nil
}

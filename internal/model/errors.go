package model

import (
	"errors"
	"fmt"
)

// 领域错误，handler 层统一映射到 HTTP 状态码
var (
	ErrNotFound         = errors.New("not found")
	ErrUnauthorized     = errors.New("no permission")
	ErrInvalidTarget    = errors.New("no guild selected")
	ErrNotMember        = errors.New("not a guild member")
	ErrCapacityExceeded = errors.New("session is full")
	ErrInvalidCode      = errors.New("invalid invite code")
	ErrAlreadyMember    = errors.New("already a member")
	ErrPrivateGuild     = errors.New("private guild requires an invite code")
	ErrOwnerMustDisband = errors.New("owner cannot leave while members remain")
	ErrEmailNotVerified = errors.New("email not verified")

	// ErrValidation 输入校验失败的基错误，具体原因用 Invalid 包装
	ErrValidation = errors.New("invalid input")
)

func Invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

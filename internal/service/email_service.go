package service

import (
	"github.com/PresidentDoug/my-game-sync/internal/model"
	"github.com/PresidentDoug/my-game-sync/internal/pkg"
	"github.com/PresidentDoug/my-game-sync/internal/repository/redis"
)

type EmailService struct {
	emailCfg pkg.SMTPConfig
	rds      *redis.EmailRepository
}

func NewEmailService(cfg pkg.SMTPConfig) *EmailService {
	return &EmailService{emailCfg: cfg, rds: &redis.EmailRepository{}}
}

func subjectOf(scope string) string {
	if scope == redis.ScopeReset {
		return "重置密码"
	}
	return "注册验证"
}

// SendCode 发送验证码。先写 pending 键，邮件发出去之后才转 confirmed，
// 避免发信失败后留下可用验证码。
func (s *EmailService) SendCode(scope, email string) error {
	if scope != redis.ScopeRegister && scope != redis.ScopeReset {
		return model.Invalid("invalid scope")
	}
	code, err := pkg.RandDigits(6)
	if err != nil {
		return err
	}
	if err = s.rds.SetPending(scope, email, code); err != nil {
		return err
	}

	if err = pkg.SendCodeMail(s.emailCfg, email, subjectOf(scope), code,
		redis.DefaultEmailCodeTTL); err != nil {
		return err
	}

	if err = s.rds.ConfirmPending(scope, email); err != nil {
		_ = s.rds.DeletePending(scope, email)
		return err
	}
	return nil
}

// VerifyCode 校验验证码，通过后一次性删除
func (s *EmailService) VerifyCode(scope, email, code string) (bool, error) {
	val, err := s.rds.GetConfirmed(scope, email)
	if err != nil {
		// 不存在或已过期
		return false, err
	}
	if val != code {
		return false, nil
	}
	if err = s.rds.DeleteConfirmed(scope, email); err != nil {
		return false, err
	}
	return true, nil
}

package service

import (
	"errors"

	"github.com/PresidentDoug/my-game-sync/internal/model"
	"github.com/PresidentDoug/my-game-sync/internal/pkg"
	"github.com/PresidentDoug/my-game-sync/internal/repository/mysql"
	"github.com/PresidentDoug/my-game-sync/internal/repository/redis"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	repo        *mysql.UserRepository
	profileRepo *mysql.ProfileRepository
	rUser       *redis.UserRepository
	emailSvc    *EmailService
}

func NewUserService(db *gorm.DB, emailSvc *EmailService) *UserService {
	return &UserService{
		repo:        &mysql.UserRepository{DB: db},
		profileRepo: &mysql.ProfileRepository{DB: db},
		rUser:       &redis.UserRepository{},
		emailSvc:    emailSvc,
	}
}

// Register 注册后账号处于未验证状态，校验邮箱验证码之前不能登录
func (s *UserService) Register(email, password, displayName string) error {
	if len(password) < 6 {
		return model.Invalid("password must be at least 6 characters")
	}
	if _, err := s.repo.FindByEmail(email); err == nil {
		return model.Invalid("email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &model.User{
		Email:    email,
		Password: string(hash),
	}
	if err = s.repo.Create(user); err != nil {
		return err
	}

	// 注册时建私有资料，公开目录副本等第一次保存资料才出现
	if displayName == "" {
		displayName = fallbackName(user.ID)
	}
	return s.profileRepo.Create(&model.Profile{
		UserID:      user.ID,
		DisplayName: displayName,
		Theme:       model.ThemeLight,
	})
}

// VerifyEmail 校验注册验证码并解锁账号
func (s *UserService) VerifyEmail(email, code string) error {
	ok, err := s.emailSvc.VerifyCode(redis.ScopeRegister, email, code)
	if err != nil || !ok {
		return model.Invalid("verification failed")
	}
	user, err := s.repo.FindByEmail(email)
	if err != nil {
		return err
	}
	return s.repo.MarkVerified(user.ID)
}

// Login 未验证邮箱不发 token，等于挂起一切数据访问
func (s *UserService) Login(email, password string) (*pkg.Pair, error) {
	user, err := s.repo.FindByEmail(email)
	if err != nil {
		return nil, errors.New("invalid email or password")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, errors.New("invalid email or password")
	}
	if !user.EmailVerified {
		return nil, model.ErrEmailNotVerified
	}

	token, err := pkg.GeneratePair(user.ID)
	if err != nil {
		return nil, err
	}
	if err = s.rUser.AddUserToken(user.ID, token.AccessToken); err != nil {
		return nil, err
	}
	return token, nil
}

func (s *UserService) Logout(usrID uint64) error {
	return s.rUser.DeleteUserToken(usrID)
}

// Refresh 换发 token 并覆盖 redis 里的登录态
func (s *UserService) Refresh(refreshToken string) (*pkg.Pair, error) {
	token, err := pkg.Refresh(refreshToken)
	if err != nil {
		return nil, err
	}
	claims, err := pkg.ParseAccess(token.AccessToken)
	if err != nil {
		return nil, err
	}
	if err = s.rUser.AddUserToken(claims.UserID, token.AccessToken); err != nil {
		return nil, err
	}
	return token, nil
}

// ResetPassword 忘记密码：邮箱验证码换新密码
func (s *UserService) ResetPassword(email, code, newPassword string) error {
	ok, err := s.emailSvc.VerifyCode(redis.ScopeReset, email, code)
	if err != nil || !ok {
		return model.Invalid("verification failed")
	}

	user, err := s.repo.FindByEmail(email)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(user, string(hash))
}

// ChangePassword 登录态修改密码，成功后踢掉当前 token
func (s *UserService) ChangePassword(usrID uint64, oldPassword, newPassword string) error {
	user, err := s.repo.FindByID(usrID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)) != nil {
		return model.Invalid("old password is incorrect")
	}
	if len(newPassword) < 6 {
		return model.Invalid("password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err = s.repo.UpdatePassword(user, string(hash)); err != nil {
		return err
	}
	return s.Logout(usrID)
}

package pkg

import (
	"crypto/tls"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SendCodeMail 发送验证码邮件。purpose 是操作名（注册验证 / 重置密码），
// 用于标题和正文；这是本服务唯一的外发邮件类型。
func SendCodeMail(cfg SMTPConfig, to, purpose, code string, ttl time.Duration) error {
	m := gomail.NewMessage()
	m.SetHeader("From", cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "GameSync "+purpose+"验证码")
	m.SetBody("text/html", codeMailBody(purpose, code, ttl))

	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	return d.DialAndSend(m)
}

func codeMailBody(purpose, code string, ttl time.Duration) string {
	return fmt.Sprintf(
		`<p>您好，</p><p>您正在 GameSync 进行 <b>%s</b>，验证码为：<b style="font-size:18px;">%s</b>。</p><p>有效期 %d 分钟，请勿泄露给他人。</p>`,
		purpose, code, int(ttl.Minutes()))
}

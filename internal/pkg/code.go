package pkg

import (
	cryptoRand "crypto/rand"
	"math/big"
	"strings"
)

const inviteCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func RandDigits(n int) (string, error) {
	var b strings.Builder
	for i := 0; i < n; i++ {
		x, err := cryptoRand.Int(cryptoRand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		b.WriteByte(byte('0' + x.Int64()))
	}
	return b.String(), nil
}

// RandInviteCode 生成大写字母+数字的邀请码，存储统一大写，匹配时不区分大小写
func RandInviteCode(n int) (string, error) {
	var b strings.Builder
	max := big.NewInt(int64(len(inviteCharset)))
	for i := 0; i < n; i++ {
		x, err := cryptoRand.Int(cryptoRand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(inviteCharset[x.Int64()])
	}
	return b.String(), nil
}

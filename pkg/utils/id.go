package utils

import (
	"crypto/rand"
	"math/big"
)

const alphanumeric = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// UsernameLength 生成的用户名长度
const UsernameLength = 24

// RandomAlphanumeric 返回 n 位随机字母数字串（crypto/rand）
func RandomAlphanumeric(n int) string {
	if n <= 0 {
		return ""
	}
	max := big.NewInt(int64(len(alphanumeric)))
	b := make([]byte, n)
	for i := range b {
		num, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic("utils: crypto/rand unavailable: " + err.Error())
		}
		b[i] = alphanumeric[num.Int64()]
	}
	return string(b)
}

// NewUsername 系统生成的用户名，创建时写入一次
func NewUsername() string { return RandomAlphanumeric(UsernameLength) }

// IsAlphanumeric 仅包含 [a-zA-Z0-9]
func IsAlphanumeric(s string) bool {
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if !(ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch >= '0' && ch <= '9') {
			return false
		}
	}
	return s != ""
}

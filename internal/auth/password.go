package auth

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const defaultBcryptCost = bcrypt.DefaultCost

const passwordSpecials = "!@#$%^&*()-_=+[{]}\\|;:'\",<.>/?`~"

var loginPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// HashPassword 对明文密码进行哈希处理
func HashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password must not be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), defaultBcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword 验证密码是否与存储的哈希值匹配
func VerifyPassword(hash, candidate string) error {
	if strings.TrimSpace(hash) == "" {
		return errors.New("stored password hash is empty")
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate))
}

// ValidateLogin checks the account login format: 3-35 characters, latin
// letters, digits and underscore only.
func ValidateLogin(login string) error {
	trimmed := strings.TrimSpace(login)
	if len(trimmed) < 3 || len(trimmed) > 35 {
		return errors.New("login must be 3 to 35 characters long")
	}
	if !loginPattern.MatchString(trimmed) {
		return errors.New("login may contain only latin letters, digits and underscore")
	}
	return nil
}

// ValidatePassword enforces the password policy: 8-64 characters with at
// least one upper-case letter, one lower-case letter, one digit and one
// special character.
func ValidatePassword(password string) error {
	if password == "" {
		return errors.New("password must not be empty")
	}
	if len(password) < 8 || len(password) > 64 {
		return errors.New("password must be 8 to 64 characters long")
	}
	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSpecials, r):
			hasSpecial = true
		}
	}
	if !hasUpper {
		return errors.New("password must contain at least one upper-case letter")
	}
	if !hasLower {
		return errors.New("password must contain at least one lower-case letter")
	}
	if !hasDigit {
		return errors.New("password must contain at least one digit")
	}
	if !hasSpecial {
		return errors.New("password must contain at least one special character")
	}
	return nil
}

package security

import "golang.org/x/crypto/bcrypt"

// bcrypt cost 10 puts verification around the 100ms mark on commodity
// hardware, which is the tuning target for login throttling.
const bcryptCost = 10

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

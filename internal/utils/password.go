package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes a dispatcher/viewer account password with bcrypt.  The
// cost comes from the BCRYPT_COST configuration; values outside bcrypt's
// supported range fall back to the library default so a misconfigured
// deployment degrades to a safe cost instead of failing registration.
func HashPassword(plain string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword compares a stored bcrypt hash against a login attempt in
// constant time.  Any mismatch, including a malformed hash, reads as a failed
// login.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

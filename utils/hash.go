package utils

import "golang.org/x/crypto/bcrypt"

// PasswordCost is the bcrypt work factor for manager passwords.
var PasswordCost = 14

func HashPassword(p string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(p), PasswordCost)
	return string(bytes), err
}

func CheckPassword(hash, pass string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(pass))
	return err == nil
}

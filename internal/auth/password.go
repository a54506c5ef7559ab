// Пакет auth содержит хеширование паролей и выпуск/проверку токенов сессии.
package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
)

// BcryptHasher хеширует пароли через bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher создаёт хешер; cost <= 0 означает bcrypt.DefaultCost.
func NewBcryptHasher(cost int) BcryptHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return BcryptHasher{cost: cost}
}

func (h BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h BcryptHasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

var _ domain.PasswordHasher = BcryptHasher{}

package security

import (
	"github.com/stormiq/signals-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// BcryptHasher hashes passwords with a configurable work factor.
// Out-of-range costs fall back to the library default, so a zero
// value from config still produces sane hashes.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	out, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", domain.ErrHashFailed(err)
	}
	return string(out), nil
}

// Compare reports a match as nil; the comparison is constant-time.
func (h *BcryptHasher) Compare(hash string, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

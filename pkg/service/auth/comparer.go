package auth

import "golang.org/x/crypto/bcrypt"

// SecretComparer abstracts how secrets are sealed for storage and compared
// at login, so hashing can be swapped in behind the same Authenticate
// contract without touching the credential file format.
type SecretComparer interface {
	// Seal converts a plain secret into its stored form.
	Seal(secret string) (string, error)
	// Compare checks a plain secret against its stored form.
	Compare(secret, sealed string) bool
}

// PlainComparer stores and compares secrets verbatim — the historical
// behavior of the credential file.
type PlainComparer struct{}

func (PlainComparer) Seal(secret string) (string, error) { return secret, nil }

func (PlainComparer) Compare(secret, sealed string) bool { return secret == sealed }

// BcryptComparer stores a salted bcrypt hash instead of the secret itself.
type BcryptComparer struct {
	Cost int
}

func (b BcryptComparer) Seal(secret string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	return string(hash), err
}

func (b BcryptComparer) Compare(secret, sealed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(sealed), []byte(secret)) == nil
}

// ComparerFor maps a configured strategy name to its comparer, defaulting
// to plain comparison.
func ComparerFor(strategy string) SecretComparer {
	if strategy == "bcrypt" {
		return BcryptComparer{}
	}
	return PlainComparer{}
}

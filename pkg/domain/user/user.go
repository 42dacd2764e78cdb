package user

import (
	"fmt"
	"strings"

	"github.com/amitrawal/railbank/pkg/domain"
)

// Credential pairs a username with its stored secret. The secret is held in
// whatever sealed form the configured comparer produced at registration time
// (plain text by default).
type Credential struct {
	Username string
	Secret   string
}

// New validates and constructs a Credential. Both fields must be non-empty
// after trimming, matching the registration rules of the console flow. The
// store is one comma-separated pair per line, so neither field may contain a
// line break and the username may not contain a comma; otherwise a crafted
// registration could write extra credential lines into the file.
func New(username, secret string) (*Credential, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username cannot be empty", domain.ErrValidation)
	}
	if strings.ContainsAny(username, ",\n\r") {
		return nil, fmt.Errorf("%w: username cannot contain commas or line breaks", domain.ErrValidation)
	}
	if strings.TrimSpace(secret) == "" {
		return nil, fmt.Errorf("%w: secret cannot be empty", domain.ErrValidation)
	}
	if strings.ContainsAny(secret, "\n\r") {
		return nil, fmt.Errorf("%w: secret cannot contain line breaks", domain.ErrValidation)
	}
	return &Credential{Username: username, Secret: secret}, nil
}

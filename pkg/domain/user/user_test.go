package user_test

import (
	"testing"

	"github.com/amitrawal/railbank/pkg/domain"
	"github.com/amitrawal/railbank/pkg/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	c, err := user.New("alice", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "alice", c.Username)
	assert.Equal(t, "secret1", c.Secret)
}

func TestNewTrimsUsername(t *testing.T) {
	c, err := user.New("  bob ", "pw")
	require.NoError(t, err)
	assert.Equal(t, "bob", c.Username)
}

func TestNewRejectsEmptyFields(t *testing.T) {
	for _, tt := range []struct{ username, secret string }{
		{"", "pw"},
		{"   ", "pw"},
		{"alice", ""},
		{"alice", "  "},
	} {
		_, err := user.New(tt.username, tt.secret)
		assert.ErrorIs(t, err, domain.ErrValidation, "username=%q secret=%q", tt.username, tt.secret)
	}
}

func TestNewRejectsFileFormatCharacters(t *testing.T) {
	// A comma shears the stored record; a line break would write extra
	// credential lines into the file.
	for _, tt := range []struct{ username, secret string }{
		{"a,b", "pw"},
		{"alice\nadmin2", "pw"},
		{"alice\r", "pw"},
		{"mallory", "pw\nadmin2,x"},
		{"mallory", "pw\r\nadmin2"},
	} {
		_, err := user.New(tt.username, tt.secret)
		assert.ErrorIs(t, err, domain.ErrValidation, "username=%q secret=%q", tt.username, tt.secret)
	}
}

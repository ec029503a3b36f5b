package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePassword(t *testing.T) {
	auth := NewAuthService()

	cases := []struct {
		password string
		ok       bool
	}{
		{"", false},
		{"Sh0rt!", false},
		{"alllowercase1!", false},
		{"ALLUPPERCASE1!", false},
		{"NoDigitsHere!", false},
		{"NoSpecial123", false},
		{"Qwerty123!", true},
		{"C0rrect.Horse", true},
	}
	for _, tc := range cases {
		err := auth.ValidatePassword(tc.password)
		if tc.ok {
			assert.NoError(t, err, tc.password)
		} else {
			assert.Error(t, err, tc.password)
		}
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	auth := NewAuthService()

	hash, err := auth.HashPassword("Qwerty123!")
	require.NoError(t, err)
	assert.NotEqual(t, "Qwerty123!", hash)

	assert.NoError(t, auth.CheckPassword(hash, "Qwerty123!"))
	assert.Error(t, auth.CheckPassword(hash, "wrong"))
}

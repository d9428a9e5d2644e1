package actions

import (
	"testing"

	"github.com/dgrijalva/jwt-go"
	"github.com/go-playground/assert/v2"
)

func TestRolesFromClaims(t *testing.T) {
	tests := []struct {
		name   string
		claims jwt.MapClaims
		want   []string
	}{
		{
			name:   "List of roles",
			claims: jwt.MapClaims{"roles": []interface{}{"administrator", "editor"}},
			want:   []string{"administrator", "editor"},
		},
		{
			name:   "Roles encoded as a json string",
			claims: jwt.MapClaims{"roles": `["editor"]`},
			want:   []string{"editor"},
		},
		{
			name:   "Single role string",
			claims: jwt.MapClaims{"roles": "author"},
			want:   []string{"author"},
		},
		{
			name:   "Role claim",
			claims: jwt.MapClaims{"role": "subscriber"},
			want:   []string{"subscriber"},
		},
		{
			name:   "Empty values are skipped",
			claims: jwt.MapClaims{"roles": []interface{}{"", 12, "editor"}, "role": ""},
			want:   []string{"editor"},
		},
		{
			name:   "No roles",
			claims: jwt.MapClaims{"sub": "1"},
			want:   []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RolesFromClaims(tt.claims))
		})
	}
}

func TestParseToken(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "7"}).SignedString([]byte("secret"))
	assert.Equal(t, nil, err)

	claims, err := ParseToken(token, "secret")
	assert.Equal(t, nil, err)
	assert.Equal(t, "7", claims["sub"])

	_, err = ParseToken(token, "other")
	assert.NotEqual(t, nil, err)

	_, err = ParseToken("not-a-token", "secret")
	assert.NotEqual(t, nil, err)
}

package actions

import (
	"fmt"
	"strings"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
)

// TokenCookie carries the site session token for browser requests
const TokenCookie = "site_token"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ParseToken validates a HMAC signed token and returns its claims
func ParseToken(tokenString string, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Don't forget to validate the alg is what you expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("Unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if token == nil {
		return jwt.MapClaims{}, fmt.Errorf("Invalid token")
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return jwt.MapClaims{}, err
}

// RolesFromClaims reads the "roles" claim. A single "role" claim is accepted as well.
func RolesFromClaims(claims jwt.MapClaims) []string {
	roles := []string{}
	switch v := claims["roles"].(type) {
	case []interface{}:
		for _, role := range v {
			if s, ok := role.(string); ok && s != "" {
				roles = append(roles, s)
			}
		}
	case string:
		// some issuers encode the list as a JSON string
		list := []string{}
		if err := json.Unmarshal([]byte(v), &list); err == nil {
			roles = append(roles, list...)
		} else if v != "" {
			roles = append(roles, v)
		}
	}
	if role, ok := claims["role"].(string); ok && role != "" {
		roles = append(roles, role)
	}
	return roles
}

func getToken(c *gin.Context) string {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if token != "" {
		return token
	}
	token, _ = c.Cookie(TokenCookie)
	return token
}

func getRoles(c *gin.Context) []string {
	roles, ok := c.Get("auth_roles")
	if !ok {
		return nil
	}
	return roles.([]string)
}

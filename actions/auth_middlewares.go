package actions

import (
	"github.com/gin-gonic/gin"

	authCache "gitlab.com/paramountdax-exchange/site_maintenance/cache/auth"
)

// Identify loads the requester roles from the token when one is sent.
// Requests without a valid token continue as anonymous visitors.
func (actions *Actions) Identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := getToken(c)
		if token == "" {
			c.Next()
			return
		}
		claims, err := ParseToken(token, actions.jwtTokenSecret)
		if err != nil {
			log := getlog(c)
			log.Debug().Err(err).Str("section", "identify").Msg("Ignoring invalid token")
			c.Next()
			return
		}
		if sub, ok := claims["sub"].(string); ok {
			c.Set("auth_user_id", sub)
		}
		c.Set("auth_roles", RolesFromClaims(claims))
		c.Next()
	}
}

// Restrict access to identified requesters
func (actions *Actions) Restrict() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := getlog(c)
		if getToken(c) == "" {
			log.Warn().Str("section", "restrict").Msg("Missing token")
			abortWithError(c, Unauthorized, "Unauthorized")
			return
		}
		if _, ok := c.Get("auth_roles"); !ok {
			log.Warn().Str("section", "restrict:token").Msg("Invalid token received")
			abortWithError(c, Unauthorized, "Unauthorized")
			return
		}
		c.Next()
	}
}

// HasPerm middleware
func (actions *Actions) HasPerm(alias string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roles := getRoles(c)
		if authCache.HasAnyPerm(roles, alias) {
			c.Next()
			return
		}
		log := getlog(c)
		log.Debug().Str("section", "has_perm").
			Str("perm_alias", alias).
			Strs("roles", roles).
			Msg("Invalid access to restricted resource")
		abortWithError(c, AccessDenied, "Access Denied")
	}
}

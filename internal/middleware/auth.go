package middleware

import "github.com/gin-gonic/gin"

// AdminRealm is announced in the WWW-Authenticate header.
const AdminRealm = "cryptorec admin"

// AdminAuth guards a route group with HTTP basic auth for a single account.
func AdminAuth(user, password string) gin.HandlerFunc {
	return gin.BasicAuthForRealm(gin.Accounts{user: password}, AdminRealm)
}

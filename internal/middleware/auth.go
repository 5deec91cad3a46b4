package middleware

import (
	"net/http"
	"strings"

	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const ClaimsKey = "claims"

// JWTClaims travel inside every access token. Rol is "admin" or "mecanico";
// route groups gate on it via RequireRole.
type JWTClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Rol      string `json:"rol"`
	jwt.RegisteredClaims
}

// JWTAuth validates the Bearer token on every protected route and stores the
// parsed claims on the context.
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		encabezado := c.GetHeader("Authorization")
		crudo, ok := strings.CutPrefix(encabezado, "Bearer ")
		if !ok || crudo == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Autenticacion requerida"))
			return
		}

		claims := &JWTClaims{}
		token, err := jwt.ParseWithClaims(crudo, claims, func(t *jwt.Token) (interface{}, error) {
			// HS256 only; reject anything signed with another method.
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Token invalido o expirado"))
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// RequireRole rejects requests whose token role is not in the allowed list.
func RequireRole(roles ...string) gin.HandlerFunc {
	permitidos := make(map[string]bool, len(roles))
	for _, rol := range roles {
		permitidos[rol] = true
	}
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil || !permitidos[claims.Rol] {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("Permisos insuficientes"))
			return
		}
		c.Next()
	}
}

// GetClaims returns the typed claims stored by JWTAuth, or nil outside a
// protected route.
func GetClaims(c *gin.Context) *JWTClaims {
	claims, _ := c.Get(ClaimsKey)
	typed, _ := claims.(*JWTClaims)
	return typed
}

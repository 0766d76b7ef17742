package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var jwtSecret = []byte("ai-diary-secret")

// SetSecret replaces the signing secret; called once from main with the
// configured value when one is set.
func SetSecret(s string) {
	if s != "" {
		jwtSecret = []byte(s)
	}
}

// Sign issues a 7-day HS256 token for the account.
func Sign(accountID int, email string) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid":   accountID,
		"email": email,
		"exp":   time.Now().Add(7 * 24 * time.Hour).Unix(),
	}).SignedString(jwtSecret)
}

func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		token, err := jwt.Parse(auth[7:], func(t *jwt.Token) (interface{}, error) {
			return jwtSecret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		claims := token.Claims.(jwt.MapClaims)
		uid, ok := claims["uid"].(float64)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		email, _ := claims["email"].(string)
		c.Set("account_id", int(uid))
		c.Set("account_email", email)

		// Renew when under a day remains.
		if exp, ok := claims["exp"].(float64); ok {
			if time.Until(time.Unix(int64(exp), 0)) < 24*time.Hour {
				if newToken, err := Sign(int(uid), email); err == nil {
					c.Header("X-New-Token", newToken)
				}
			}
		}

		c.Next()
	}
}

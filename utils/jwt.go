package utils

import (
	"fmt"
	"os"
	"time"
	"usedcom_backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// GenerateToken issues an HS256 token carrying the caller's identity and role.
func GenerateToken(user *models.User, expiresIn time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(expiresIn).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

// ParseToken validates a raw token string and returns its claims.
func ParseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("token is invalid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	// Check token expiration
	if exp, ok := claims["exp"].(float64); ok {
		if time.Now().Unix() > int64(exp) {
			return nil, fmt.Errorf("token has expired")
		}
	}

	return claims, nil
}

// AuthMiddleware authenticates the request and stores the caller's identity
// in Locals as the per-request authenticated-identity value.
func AuthMiddleware(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("No token provided", nil))
	}

	var tokenString string
	fmt.Sscanf(authHeader, "Bearer %s", &tokenString)

	if tokenString == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Token format is invalid", nil))
	}

	claims, err := ParseToken(tokenString)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse(err.Error(), nil))
	}

	if userID, ok := claims["user_id"].(string); ok {
		c.Locals("user_id", userID)
	}
	if email, ok := claims["email"].(string); ok {
		c.Locals("email", email)
	}
	if role, ok := claims["role"].(string); ok {
		c.Locals("role", role)
	}

	return c.Next()
}

// RequireAdmin gates broker dashboard endpoints on the admin role claim.
func RequireAdmin(c *fiber.Ctx) error {
	if role, _ := c.Locals("role").(string); role != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse("Admin access required", nil))
	}
	return c.Next()
}

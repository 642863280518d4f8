package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"af-logistics/constants"
	userModel "af-logistics/models/user"
	"af-logistics/types"
)

const trackingPrefix = "AFL"

const trackingSuffixAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateTrackingID builds an external tracking key: the AFL prefix, the
// last eight digits of the current unix-millisecond clock and four random
// base36 characters.
func GenerateTrackingID() string {
	millis := fmt.Sprintf("%d", time.Now().UnixMilli())
	if len(millis) > 8 {
		millis = millis[len(millis)-8:]
	}

	var sb strings.Builder
	for i := 0; i < 4; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(trackingSuffixAlphabet))))
		if err != nil {
			// crypto/rand only fails when the platform source is broken;
			// fall back to a clock-derived index.
			n = big.NewInt(time.Now().UnixNano() % int64(len(trackingSuffixAlphabet)))
		}
		sb.WriteByte(trackingSuffixAlphabet[n.Int64()])
	}

	return trackingPrefix + millis + sb.String()
}

// Base delivery fees by service level, plus a per-kg surcharge above the
// included five kilograms.
const (
	baseFeeExpress  = 3500
	baseFeeStandard = 2000
	baseFeeEconomy  = 1200

	includedWeightKg  = 5
	weightChargePerKg = 200
)

// CalculatePrice computes the booking price from delivery type and package
// weight. The result is fixed at creation and never recomputed afterwards.
func CalculatePrice(deliveryType string, weightKg float64) (float64, error) {
	if weightKg < 0 {
		return 0, fmt.Errorf("package weight cannot be negative")
	}

	var base float64
	switch deliveryType {
	case "express":
		base = baseFeeExpress
	case "standard":
		base = baseFeeStandard
	case "economy":
		base = baseFeeEconomy
	default:
		return 0, fmt.Errorf("unknown delivery type %q", deliveryType)
	}

	var weightCharge float64
	if weightKg > includedWeightKg {
		weightCharge = (weightKg - includedWeightKg) * weightChargePerKg
	}

	return base + weightCharge, nil
}

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a plaintext password against a stored bcrypt hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// GenerateToken issues a signed HMAC token for the user with the permission
// strings for their role embedded in the claims.
func GenerateToken(u *userModel.User) (string, error) {
	claims := jwt.MapClaims{
		"uuid":        u.Uuid,
		"name":        u.Name,
		"email":       u.Email,
		"role":        u.Role,
		"permissions": constants.PermissionsForRole(u.Role),
		"exp":         time.Now().Add(24 * time.Hour).Unix(),
		"iat":         time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// VerifyToken parses and validates a token string issued by GenerateToken.
func VerifyToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret(), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse JWT: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid JWT token")
	}
	return claims, nil
}

// ClaimString pulls a string claim out of the decoded token, or "".
func ClaimString(claims map[string]interface{}, key string) string {
	v, _ := claims[key].(string)
	return v
}

const maxLoggedBodyBytes = 8192

// CreateSanitizedLogEntry creates a deep copied, size-capped log entry for
// the async request logger.
func CreateSanitizedLogEntry(c *fiber.Ctx) types.LogEntry {
	method := string([]byte(c.Method()))
	url := string([]byte(c.OriginalURL()))
	requestBody := truncateBody(c.Body())
	responseBody := truncateBody(c.Response().Body())

	requestHeaders := make([]byte, len(c.Request().Header.Header()))
	copy(requestHeaders, c.Request().Header.Header())

	responseHeaders := make([]byte, len(c.Response().Header.Header()))
	copy(responseHeaders, c.Response().Header.Header())

	return types.LogEntry{
		Method:          method,
		URL:             url,
		RequestBody:     requestBody,
		ResponseBody:    responseBody,
		RequestHeaders:  string(requestHeaders),
		ResponseHeaders: string(responseHeaders),
		StatusCode:      c.Response().StatusCode(),
		CreatedAt:       time.Now(),
	}
}

func truncateBody(body []byte) string {
	if len(body) > maxLoggedBodyBytes {
		return string(body[:maxLoggedBodyBytes]) + "...[truncated]"
	}
	return string(append([]byte(nil), body...))
}

package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/finance-flow/models"
	"github.com/golang-jwt/jwt/v5"
)

// Bearer header parsing errors.
var (
	// ErrNoAuthorizationHeader is returned when the header is absent or blank.
	ErrNoAuthorizationHeader = errors.New("no authorization header")
	// ErrInvalidTokenFormat is returned when the header carries no token part.
	ErrInvalidTokenFormat = errors.New("invalid token format")
)

// GenerateJWTToken creates a signed HMAC-SHA256 JWT token for a user.
//
// The token carries the user id ("id") and email alongside the standard
// claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the user ID encoded as a string
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus tokenDuration
//
// Returns an error if issuer, duration or key are empty or zero.
//
// Example usage:
//
//	token, err := utils.GenerateJWTToken("finance-flow", 42, "a@b.co", 24*time.Hour, "secret")
func GenerateJWTToken(issuer string, userID int64, email string, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || tokenDuration == 0 || signKey == "" {
		return models.Token{}, errors.New("invalid params for generating JWT Token")
	}

	now := time.Now()
	claims := models.Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(userID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during singing JWT token: %w", err)
	}

	return models.Token{
		Claims:       claims,
		SignedString: tokenString,
		ExpiresAt:    claims.ExpiresAt.Time,
	}, nil
}

// ValidateAndParseJWTToken validates the given JWT token string and extracts
// its claims.
//
// Validation includes:
//   - Signature verification with HS256 and the provided sign key
//   - Issuer (iss) claim check against tokenIssuer
//   - Expiration (exp) claim check
//   - A positive user id claim
//
// Example usage:
//
//	token, err := utils.ValidateAndParseJWTToken(rawToken, "secret", "finance-flow")
//	if err != nil {
//	    // handle invalid or expired token
//	}
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string) (models.Token, error) {
	var claims models.Claims

	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	if claims.UserID <= 0 {
		return models.Token{}, errors.New("token carries no user id")
	}

	return models.Token{
		Claims:       claims,
		SignedString: tokenString,
		ExpiresAt:    claims.ExpiresAt.Time,
	}, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. Only the second space-separated part is looked at; the
// scheme word itself is not checked.
func ParseBearerToken(authorizationHeader string) (string, error) {
	if strings.TrimSpace(authorizationHeader) == "" {
		return "", ErrNoAuthorizationHeader
	}

	parts := strings.Split(authorizationHeader, " ")
	if len(parts) < 2 || parts[1] == "" {
		return "", ErrInvalidTokenFormat
	}

	return parts[1], nil
}

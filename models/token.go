package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the JWT claim set issued to a logged-in user: the standard
// registered claims plus the user id and email.
type Claims struct {
	UserID int64  `json:"id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Token wraps a signed session token together with its decoded claims.
//
// SignedString holds the compact serialized form of the token
// (header.payload.signature) ready to be returned to the client.
type Token struct {
	// Claims are the decoded (or freshly issued) claims of the token.
	Claims Claims `json:"-"`

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// ExpiresAt mirrors the "exp" claim for convenience.
	ExpiresAt time.Time `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t Token) String() string {
	return t.SignedString
}

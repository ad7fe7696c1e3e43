package models

import "time"

// Role values stored in the users.role column.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an account entity used for authentication and authorization.
// Credential and token columns are never serialized to clients.
type User struct {
	// ID is the surrogate key assigned by the database.
	ID int64 `json:"id"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Email is the unique login identifier.
	Email string `json:"email"`

	// Phone is an optional contact number.
	Phone *string `json:"phone"`

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string `json:"-"`

	// Avatar is the public path (or URL) of the uploaded avatar image.
	Avatar *string `json:"avatar"`

	// Role is either [RoleUser] or [RoleAdmin].
	Role string `json:"role"`

	// IsVerified reports whether the email address was confirmed, either by
	// the link sent at signup or by a successful OTP step-up.
	IsVerified bool `json:"isVerified"`

	// VerificationToken is the opaque token embedded in the signup email link.
	VerificationToken *string `json:"-"`

	// ResetToken and ResetTokenExpiry are set by forgot-password and cleared
	// once the password is reset.
	ResetToken       *string    `json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`

	// OTP and OTPExpiry hold the pending step-up passcode for a login from an
	// unknown device.
	OTP       *string    `json:"-"`
	OTPExpiry *time.Time `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
}

// IsAdmin reports whether the user carries the elevated role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// LoginHistory is one completed login. Rows are append-only and double as the
// device-trust ledger: a (user, user agent) pair seen here is a known device.
type LoginHistory struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	IPAddress string    `json:"ipAddress"`
	UserAgent string    `json:"userAgent"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserOverview is the admin listing row: the account plus its latest login.
type UserOverview struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Role       string     `json:"role"`
	IsVerified bool       `json:"isVerified"`
	CreatedAt  time.Time  `json:"createdAt"`
	LastLogin  *time.Time `json:"lastLogin"`
}

// ProfileUpdate carries the "supply to change, omit to leave unchanged"
// fields of a profile edit. NewPassword is only honoured together with a
// matching CurrentPassword.
type ProfileUpdate struct {
	Name            *string `json:"name,omitempty"`
	Email           *string `json:"email,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	Avatar          *string `json:"avatar,omitempty"`
	CurrentPassword *string `json:"currentPassword,omitempty"`
	NewPassword     *string `json:"newPassword,omitempty"`
}

// UserChanges is the column-level patch applied by the user repository.
// Nil fields are left untouched.
type UserChanges struct {
	Name         *string
	Email        *string
	Phone        *string
	Avatar       *string
	PasswordHash *string
}

// IsEmpty reports whether the patch changes nothing.
func (c UserChanges) IsEmpty() bool {
	return c.Name == nil && c.Email == nil && c.Phone == nil && c.Avatar == nil && c.PasswordHash == nil
}

package models

// SignupRequest is the body of POST /api/auth/signup.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /api/auth/login. IPAddress and UserAgent
// are filled from the HTTP request, never from the body.
type LoginRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	IPAddress string `json:"-"`
	UserAgent string `json:"-"`
}

// VerifyOTPRequest is the body of POST /api/auth/verify-otp.
type VerifyOTPRequest struct {
	Email     string `json:"email"`
	OTP       string `json:"otp"`
	IPAddress string `json:"-"`
	UserAgent string `json:"-"`
}

// ForgotPasswordRequest is the body of POST /api/auth/forgot-password.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest is the body of POST /api/auth/reset-password.
type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// LoginResult is what a login attempt yields: either a session (Token and
// User set) or a pending step-up challenge (RequiresOTP set, no token).
type LoginResult struct {
	Token       string `json:"token,omitempty"`
	User        *User  `json:"user,omitempty"`
	RequiresOTP bool   `json:"requiresOtp,omitempty"`
	Email       string `json:"email,omitempty"`
}

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/finance-flow/internal/logger"
	"github.com/MKhiriev/finance-flow/internal/service"
	"github.com/MKhiriev/finance-flow/models"
)

// avatarFormSlack covers the multipart framing around the image itself.
const avatarFormSlack = 1 << 20

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if !h.decode(w, r, &req) {
		return
	}

	user, err := h.services.AuthService.Signup(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.ok(w, r, http.StatusCreated, user, "User registered successfully. Please check your email to verify your account.")
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !h.decode(w, r, &req) {
		return
	}
	req.IPAddress = clientIP(r)
	req.UserAgent = r.UserAgent()

	result, err := h.services.AuthService.Login(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if result.RequiresOTP {
		h.ok(w, r, http.StatusAccepted, result, "A verification code was sent to your email")
		return
	}
	h.ok(w, r, http.StatusOK, result, "Login successful")
}

func (h *Handler) verifyOTP(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyOTPRequest
	if !h.decode(w, r, &req) {
		return
	}
	req.IPAddress = clientIP(r)
	req.UserAgent = r.UserAgent()

	result, err := h.services.AuthService.VerifyOTP(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.ok(w, r, http.StatusOK, result, "Login successful")
}

func (h *Handler) verifyEmail(w http.ResponseWriter, r *http.Request) {
	if err := h.services.AuthService.VerifyEmail(r.Context(), r.URL.Query().Get("token")); err != nil {
		h.fail(w, r, err)
		return
	}

	h.ok(w, r, http.StatusOK, nil, "Email verified successfully. You can now log in.")
}

func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ForgotPasswordRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.services.AuthService.ForgotPassword(r.Context(), req); err != nil {
		h.fail(w, r, err)
		return
	}

	h.ok(w, r, http.StatusOK, nil, "If an account with that email exists, a reset link has been sent.")
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.services.AuthService.ResetPassword(r.Context(), req); err != nil {
		h.fail(w, r, err)
		return
	}

	h.ok(w, r, http.StatusOK, nil, "Password has been reset successfully")
}

func (h *Handler) getMe(w http.ResponseWriter, r *http.Request) {
	user, err := h.services.AuthService.GetMe(r.Context(), userID(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.ok(w, r, http.StatusOK, user, "")
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	var update models.ProfileUpdate
	if !h.decode(w, r, &update) {
		return
	}

	user, err := h.services.AuthService.UpdateProfile(r.Context(), userID(r), update)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.ok(w, r, http.StatusOK, user, "Profile updated successfully")
}

func (h *Handler) uploadAvatar(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	r.Body = http.MaxBytesReader(w, r.Body, models.MaxAvatarSize+avatarFormSlack)
	if err := r.ParseMultipartForm(models.MaxAvatarSize + avatarFormSlack); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.fail(w, r, service.ErrAvatarTooLarge)
			return
		}
		log.Debug().Err(err).Msg("invalid multipart form")
		h.fail(w, r, ErrNoFileUploaded)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("avatar")
	if err != nil {
		h.fail(w, r, ErrNoFileUploaded)
		return
	}
	defer file.Close()

	user, err := h.services.AuthService.UploadAvatar(r.Context(), userID(r), models.AvatarUpload{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.ok(w, r, http.StatusOK, user, "Avatar uploaded successfully")
}

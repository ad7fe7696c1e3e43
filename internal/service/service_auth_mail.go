package service

import (
	"fmt"
	"html"
	"net/url"
	"time"

	"github.com/MKhiriev/finance-flow/models"
)

func verificationEmail(user models.User, publicURL, token string) models.EmailMessage {
	link := publicURL + "/verify-email?token=" + url.QueryEscape(token)

	return models.EmailMessage{
		To:      user.Email,
		Subject: "Verify your FinanceFlow account",
		Text: fmt.Sprintf("Hi %s,\n\nPlease confirm your email address by opening the link below:\n%s\n",
			user.Name, link),
		HTML: fmt.Sprintf(`<p>Hi %s,</p><p>Please confirm your email address:</p><p><a href="%s">Verify email</a></p>`,
			html.EscapeString(user.Name), html.EscapeString(link)),
	}
}

func otpEmail(user models.User, otp string, ttl time.Duration) models.EmailMessage {
	minutes := int(ttl.Minutes())

	return models.EmailMessage{
		To:      user.Email,
		Subject: "Your FinanceFlow login code",
		Text: fmt.Sprintf("Hi %s,\n\nA sign-in from a new device was requested. Your code is %s.\nIt expires in %d minutes.\n",
			user.Name, otp, minutes),
		HTML: fmt.Sprintf(`<p>Hi %s,</p><p>A sign-in from a new device was requested. Your code is <b>%s</b>.</p><p>It expires in %d minutes.</p>`,
			html.EscapeString(user.Name), otp, minutes),
	}
}

func resetEmail(user models.User, publicURL, token string, ttl time.Duration) models.EmailMessage {
	link := publicURL + "/reset-password?token=" + url.QueryEscape(token)
	minutes := int(ttl.Minutes())

	return models.EmailMessage{
		To:      user.Email,
		Subject: "Reset your FinanceFlow password",
		Text: fmt.Sprintf("Hi %s,\n\nUse the link below to choose a new password. It expires in %d minutes.\n%s\n\nIf you did not ask for this, ignore this email.\n",
			user.Name, minutes, link),
		HTML: fmt.Sprintf(`<p>Hi %s,</p><p><a href="%s">Choose a new password</a> (expires in %d minutes).</p><p>If you did not ask for this, ignore this email.</p>`,
			html.EscapeString(user.Name), html.EscapeString(link), minutes),
	}
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/finance-flow/internal/config"
	"github.com/MKhiriev/finance-flow/internal/logger"
	"github.com/MKhiriev/finance-flow/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSender(t *testing.T, serverURL string, retries int) EmailSender {
	t.Helper()
	cfg := config.Adapter{
		EmailURL:       serverURL,
		EmailAPIKey:    "secret-key",
		EmailFrom:      "noreply@financeflow.test",
		RequestTimeout: 2 * time.Second,
		RetryCount:     retries,
	}
	return NewHTTPEmailSender(cfg, logger.Nop())
}

var testMessage = models.EmailMessage{
	To:      "alice@example.com",
	Subject: "Your login code",
	Text:    "Your code is 123456",
	HTML:    "<p>Your code is <b>123456</b></p>",
}

func TestHTTPEmailSender_Send_Success(t *testing.T) {
	var got sendRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/send", r.URL.Path)
		assert.Equal(t, "Bearer secret-key", r.Header.Get("Authorization"))
		assert.Contains(t, r.Header.Get("Content-Type"), "application/json")

		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	s := newTestSender(t, srv.URL, 0)
	require.NoError(t, s.Send(context.Background(), testMessage))

	assert.Equal(t, "noreply@financeflow.test", got.From)
	assert.Equal(t, testMessage.To, got.To)
	assert.Equal(t, testMessage.Subject, got.Subject)
	assert.Equal(t, testMessage.Text, got.Text)
	assert.Equal(t, testMessage.HTML, got.HTML)
}

func TestHTTPEmailSender_Send_MapsStatusCodes(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"bad request", http.StatusBadRequest, ErrBadRequest},
		{"unprocessable", http.StatusUnprocessableEntity, ErrBadRequest},
		{"unauthorized", http.StatusUnauthorized, ErrUnauthorized},
		{"forbidden", http.StatusForbidden, ErrForbidden},
		{"not found", http.StatusNotFound, ErrNotFound},
		{"too many requests", http.StatusTooManyRequests, ErrTooManyRequests},
		{"bad gateway", http.StatusBadGateway, ErrBadGateway},
		{"internal", http.StatusInternalServerError, ErrInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("provider says no"))
			}))
			defer srv.Close()

			err := newTestSender(t, srv.URL, 0).Send(context.Background(), testMessage)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), "provider says no")
		})
	}
}

func TestHTTPEmailSender_Send_UnknownStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	err := newTestSender(t, srv.URL, 0).Send(context.Background(), testMessage)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 418")
}

func TestHTTPEmailSender_Send_EmptyRecipient(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	err := newTestSender(t, srv.URL, 0).Send(context.Background(), models.EmailMessage{Subject: "x"})
	assert.ErrorIs(t, err, ErrEmptyRecipient)
	assert.Zero(t, calls.Load())
}

func TestHTTPEmailSender_Send_ServerDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := newTestSender(t, url, 0).Send(context.Background(), testMessage)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSendingEmail)
}

func TestHTTPEmailSender_Send_NoAPIKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := NewHTTPEmailSender(config.Adapter{EmailURL: srv.URL}, logger.Nop())
	require.NoError(t, s.Send(context.Background(), testMessage))
}

func TestNewHTTPEmailSender_FallsBackToLog(t *testing.T) {
	s := NewHTTPEmailSender(config.Adapter{}, logger.Nop())
	_, ok := s.(*logEmailSender)
	assert.True(t, ok)
}

func TestLogEmailSender_Send(t *testing.T) {
	var buf bytes.Buffer
	s := NewLogEmailSender(logger.NewConsoleLogger("test", &buf))

	require.NoError(t, s.Send(context.Background(), testMessage))
	assert.Contains(t, buf.String(), "alice@example.com")
	assert.Contains(t, buf.String(), "Your code is 123456")

	assert.ErrorIs(t, s.Send(context.Background(), models.EmailMessage{}), ErrEmptyRecipient)
}

func TestNormalizeBaseURL(t *testing.T) {
	assert.Equal(t, "", normalizeBaseURL("  "))
	assert.Equal(t, "http://mail.local:8025", normalizeBaseURL("mail.local:8025/"))
	assert.Equal(t, "https://api.mail.test", normalizeBaseURL("https://api.mail.test"))
}

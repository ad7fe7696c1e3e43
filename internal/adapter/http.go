package adapter

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/finance-flow/internal/config"
	"github.com/MKhiriev/finance-flow/internal/logger"
	"github.com/MKhiriev/finance-flow/internal/utils"
	"github.com/MKhiriev/finance-flow/models"
)

const sendPath = "/send"

type httpEmailSender struct {
	client *utils.HTTPClient
	apiKey string
	from   string

	logger *logger.Logger
}

// sendRequest is the provider payload.
type sendRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
	HTML    string `json:"html,omitempty"`
}

// NewHTTPEmailSender returns an [EmailSender] posting JSON messages to
// cfg.EmailURL + "/send". When cfg.EmailURL is empty it falls back to
// [NewLogEmailSender].
func NewHTTPEmailSender(cfg config.Adapter, log *logger.Logger) EmailSender {
	baseURL := normalizeBaseURL(cfg.EmailURL)
	if baseURL == "" {
		log.Warn().Msg("email url is not configured: emails will only be logged")
		return NewLogEmailSender(log)
	}

	log.Debug().Str("url", baseURL).Msg("creating http email sender")
	return &httpEmailSender{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout, cfg.RetryCount),
		apiKey: cfg.EmailAPIKey,
		from:   cfg.EmailFrom,
		logger: log,
	}
}

func (h *httpEmailSender) Send(ctx context.Context, msg models.EmailMessage) error {
	if strings.TrimSpace(msg.To) == "" {
		return ErrEmptyRecipient
	}

	req := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(sendRequest{
			From:    h.from,
			To:      msg.To,
			Subject: msg.Subject,
			Text:    msg.Text,
			HTML:    msg.HTML,
		})
	if h.apiKey != "" {
		req.SetAuthToken(h.apiKey)
	}

	resp, err := req.Post(sendPath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSendingEmail, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	h.logger.Debug().Str("to", msg.To).Str("subject", msg.Subject).Msg("email sent")
	return nil
}

func normalizeBaseURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "http://" + raw
	}
	return strings.TrimRight(raw, "/")
}

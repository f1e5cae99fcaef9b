package sms

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"learnDesk/pkg/logger"
)

type SMSConfig struct {
	BaseURL    string
	APIKey     string
	SenderLine string
}

// SMSRepository sends text messages through an HTTP gateway. The
// gateway gives no delivery confirmation beyond its status code.
type SMSRepository struct {
	smsConfig SMSConfig
	client    *http.Client
}

func NewSMSRepository(cfg SMSConfig) *SMSRepository {
	return &SMSRepository{
		smsConfig: cfg,
		client:    &http.Client{Timeout: 5 * time.Second},
	}
}

type payloadSendSMS struct {
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
	Message   string `json:"message"`
}

func (r *SMSRepository) SendSMS(toPhone, message string) error {
	url := r.smsConfig.BaseURL + "/v1/messages"

	payload := payloadSendSMS{
		Sender:    r.smsConfig.SenderLine,
		Recipient: toPhone,
		Message:   message,
	}

	payloadByte, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal json payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payloadByte))
	if err != nil {
		return err
	}

	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Authorization", "Bearer "+r.smsConfig.APIKey)

	res, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 200 && res.StatusCode <= 299 {
		return nil
	}

	bodyBytes, _ := io.ReadAll(res.Body)
	logger.Warn("sms gateway negative response", "status", res.StatusCode, "body", string(bodyBytes))

	return fmt.Errorf("sms gateway return negative response %v", res.StatusCode)
}

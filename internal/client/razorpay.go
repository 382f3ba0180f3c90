package client

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"petalcart/internal/config"
)

// RazorpayClient wraps the gateway's order API and the callback
// signature scheme.
type RazorpayClient interface {
	// CreateOrder registers a pending gateway order for the given amount
	// in minor units (paise) and returns the gateway's order id.
	CreateOrder(ctx context.Context, amountPaise int64, receipt string) (string, error)
	// VerifySignature checks the callback signature for an
	// (order id, payment id) pair.
	VerifySignature(orderID, paymentID, signature string) bool
}

type razorpayClientImpl struct {
	httpClient *http.Client
	baseApiURL string
	keyID      string
	keySecret  string
}

func NewRazorpayClient(cfg *config.Razorpay) RazorpayClient {
	return &razorpayClientImpl{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		baseApiURL: cfg.BaseApiURL,
		keyID:      cfg.KeyID,
		keySecret:  cfg.KeySecret,
	}
}

type razorpayOrderResult struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func (c *razorpayClientImpl) CreateOrder(ctx context.Context, amountPaise int64, receipt string) (string, error) {
	payload := map[string]interface{}{
		"amount":   amountPaise,
		"currency": "INR",
		"capture":  true,
		"receipt":  receipt,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal req payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseApiURL+"/v1/orders",
		bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("http new request: %w", err)
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("razorpay create order: status %d: %s", resp.StatusCode, string(respBody))
	}

	var result razorpayOrderResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode create order response: %w", err)
	}
	if result.ID == "" {
		return "", fmt.Errorf("razorpay create order: empty order id")
	}

	return result.ID, nil
}

// VerifySignature recomputes HMAC-SHA256 over "order_id|payment_id" keyed
// with the key secret and compares in constant time.
func (c *razorpayClientImpl) VerifySignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(c.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}

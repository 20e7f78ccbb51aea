package chapa

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Chapa's percentage split vocabulary. Splits are decimal fractions sent as
// strings: the platform keeps 10%, the vendor subaccount receives 90%.
const (
	SplitTypePercentage = "percentage"
	AdminSplitValue     = "0.1"
	VendorSplitValue    = "0.9"

	CurrencyETB = "ETB"

	// BankCodeCBE is Chapa's code for Commercial Bank of Ethiopia, the only
	// settlement bank supported for vendor subaccounts.
	BankCodeCBE = "946"
)

type Config struct {
	SecretKey     string
	WebhookSecret string
	BaseURL       string
	Timeout       time.Duration
}

// Client talks to the Chapa REST API.
type Client struct {
	secretKey     string
	webhookSecret string
	baseURL       string
	httpClient    *http.Client
	log           *zap.Logger
}

func NewClient(cfg Config, log *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		secretKey:     cfg.SecretKey,
		webhookSecret: cfg.WebhookSecret,
		baseURL:       cfg.BaseURL,
		httpClient:    &http.Client{Timeout: timeout},
		log:           log.With(zap.String("client", "chapa")),
	}
}

// envelope is Chapa's uniform response wrapper.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type SubaccountRequest struct {
	BusinessName  string `json:"business_name"`
	AccountName   string `json:"account_name"`
	BankCode      string `json:"bank_code"`
	AccountNumber string `json:"account_number"`
	SplitType     string `json:"split_type"`
	SplitValue    string `json:"split_value"`
}

type subaccountData struct {
	SubaccountID string `json:"subaccount_id"`
}

type SplitSubaccount struct {
	ID         string `json:"id"`
	SplitType  string `json:"split_type"`
	SplitValue string `json:"split_value"`
}

type Customization struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type InitializeRequest struct {
	Amount      string            `json:"amount"`
	Currency    string            `json:"currency"`
	Email       string            `json:"email"`
	FirstName   string            `json:"first_name"`
	LastName    string            `json:"last_name"`
	TxRef       string            `json:"tx_ref"`
	CallbackURL string            `json:"callback_url"`
	ReturnURL   string            `json:"return_url"`
	Subaccounts []SplitSubaccount `json:"subaccounts"`
	Custom      *Customization    `json:"customization,omitempty"`
}

type initializeData struct {
	CheckoutURL string `json:"checkout_url"`
}

// VerifyResult is the processor's view of a transaction.
type VerifyResult struct {
	Status    string  `json:"status"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Reference string  `json:"reference"`
	TxRef     string  `json:"tx_ref"`
}

// CreateSubaccount registers a settlement destination and returns the
// processor's subaccount id.
func (c *Client) CreateSubaccount(ctx context.Context, req SubaccountRequest) (string, error) {
	var data subaccountData
	if err := c.post(ctx, "/subaccount", req, &data); err != nil {
		return "", fmt.Errorf("create subaccount for %s: %w", req.BusinessName, err)
	}

	c.log.Info("Subaccount created",
		zap.String("business_name", req.BusinessName),
		zap.String("subaccount_id", data.SubaccountID),
	)

	return data.SubaccountID, nil
}

// InitializeTransaction starts a hosted checkout session and returns the
// checkout URL the payer should be redirected to.
func (c *Client) InitializeTransaction(ctx context.Context, req InitializeRequest) (string, error) {
	var data initializeData
	if err := c.post(ctx, "/transaction/initialize", req, &data); err != nil {
		return "", fmt.Errorf("initialize transaction %s: %w", req.TxRef, err)
	}

	return data.CheckoutURL, nil
}

// VerifyTransaction queries the processor for the current state of a
// transaction by reference.
func (c *Client) VerifyTransaction(ctx context.Context, txRef string) (*VerifyResult, error) {
	url := fmt.Sprintf("%s/transaction/verify/%s", c.baseURL, txRef)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	var data VerifyResult
	if err := c.do(req, &data); err != nil {
		return nil, fmt.Errorf("verify transaction %s: %w", txRef, err)
	}

	return &data, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(jsonBody))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return fmt.Errorf("malformed response (%s): %w", resp.Status, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || env.Status != "success" {
		return fmt.Errorf("chapa request failed: %s (%s)", env.Message, resp.Status)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode response data: %w", err)
		}
	}

	return nil
}

package chapa

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

// SignatureHeader is the header Chapa signs webhook deliveries with.
const SignatureHeader = "Chapa-Signature"

// ValidSignature recomputes the HMAC-SHA256 of the raw webhook body with the
// shared webhook secret and compares it to the delivered signature in
// constant time. A missing secret fails closed.
func (c *Client) ValidSignature(signature string, body []byte) bool {
	if c.webhookSecret == "" || signature == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(c.webhookSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(strings.ToLower(signature)))
}

// WebhookEvent is the subset of Chapa's webhook payload the reconciler needs.
type WebhookEvent struct {
	Event    string `json:"event"`
	TxRef    string `json:"tx_ref"`
	TrxRef   string `json:"trx_ref"`
	RefID    string `json:"reference"`
	Status   string `json:"status"`
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// Reference returns the transaction reference, tolerating the two field
// names Chapa has used for it.
func (e WebhookEvent) Reference() string {
	if e.TxRef != "" {
		return e.TxRef
	}
	return e.TrxRef
}

func ParseWebhookEvent(body []byte) (*WebhookEvent, error) {
	var evt WebhookEvent
	if err := json.Unmarshal(body, &evt); err != nil {
		return nil, err
	}
	return &evt, nil
}

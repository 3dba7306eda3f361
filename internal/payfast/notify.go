package payfast

import (
	"encoding/json"
	"net/url"
	"strings"
)

// Notification is the gateway's instant transaction notification payload.
// Only the fields this service logs are decoded; the rest pass through in Raw.
type Notification struct {
	MPaymentID    string `json:"m_payment_id"`
	PFPaymentID   string `json:"pf_payment_id"`
	PaymentStatus string `json:"payment_status"`
	ItemName      string `json:"item_name"`
	AmountGross   string `json:"amount_gross"`
	EmailAddress  string `json:"email_address"`

	Raw map[string]string `json:"-"`
}

// ParseNotification decodes a webhook body that arrives either form-encoded
// or as JSON, depending on the gateway's configuration.
func ParseNotification(contentType string, body []byte) (*Notification, error) {
	if strings.Contains(contentType, "application/json") {
		return parseJSON(body)
	}
	return parseForm(body)
}

func parseForm(body []byte) (*Notification, error) {
	values, err := url.ParseQuery(string(body))
	if err != nil {
		return nil, err
	}
	raw := make(map[string]string, len(values))
	for key := range values {
		raw[key] = values.Get(key)
	}
	return fromRaw(raw), nil
}

func parseJSON(body []byte) (*Notification, error) {
	var fields map[string]interface{}
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	raw := make(map[string]string, len(fields))
	for key, value := range fields {
		if s, ok := value.(string); ok {
			raw[key] = s
		}
	}
	return fromRaw(raw), nil
}

func fromRaw(raw map[string]string) *Notification {
	return &Notification{
		MPaymentID:    raw["m_payment_id"],
		PFPaymentID:   raw["pf_payment_id"],
		PaymentStatus: raw["payment_status"],
		ItemName:      raw["item_name"],
		AmountGross:   raw["amount_gross"],
		EmailAddress:  raw["email_address"],
		Raw:           raw,
	}
}

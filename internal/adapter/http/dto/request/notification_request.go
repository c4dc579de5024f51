package request

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"payment_adapter/internal/domain/entities"
)

var (
	ErrMalformedNotification = errors.New("malformed notification payload")
	ErrDuplicateKey          = errors.New("duplicate key in notification payload")
)

// Notification payload keys. The gateway delivers a flat key=value body
// separated by ampersands or newlines.
const (
	keyTxID           = "txid"
	keySequenceNumber = "sequencenumber"
	keyTxAction       = "txaction"
	keyTxStatus       = "transaction_status"
	keyAmount         = "amount"
	keyCurrency       = "currency"
)

// ParseNotification decodes the raw notification body into the domain record.
// A payload with duplicate keys, whose values are all blank, or missing the
// txid or sequencenumber fields is rejected before any merge happens. The
// sequence number is the duplicate-delivery discriminator, so a defaulted
// value would collide with a legitimately bound sequence.
func ParseNotification(body string) (entities.Notification, error) {
	pairs := strings.FieldsFunc(body, func(r rune) bool {
		return r == '&' || r == '\n' || r == '\r'
	})
	if len(pairs) == 0 {
		return entities.Notification{}, ErrMalformedNotification
	}

	raw := make(map[string]string, len(pairs))
	hasValue := false
	for _, pair := range pairs {
		key, value, _ := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if key == "" {
			return entities.Notification{}, ErrMalformedNotification
		}
		decoded, err := url.QueryUnescape(value)
		if err != nil {
			return entities.Notification{}, ErrMalformedNotification
		}
		if _, exists := raw[key]; exists {
			return entities.Notification{}, ErrDuplicateKey
		}
		raw[key] = decoded
		if strings.TrimSpace(decoded) != "" {
			hasValue = true
		}
	}
	if !hasValue {
		return entities.Notification{}, ErrMalformedNotification
	}

	if strings.TrimSpace(raw[keyTxID]) == "" {
		return entities.Notification{}, ErrMalformedNotification
	}

	seqValue := strings.TrimSpace(raw[keySequenceNumber])
	if seqValue == "" {
		return entities.Notification{}, ErrMalformedNotification
	}
	seq, err := strconv.Atoi(seqValue)
	if err != nil {
		return entities.Notification{}, ErrMalformedNotification
	}

	var amount int64
	if v := strings.TrimSpace(raw[keyAmount]); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return entities.Notification{}, ErrMalformedNotification
		}
		amount = parsed
	}

	return entities.Notification{
		TransactionID: strings.TrimSpace(raw[keyTxID]),
		Sequence:      seq,
		Action:        strings.TrimSpace(raw[keyTxAction]),
		Status:        strings.TrimSpace(raw[keyTxStatus]),
		Amount:        amount,
		Currency:      strings.TrimSpace(raw[keyCurrency]),
		Raw:           raw,
	}, nil
}

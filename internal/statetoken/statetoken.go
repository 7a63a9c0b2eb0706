// Package statetoken issues and verifies fernet tokens that carry an explorer
// view state, so a view can be reopened later or on another device.
package statetoken

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fernet/fernet-go"

	"github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/apperrors"
)

// Codec encrypts and decrypts state tokens.
type Codec struct {
	keys []*fernet.Key
	ttl  time.Duration
}

// NewCodec builds a Codec from a base64 fernet key. An empty key generates a
// random one, in which case tokens only survive until the process exits.
// A ttl of zero or less means tokens never expire.
func NewCodec(encodedKey string, ttl time.Duration) (*Codec, error) {
	var key *fernet.Key
	if encodedKey == "" {
		key = new(fernet.Key)
		if err := key.Generate(); err != nil {
			return nil, fmt.Errorf("failed to generate state token key: %w", err)
		}
	} else {
		var err error
		key, err = fernet.DecodeKey(encodedKey)
		if err != nil {
			return nil, fmt.Errorf("failed to decode state token key: %w", err)
		}
	}

	if ttl <= 0 {
		ttl = -1 // fernet skips the age check for negative TTLs
	}

	return &Codec{keys: []*fernet.Key{key}, ttl: ttl}, nil
}

// Encode serialises v as JSON and seals it into a token.
func (c *Codec) Encode(v any) (string, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal token payload: %w", err)
	}

	tok, err := fernet.EncryptAndSign(payload, c.keys[0])
	if err != nil {
		return "", fmt.Errorf("failed to seal token: %w", err)
	}
	return string(tok), nil
}

// Decode verifies token and unmarshals its payload into v. Forged, corrupted
// and expired tokens all return apperrors.ErrInvalidStateToken.
func (c *Codec) Decode(token string, v any) error {
	payload := fernet.VerifyAndDecrypt([]byte(token), c.ttl, c.keys)
	if payload == nil {
		return apperrors.ErrInvalidStateToken
	}

	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidStateToken, err)
	}
	return nil
}

// GenerateKey returns a new random key in the encoding NewCodec accepts.
func GenerateKey() (string, error) {
	var key fernet.Key
	if err := key.Generate(); err != nil {
		return "", fmt.Errorf("failed to generate key: %w", err)
	}
	return key.Encode(), nil
}

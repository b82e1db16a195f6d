package neutronpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Sign computes the request signature for the token-signature handshake:
// an HMAC-SHA256 over "{apiKey}&payload={payload}" keyed by apiSecret,
// returned as a lowercase hex digest.
func Sign(apiKey, apiSecret, payload string) string {
	mac := hmac.New(sha256.New, []byte(apiSecret))
	mac.Write([]byte(apiKey + "&payload=" + payload))
	return hex.EncodeToString(mac.Sum(nil))
}

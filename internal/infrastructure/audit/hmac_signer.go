package audit

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// SignEntry computes the base64 HMAC-SHA256 signature of a serialized audit
// entry.
func SignEntry(payload []byte, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(payload)
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// VerifyEntry reports whether the signature matches the payload.
func VerifyEntry(payload []byte, secret, signature string) bool {
	return hmac.Equal([]byte(SignEntry(payload, secret)), []byte(signature))
}

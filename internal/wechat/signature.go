package wechat

import (
	"crypto/sha1"
	"encoding/hex"
	"sort"
	"strings"
)

// VerifySignature checks that a webhook call originated from the WeChat
// platform: the token, timestamp and nonce are sorted lexicographically,
// concatenated and SHA-1 hashed, and the digest must match the signature.
func VerifySignature(token, signature, timestamp, nonce string) bool {
	if token == "" || signature == "" || timestamp == "" || nonce == "" {
		return false
	}

	params := []string{token, timestamp, nonce}
	sort.Strings(params)

	digest := sha1.Sum([]byte(strings.Join(params, "")))
	return hex.EncodeToString(digest[:]) == signature
}

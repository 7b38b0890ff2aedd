package wechat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifySignature(t *testing.T) {
	// sha1 of "1111111700000000abc123" (sorted token, timestamp, nonce)
	const valid = "49eee1c2eece4b5116f955383dfd1962b5049774"

	assert.True(t, VerifySignature("111111", valid, "1700000000", "abc123"))
	assert.False(t, VerifySignature("111111", "deadbeef", "1700000000", "abc123"))
	assert.False(t, VerifySignature("222222", valid, "1700000000", "abc123"))
}

func TestVerifySignatureEmptyParams(t *testing.T) {
	assert.False(t, VerifySignature("", "sig", "ts", "nonce"))
	assert.False(t, VerifySignature("token", "", "ts", "nonce"))
	assert.False(t, VerifySignature("token", "sig", "", "nonce"))
	assert.False(t, VerifySignature("token", "sig", "ts", ""))
}

// Package proxy verifies App Proxy request signatures. Shopify signs the
// forwarded query string so the app can trust storefront-originated calls.
package proxy

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
)

// Sign computes the App Proxy signature for a query. The signed payload is
// every parameter except "signature" as "k=v", multi-values comma-joined,
// sorted by key and concatenated without a separator.
func Sign(query url.Values, secret string) string {
	keys := make([]string, 0, len(query))
	for k := range query {
		if k == "signature" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var payload strings.Builder
	for _, k := range keys {
		payload.WriteString(k)
		payload.WriteString("=")
		payload.WriteString(strings.Join(query[k], ","))
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload.String()))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks the "signature" query parameter against the app
// secret using a constant-time compare.
func VerifySignature(query url.Values, secret string) bool {
	sig := query.Get("signature")
	if sig == "" || secret == "" {
		return false
	}
	expected := Sign(query, secret)
	return hmac.Equal([]byte(expected), []byte(sig))
}

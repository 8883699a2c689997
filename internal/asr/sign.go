package asr

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"net/url"
	"sort"
	"strings"
)

// Sign computes the vendor request signature: parameters named "signature"
// or with empty values are dropped, the rest are sorted by key, URL-encoded
// and joined as key=value pairs with '&', then HMAC-SHA1'd with the shared
// secret and base64-encoded. An empty secret yields an empty signature,
// which the service treats as unsigned mode.
//
// The result depends only on the parameter set, never on map iteration
// order.
func Sign(params map[string]string, secret string) string {
	if secret == "" {
		return ""
	}
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if k == "signature" || v == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(params[k]))
	}

	mac := hmac.New(sha1.New, []byte(secret))
	mac.Write([]byte(b.String()))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

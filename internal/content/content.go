// Package content wraps the portal's public and admin endpoints: news,
// faculties, downloads, the AI house, the incubator and analytics. Every
// service rides the shared api.Client pipeline, so bearer attachment, CSRF
// and the 401 retry semantics apply uniformly.
package content

import (
	"net/url"

	"uniportal.org/internal/api"
)

// Created is the backend's create confirmation envelope.
type Created struct {
	Message string     `json:"message"`
	ID      api.FlexID `json:"id"`
}

func encodeQuery(v url.Values) string {
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

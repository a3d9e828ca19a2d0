package tokens

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"uniportal.org/internal/authz"
)

// Identity is the projection of an access token payload the client cares
// about. It is trust-on-read: the payload is decoded without signature
// verification, so it is only used to pre-fill state before the server
// verifies the token for real.
type Identity struct {
	UserID    string
	Role      authz.Role
	CollegeID string
	FacultyID string
}

var unverifiedParser = jwt.NewParser()

// IsExpired reports whether the token's embedded expiry is at or before now.
// Malformed tokens count as expired; a token without an exp claim does not.
// This is a pre-flight optimization, not a security boundary: the backend's
// verify and refresh endpoints remain authoritative.
func IsExpired(token string) bool {
	if token == "" {
		return true
	}
	claims := jwt.MapClaims{}
	if _, _, err := unverifiedParser.ParseUnverified(token, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return true
	}
	if exp == nil {
		return false
	}
	return !exp.After(time.Now())
}

// ParseIdentity decodes the identity claims from an access token without
// verifying its signature. Returns ok=false for malformed tokens or tokens
// missing a subject.
func ParseIdentity(token string) (Identity, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := unverifiedParser.ParseUnverified(token, claims); err != nil {
		return Identity{}, false
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return Identity{}, false
	}
	id := Identity{UserID: sub}
	if role, ok := claims["role"].(string); ok {
		id.Role = authz.Role(role)
	}
	id.CollegeID = claimString(claims, "college_id")
	id.FacultyID = claimString(claims, "faculty_id")
	return id, true
}

// claimString stringifies a claim that backends emit either as a string or a
// JSON number. Absent or null claims yield "".
func claimString(claims jwt.MapClaims, key string) string {
	switch v := claims[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

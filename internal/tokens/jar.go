package tokens

import (
	"net/http"
	"net/url"
	"time"
)

// JarStore reads the credential pair out of an http.CookieJar, mirroring the
// browser arrangement where the backend sets the token cookies itself and the
// client only reads them back.
type JarStore struct {
	jar  http.CookieJar
	base *url.URL
}

func NewJarStore(jar http.CookieJar, base *url.URL) *JarStore {
	return &JarStore{jar: jar, base: base}
}

func (j *JarStore) Get(name string) (string, bool) {
	if j.jar == nil || j.base == nil {
		return "", false
	}
	for _, c := range j.jar.Cookies(j.base) {
		if c.Name == name && c.Value != "" {
			return c.Value, true
		}
	}
	return "", false
}

func (j *JarStore) Set(name, value string) {
	if j.jar == nil || j.base == nil {
		return
	}
	j.jar.SetCookies(j.base, []*http.Cookie{{Name: name, Value: value, Path: "/"}})
}

// Remove expires the named cookies in the jar. The jar drops expired cookies
// on its next read, so removal of absent cookies is harmless.
func (j *JarStore) Remove(names ...string) {
	if j.jar == nil || j.base == nil {
		return
	}
	expired := make([]*http.Cookie, 0, len(names))
	for _, name := range names {
		expired = append(expired, &http.Cookie{
			Name:    name,
			Value:   "",
			Path:    "/",
			MaxAge:  -1,
			Expires: time.Unix(0, 0),
		})
	}
	j.jar.SetCookies(j.base, expired)
}

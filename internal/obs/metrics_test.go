package obs

import "testing"

func TestCanonicalPath(t *testing.T) {
	cases := map[string]string{
		"":                            "/",
		"/metrics":                    "/metrics",
		"/news/42":                    "/news/:id",
		"/news/latest?limit=5":        "/news/latest",
		"/faculties/7/departments":    "/faculties/:id/departments",
		"/downloads/file/19":          "/downloads/file/:id",
		"/analytics/page/%2Fabout":    "/analytics/page/:id",
		"/auth/login":                 "/auth/login",
		"/incubator/startups/3":       "/incubator/startups/:id",
		"/ai-house/projects/11?x=1":   "/ai-house/projects/:id",
		"/incubator/programs":         "/incubator/programs",
		"/downloads/files?faculty=12": "/downloads/files",
	}
	for input, expected := range cases {
		if got := CanonicalPath(input); got != expected {
			t.Fatalf("CanonicalPath(%q)=%q, want %q", input, got, expected)
		}
	}
}

package router

import (
	"reflect"
	"testing"
)

func TestRouteSetOrdersStaticBeforeWildcard(t *testing.T) {
	set, err := NewRouteSet([]string{
		"/posts/[slug]",
		"/posts/categories",
		"/posts/category/[slug]",
		"/",
		"/posts",
	})
	if err != nil {
		t.Fatalf("new route set: %v", err)
	}

	expected := []string{
		"/posts/category/[slug]",
		"/posts/categories",
		"/posts",
		"/posts/[slug]",
		"/",
	}
	if got := set.Patterns(); !reflect.DeepEqual(got, expected) {
		t.Fatalf("expected order %v, got %v", expected, got)
	}
}

func TestRouteSetConflict(t *testing.T) {
	if _, err := NewRouteSet([]string{"/posts/[slug]", "/posts/[id]"}); err == nil {
		t.Fatal("expected conflict error, got nil")
	}
}

func TestRouteSetRejectsMalformedPatterns(t *testing.T) {
	cases := []string{"", "posts", "/posts/[slug", "/posts/[]"}
	for _, pattern := range cases {
		if _, err := NewRouteSet([]string{pattern}); err == nil {
			t.Fatalf("expected error for pattern %q, got nil", pattern)
		}
	}
}

func TestMatchPathPattern(t *testing.T) {
	tests := []struct {
		name        string
		pattern     string
		path        string
		expectMatch bool
		expectedKey string
		expectedVal string
	}{
		{name: "root", pattern: "/", path: "/", expectMatch: true},
		{name: "static", pattern: "/posts", path: "/posts", expectMatch: true},
		{name: "trailing slash", pattern: "/posts", path: "/posts/", expectMatch: true},
		{
			name:        "wildcard",
			pattern:     "/posts/[slug]",
			path:        "/posts/hello-world",
			expectMatch: true,
			expectedKey: "slug",
			expectedVal: "hello-world",
		},
		{
			name:        "nested wildcard",
			pattern:     "/posts/category/[slug]",
			path:        "/posts/category/tech",
			expectMatch: true,
			expectedKey: "slug",
			expectedVal: "tech",
		},
		{name: "shorter path", pattern: "/posts/category/[slug]", path: "/posts/category"},
		{name: "different static", pattern: "/posts", path: "/products"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			params, ok := MatchPathPattern(tc.pattern, tc.path)
			if ok != tc.expectMatch {
				t.Fatalf("expected match=%v for %q against %q", tc.expectMatch, tc.path, tc.pattern)
			}
			if !tc.expectMatch || tc.expectedKey == "" {
				return
			}
			if got := params[tc.expectedKey]; got != tc.expectedVal {
				t.Fatalf("expected param %q=%q, got %q", tc.expectedKey, tc.expectedVal, got)
			}
		})
	}
}

func TestIsValidSlug(t *testing.T) {
	valid := []string{"hello-world", "example-post", "v2", "a.b_c-d"}
	for _, slug := range valid {
		if !IsValidSlug(slug) {
			t.Fatalf("expected %q to be a valid slug", slug)
		}
	}

	invalid := []string{"", "bad slug", "-leading", "semi;colon", "query?x"}
	for _, slug := range invalid {
		if IsValidSlug(slug) {
			t.Fatalf("expected %q to be an invalid slug", slug)
		}
	}
}

package router

import (
	"errors"
	"fmt"
	"path"
	"regexp"
	"sort"
	"strings"
)

var (
	dynamicSegmentNamePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)
	slugPattern               = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)
)

type pathSegment struct {
	name    string
	isParam bool
}

type route struct {
	pattern     string
	segments    []pathSegment
	staticCount int
	shapeKey    string
}

// RouteSet holds a validated set of path patterns ordered so that static
// segments take precedence over wildcard segments.
type RouteSet struct {
	routes []route
}

// NewRouteSet parses declared patterns such as "/posts/[slug]", rejects
// duplicates that would match the same requests, and fixes the matching order.
func NewRouteSet(patterns []string) (*RouteSet, error) {
	if len(patterns) == 0 {
		return nil, errors.New("route set cannot be empty")
	}

	routes := make([]route, 0, len(patterns))
	seenShape := make(map[string]string, len(patterns))

	for _, pattern := range patterns {
		parsed, err := parseRoute(pattern)
		if err != nil {
			return nil, err
		}

		if existing, ok := seenShape[parsed.shapeKey]; ok {
			return nil, fmt.Errorf("route pattern conflict: %q and %q", existing, parsed.pattern)
		}
		seenShape[parsed.shapeKey] = parsed.pattern
		routes = append(routes, parsed)
	}

	sort.Slice(routes, func(i int, j int) bool {
		left := routes[i]
		right := routes[j]

		if left.staticCount != right.staticCount {
			return left.staticCount > right.staticCount
		}
		if len(left.segments) != len(right.segments) {
			return len(left.segments) > len(right.segments)
		}
		return left.pattern < right.pattern
	})

	return &RouteSet{routes: routes}, nil
}

// Patterns returns the declared patterns in matching order.
func (set *RouteSet) Patterns() []string {
	patterns := make([]string, 0, len(set.routes))
	for _, r := range set.routes {
		patterns = append(patterns, r.pattern)
	}
	return patterns
}

func parseRoute(pattern string) (route, error) {
	trimmed := strings.TrimSpace(pattern)
	if trimmed == "" || !strings.HasPrefix(trimmed, "/") {
		return route{}, fmt.Errorf("route pattern %q must start with /", pattern)
	}

	parts := splitPathSegments(trimmed)
	segments := make([]pathSegment, 0, len(parts))
	shapeParts := make([]string, 0, len(parts))
	staticCount := 0

	for _, part := range parts {
		name, isParam, err := parseWildcardSegment(part)
		if err != nil {
			return route{}, fmt.Errorf("route pattern %q: %w", pattern, err)
		}

		if isParam {
			segments = append(segments, pathSegment{name: name, isParam: true})
			shapeParts = append(shapeParts, ":")
			continue
		}

		segments = append(segments, pathSegment{name: part, isParam: false})
		shapeParts = append(shapeParts, part)
		staticCount++
	}

	shapeKey := "/"
	if len(shapeParts) > 0 {
		shapeKey = "/" + strings.Join(shapeParts, "/")
	}

	return route{
		pattern:     trimmed,
		segments:    segments,
		staticCount: staticCount,
		shapeKey:    shapeKey,
	}, nil
}

func parseWildcardSegment(segment string) (string, bool, error) {
	if strings.HasPrefix(segment, "[") || strings.HasSuffix(segment, "]") {
		if !strings.HasPrefix(segment, "[") || !strings.HasSuffix(segment, "]") {
			return "", false, fmt.Errorf("invalid wildcard segment %q", segment)
		}

		name := strings.TrimSpace(segment[1 : len(segment)-1])
		if !dynamicSegmentNamePattern.MatchString(name) {
			return "", false, fmt.Errorf("invalid wildcard name %q", name)
		}

		return name, true, nil
	}

	if strings.ContainsAny(segment, "[]") {
		return "", false, fmt.Errorf("invalid static segment %q", segment)
	}

	return "", false, nil
}

// MatchPathPattern matches a request path against a single pattern and
// extracts wildcard values.
func MatchPathPattern(pattern string, requestPath string) (map[string]string, bool) {
	patternSegments := splitPathSegments(pattern)
	requestSegments := splitPathSegments(requestPath)
	if len(patternSegments) != len(requestSegments) {
		return nil, false
	}

	params := make(map[string]string, 2)
	for idx, patternSegment := range patternSegments {
		name, isParam, err := parseWildcardSegment(patternSegment)
		if err != nil {
			return nil, false
		}

		requestSegment := requestSegments[idx]
		if !isParam {
			if patternSegment != requestSegment {
				return nil, false
			}
			continue
		}

		params[name] = requestSegment
	}

	return params, true
}

// IsValidSlug reports whether a wildcard value looks like a URL-safe slug.
func IsValidSlug(value string) bool {
	return slugPattern.MatchString(value)
}

func splitPathSegments(raw string) []string {
	cleaned := path.Clean("/" + strings.TrimSpace(raw))
	if cleaned == "/" {
		return []string{}
	}

	trimmed := strings.Trim(cleaned, "/")
	if trimmed == "" {
		return []string{}
	}

	return strings.Split(trimmed, "/")
}

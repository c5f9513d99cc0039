package domain

import "strings"

type Route string

// DefaultRoute is where an expired or logged-out session lands.
const DefaultRoute Route = "/"

var PublicRoutes = []Route{
	"/",
	"/about",
	"/help",
	"/leaderboard",
	"/pricing",
	"/privacy-policy",
	"/terms",
	"/refund-policy",
	"/shipping-policy",
	"/contact",
}

// IsPublicRoute matches exact paths only; "/about/team" is not public.
func IsPublicRoute(route Route) bool {
	normalized := normalizeRoute(route)
	for _, public := range PublicRoutes {
		if normalized == public {
			return true
		}
	}

	return false
}

func normalizeRoute(route Route) Route {
	path := strings.TrimSpace(string(route))
	if idx := strings.IndexAny(path, "?#"); idx >= 0 {
		path = path[:idx]
	}
	if path == "" {
		return DefaultRoute
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return Route(path)
}

package router

import (
	"sync"

	"github.com/bnema/interview-prep-cli/internal/domain"
	"github.com/bnema/interview-prep-cli/internal/ports"
)

// Router tracks the route of the running command. Redirects are recorded and
// forwarded to OnNavigate so the CLI can tell the user where they landed.
type Router struct {
	mu         sync.Mutex
	current    domain.Route
	history    []domain.Route
	onNavigate func(from, to domain.Route)
}

var _ ports.Navigator = (*Router)(nil)

func New(initial domain.Route, onNavigate func(from, to domain.Route)) *Router {
	if initial == "" {
		initial = domain.DefaultRoute
	}

	return &Router{current: initial, onNavigate: onNavigate}
}

func (r *Router) CurrentRoute() domain.Route {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.current
}

// Enter sets the route without counting as a redirect.
func (r *Router) Enter(route domain.Route) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.current = route
}

func (r *Router) Navigate(route domain.Route) {
	r.mu.Lock()
	from := r.current
	r.current = route
	r.history = append(r.history, route)
	hook := r.onNavigate
	r.mu.Unlock()

	if hook != nil {
		hook(from, route)
	}
}

// Redirects lists every Navigate target in order.
func (r *Router) Redirects() []domain.Route {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]domain.Route(nil), r.history...)
}

package router

import (
	"testing"

	"github.com/bnema/interview-prep-cli/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestRouterRecordsRedirectsButNotEntries(t *testing.T) {
	var hops [][2]domain.Route
	r := New("", func(from, to domain.Route) { hops = append(hops, [2]domain.Route{from, to}) })

	assert.Equal(t, domain.DefaultRoute, r.CurrentRoute())

	r.Enter("/interview")
	assert.Equal(t, domain.Route("/interview"), r.CurrentRoute())
	assert.Empty(t, r.Redirects())

	r.Navigate(domain.DefaultRoute)
	assert.Equal(t, domain.DefaultRoute, r.CurrentRoute())
	assert.Equal(t, []domain.Route{domain.DefaultRoute}, r.Redirects())
	assert.Equal(t, [][2]domain.Route{{"/interview", "/"}}, hops)
}

package ports

import "github.com/bnema/interview-prep-cli/internal/domain"

type Navigator interface {
	CurrentRoute() domain.Route
	Navigate(route domain.Route)
}

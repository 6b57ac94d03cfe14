package usecase

import (
	"github.com/travelbuddy/gotravelbuddy/internal/travelbuddy/flightapi"
	"github.com/travelbuddy/gotravelbuddy/internal/travelbuddy/session"
)

type Dependency struct {
	Provider flightapi.Provider
	Sessions *session.Store
}

type Usecase struct {
	provider flightapi.Provider
	sessions *session.Store
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		provider: dep.Provider,
		sessions: dep.Sessions,
	}
}

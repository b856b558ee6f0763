package httpserver

import (
	"context"
	"net/http"
)

type Controller interface {
	AddRoutes(*http.ServeMux)
}

// ReadinessCheck reports whether a dependency can serve traffic right now.
type ReadinessCheck func(context.Context) error

package contracts

import "github.com/julienschmidt/httprouter"

// Handler is implemented by every HTTP handler that contributes routes to
// the application router.
type Handler interface {
	RegisterRoutes(*httprouter.Router)
}

package api

// Handlers groups all HTTP handlers behind one dependency container.
type Handlers struct {
	deps *Dependencies
}

// NewHandlers creates handlers wired to the given dependencies.
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{deps: deps}
}

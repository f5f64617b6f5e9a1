package analyzers

import (
	"github.com/Saechaoc/docgen/internal/analyzers/build"
	"github.com/Saechaoc/docgen/internal/analyzers/dependencies"
	"github.com/Saechaoc/docgen/internal/analyzers/language"
)

// RegisterDefaults registers the built-in analyzers with the registry.
// Language runs first so its signals lead the collection.
func RegisterDefaults(r *Registry) {
	r.Register(language.New())
	r.Register(dependencies.New())
	r.Register(build.New())
}

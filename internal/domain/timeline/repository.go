package timeline

import "context"

// Repository es el borde con el data-service externo: entrega un snapshot
// ya resuelto de las colecciones de una mascota.
type Repository interface {
	LoadSources(ctx context.Context, petID string) (Sources, error)
}

// SourceWriter lo implementan los repos que permiten reemplazar el snapshot
// (memory en modo dev). Los demás son de solo lectura.
type SourceWriter interface {
	ReplaceSources(ctx context.Context, petID string, src Sources) error
}

package staging

import (
	"io"

	"github.com/google/uuid"
)

// File abstrae un archivo seleccionado por el usuario (en HTTP llega como
// parte multipart; en tests se fabrica en memoria).
type File interface {
	Filename() string
	Size() int64
	ContentType() string
	Open() (io.ReadCloser, error)
}

// Staged es un archivo aceptado con su preview transitorio. El preview es un
// handle local (no una URL de storage); existe antes de cualquier llamada de red.
type Staged struct {
	File    File
	Preview string
}

// Batch es la selección vigente de un flujo. Local a una invocación del
// workflow; no se comparte entre invocaciones concurrentes.
type Batch struct {
	items []Staged
}

// Stage acepta hasta limit archivos (limit <= 0 = sin límite) y genera un
// preview por aceptado. Exceder el límite trunca en silencio, no es error.
// Sin efectos de red ni persistencia.
func Stage(files []File, limit int) Batch {
	if limit > 0 && len(files) > limit {
		files = files[:limit]
	}

	items := make([]Staged, 0, len(files))
	for _, f := range files {
		items = append(items, Staged{
			File:    f,
			Preview: "preview://" + uuid.NewString(),
		})
	}
	return Batch{items: items}
}

// Replace re-selecciona: la nueva selección reemplaza por completo la
// anterior, salvo selección vacía, que conserva el batch vigente.
func (b Batch) Replace(files []File, limit int) Batch {
	if len(files) == 0 {
		return b
	}
	return Stage(files, limit)
}

func (b Batch) Len() int { return len(b.items) }

func (b Batch) Files() []File {
	out := make([]File, 0, len(b.items))
	for _, s := range b.items {
		out = append(out, s.File)
	}
	return out
}

func (b Batch) Previews() []string {
	out := make([]string, 0, len(b.items))
	for _, s := range b.items {
		out = append(out, s.Preview)
	}
	return out
}

package notify

import "context"

// Sender es el canal de salida del formulario de contacto:
// una plantilla + mapa de campos, entrega delegada al proveedor.
type Sender interface {
	Send(ctx context.Context, templateID string, fields map[string]string) error
}

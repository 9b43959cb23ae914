package workflows

import (
	"context"

	"mypetlife-backend/internal/platform/logger"
)

// step es una etapa de la secuencia de escrituras. Cada Run toma sus inputs
// de los closures sobre los resultados de etapas anteriores; por eso la
// ejecución es estrictamente secuencial.
type step struct {
	name string
	run  func(ctx context.Context) error
}

// runSteps ejecuta en orden y corta en el primer error: si el paso i falla,
// ningún paso j > i corre. La causa se loguea acá; al caller le llega un
// StepError con el nombre del paso.
func runSteps(ctx context.Context, log logger.Logger, flow string, steps []step) error {
	for _, st := range steps {
		if err := st.run(ctx); err != nil {
			log.Error("workflow step failed", map[string]any{
				"flow":  flow,
				"step":  st.name,
				"error": err.Error(),
			})
			return &StepError{Flow: flow, Step: st.name, Err: err}
		}
	}
	return nil
}

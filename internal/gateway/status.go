package gateway

import (
	"time"

	"insurecost/pkg/types"
)

type kindReporter interface {
	Kind() string
}

// Status builds a detailed status response for /status.
func (g *Gateway) Status() types.StatusResponse {
	resp := types.StatusResponse{
		State:            string(g.state),
		ModelPath:        g.path,
		PredictionsTotal: g.predictions.Load(),
		FailuresTotal:    g.failures.Load(),
		UptimeSeconds:    int64(time.Since(g.startTime).Seconds()),
	}
	if g.loadErr != nil {
		resp.Error = g.loadErr.Error()
	}
	if g.state == StateReady {
		resp.LoadedAtUnix = g.loadedAt.Unix()
		if sv, ok := g.predictor.(schemaVersioned); ok {
			resp.Schema = sv.Schema()
		}
		if kr, ok := g.predictor.(kindReporter); ok {
			resp.Regressor = kr.Kind()
		}
	}
	return resp
}

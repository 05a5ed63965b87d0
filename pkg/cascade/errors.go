package cascade

import "errors"

// ErrNoConvergence is returned when the alive masks keep changing past the
// iteration bound. Every iteration of a correct engine only removes nodes, so
// seeing this error means a propagation step stopped being monotone.
var ErrNoConvergence = errors.New("cascade did not converge")

// ErrWorkerPanic marks a batch item whose evaluation panicked.
var ErrWorkerPanic = errors.New("cascade worker panicked")

package async

import "context"

// Worker is a long running component started by the api binary. Run must call
// done once it has fully stopped.
type Worker interface {
	Run(context.Context, func())
	Shutdown()
}

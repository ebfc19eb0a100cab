// Package providers wires the ShelfPost services into the samber/do container.
package providers

import "time"

// shutdownTimeout bounds graceful shutdown of every provided service.
const shutdownTimeout = 30 * time.Second

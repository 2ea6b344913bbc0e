// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"net/http"
	"time"

	"github.com/ava-labs/avalanchego/utils/logging"
	"go.uber.org/zap"
)

// Wrapper decorates the root handler of a [Server].
type Wrapper interface {
	WrapHandler(h http.Handler) http.Handler
}

type requestLogger struct {
	log logging.Logger
}

// NewRequestLogger logs every request at debug level.
func NewRequestLogger(log logging.Logger) Wrapper {
	return &requestLogger{log: log}
}

func (l *requestLogger) WrapHandler(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		h.ServeHTTP(w, r)
		l.log.Debug("served request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

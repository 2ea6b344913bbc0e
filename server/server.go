// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package server serves the node's HTTP routes behind CORS, gzip and a host
// allow-list.
package server

import (
	"context"
	"net"
	"net/http"

	"github.com/NYTimes/gziphandler"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/ava-labs/storymint/config"
)

var _ Server = (*server)(nil)

type Server interface {
	// AddRoute serves [handler] at [path]. A path can be added once.
	AddRoute(handler http.Handler, path string) error
	// Dispatch blocks serving requests until Shutdown is called.
	Dispatch() error
	Shutdown() error
	Addr() net.Addr
}

type server struct {
	log      logging.Logger
	cfg      config.HTTPConfig
	router   *router
	srv      *http.Server
	listener net.Listener
}

// New wraps the router so that host filtering runs first, then CORS, then
// gzip, then each of [wrappers] in order.
func New(log logging.Logger, listener net.Listener, cfg config.HTTPConfig, wrappers ...Wrapper) Server {
	r := newRouter()
	var handler http.Handler = filterInvalidHosts(r, cfg.AllowedHosts)
	handler = cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
	}).Handler(handler)
	handler = gziphandler.GzipHandler(handler)
	for _, w := range wrappers {
		handler = w.WrapHandler(handler)
	}

	log.Info("API created",
		zap.Strings("allowedOrigins", cfg.AllowedOrigins),
		zap.Strings("allowedHosts", cfg.AllowedHosts),
	)
	return &server{
		log:    log,
		cfg:    cfg,
		router: r,
		srv: &http.Server{
			Handler:           handler,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadHeaderTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       cfg.IdleTimeout,
		},
		listener: listener,
	}
}

func (s *server) Dispatch() error {
	s.log.Info("serving API", zap.Stringer("address", s.listener.Addr()))
	return s.srv.Serve(s.listener)
}

func (s *server) Addr() net.Addr {
	return s.listener.Addr()
}

func (s *server) AddRoute(handler http.Handler, path string) error {
	s.log.Info("adding route", zap.String("path", path))
	return s.router.AddRoute(path, handler)
}

func (s *server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	err := s.srv.Shutdown(ctx)
	// Connections still open after the timeout are dropped.
	_ = s.srv.Close()
	return err
}

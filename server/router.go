// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
)

var errAlreadyReserved = errors.New("path is already reserved")

var _ http.Handler = (*router)(nil)

type router struct {
	lock   sync.RWMutex
	router *mux.Router

	// Paths that have been registered.
	routes map[string]struct{}
}

func newRouter() *router {
	return &router{
		router: mux.NewRouter(),
		routes: make(map[string]struct{}),
	}
}

func (r *router) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	r.router.ServeHTTP(writer, request)
}

func (r *router) AddRoute(path string, handler http.Handler) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, exists := r.routes[path]; exists {
		return fmt.Errorf("%w: %s", errAlreadyReserved, path)
	}
	r.routes[path] = struct{}{}
	r.router.Handle(path, handler)
	return nil
}

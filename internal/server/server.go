/*
Copyright 2025 Piotr Janik.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-logr/logr"
	logf "sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/cogniteo/appwrite-clients/pkg/appwrite"
	"github.com/cogniteo/appwrite-clients/pkg/session"
)

const shutdownTimeout = 10 * time.Second

// Server exposes the Appwrite client factories over HTTP
type Server struct {
	engine  *gin.Engine
	backend Backend
	log     logr.Logger
}

// New creates a new server using backend for every request
func New(backend Backend, log logr.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		engine:  gin.New(),
		backend: backend,
		log:     log,
	}
	s.engine.Use(gin.Recovery(), s.requestLogger())
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.engine.Group("/api")
	api.GET("/account", s.getAccount)
	api.POST("/session", s.createSession)
}

// Handler returns the HTTP handler serving all routes
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Starting HTTP server", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to serve HTTP: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down HTTP server: %w", err)
	}
	return nil
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Request = c.Request.WithContext(logf.IntoContext(c.Request.Context(), s.log))
		c.Next()

		s.log.V(1).Info("Handled request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"latency", time.Since(start).String())
	}
}

func (s *Server) getAccount(c *gin.Context) {
	ctx := c.Request.Context()

	accounts, err := s.backend.SessionAccount(ctx, session.NewRequestStore(c.Request))
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	user, err := accounts.Get()
	if err != nil {
		s.abortWithError(c, fmt.Errorf("failed to get account: %w", err))
		return
	}

	c.JSON(http.StatusOK, user)
}

type createSessionRequest struct {
	UserID string `json:"userId" binding:"required"`
	Secret string `json:"secret" binding:"required"`
}

func (s *Server) createSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	accounts, err := s.backend.AdminAccount(ctx)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	created, err := accounts.CreateSession(req.UserID, req.Secret)
	if err != nil {
		s.abortWithError(c, fmt.Errorf("failed to create session for %s: %w", req.UserID, err))
		return
	}

	// Expire is ISO 8601; an unparsable value leaves a browser-session cookie
	expire, err := time.Parse(time.RFC3339, created.Expire)
	if err != nil {
		logf.FromContext(ctx).V(1).Info("Unparsable session expiry, issuing browser-session cookie",
			"userId", req.UserID, "expire", created.Expire, "error", err.Error())
	}
	http.SetCookie(c.Writer, session.NewSessionCookie(created.Secret, expire))

	c.JSON(http.StatusCreated, gin.H{"userId": req.UserID})
}

func (s *Server) abortWithError(c *gin.Context, err error) {
	if errors.Is(err, appwrite.ErrNoSession) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	if errors.Is(err, ErrAdminDisabled) {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	logf.FromContext(c.Request.Context()).Error(err, "Appwrite request failed", "path", c.FullPath())
	c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "upstream request failed"})
}

package server

import (
	"io/fs"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-joinform/pkg/submit"
)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger for request and pipeline diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMaxUploadBytes caps the size of a posted body.
func WithMaxUploadBytes(limit int64) Option {
	return func(s *Server) {
		if limit > 0 {
			s.maxUpload = limit
		}
	}
}

// WithTimeouts sets the HTTP read/write timeouts and the shutdown grace
// period. Zero values keep the defaults.
func WithTimeouts(read, write, shutdown time.Duration) Option {
	return func(s *Server) {
		if read > 0 {
			s.readTimeout = read
		}
		if write > 0 {
			s.writeTimeout = write
		}
		if shutdown > 0 {
			s.shutdownGrace = shutdown
		}
	}
}

// WithAssets serves files under /assets/.
func WithAssets(files fs.FS) Option {
	return func(s *Server) {
		s.assets = files
	}
}

// WithPipelineOptions forwards options to every per-request pipeline.
func WithPipelineOptions(options ...submit.PipelineOption) Option {
	return func(s *Server) {
		s.pipelineOptions = append(s.pipelineOptions, options...)
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the levelled loggers shared by the site and the
// content CLI on top of go-logger.
package logging

import (
	"fmt"
	"strings"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/pdiddy/folio/pkg/types"
)

// Logger is the subset of go-logger used across the module.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Provider hands out named child loggers of a single root.
type Provider struct {
	root *glog.BaseLogger
}

// New builds a Provider from cfg. An empty level means info; an empty
// format means console.
func New(cfg types.LogConfig) (*Provider, error) {
	options := []glog.Option{glog.WithLevel(normalizeLevel(cfg.Level))}

	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "console":
		options = append(options, glog.WithLoggerTypeConsole())
	case "json":
		options = append(options, glog.WithLoggerTypeJSON())
	case "pretty":
		options = append(options, glog.WithLoggerTypePretty())
	default:
		return nil, fmt.Errorf("unsupported log format %q: use console, json, or pretty", cfg.Format)
	}

	return &Provider{root: glog.NewLogger(options...)}, nil
}

// Get returns the logger for a component name such as "site" or "store".
func (p *Provider) Get(name string) Logger {
	if p == nil {
		return NoOp()
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return p.root
	}
	return p.root.GetLogger(name)
}

func normalizeLevel(level string) string {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return glog.Trace
	case "debug":
		return glog.Debug
	case "warn", "warning":
		return glog.Warn
	case "error":
		return glog.Error
	default:
		return glog.Info
	}
}

type noop struct{}

func (noop) Debug(string, ...any) {}
func (noop) Info(string, ...any)  {}
func (noop) Warn(string, ...any)  {}
func (noop) Error(string, ...any) {}

// NoOp returns a logger that discards everything.
func NoOp() Logger { return noop{} }

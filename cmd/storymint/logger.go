// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/ava-labs/avalanchego/utils/logging"
	"go.uber.org/zap"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ava-labs/storymint/config"
)

type logWrapper struct {
	logger       logging.Logger
	displayLevel zap.AtomicLevel
	logLevel     zap.AtomicLevel
}

// logFactory writes colored console logs to stderr and, when a directory is
// configured, JSON logs to a rotated file.
type logFactory struct {
	config logging.Config
	lock   sync.Mutex

	// Logger name --> the logger.
	loggers map[string]logWrapper
}

func newLogFactory(cfg config.LogConfig) (*logFactory, error) {
	level, err := logging.ToLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	display, err := logging.ToLevel(cfg.DisplayLevel)
	if err != nil {
		return nil, err
	}
	return &logFactory{
		config: logging.Config{
			RotatingWriterConfig: logging.RotatingWriterConfig{
				MaxSize:   cfg.MaxSize,
				MaxFiles:  cfg.MaxFiles,
				MaxAge:    cfg.MaxAge,
				Directory: cfg.Directory,
				Compress:  cfg.Compress,
			},
			DisplayLevel: display,
			LogLevel:     level,
			LogFormat:    logging.JSON,
		},
		loggers: make(map[string]logWrapper),
	}, nil
}

// Assumes [f.lock] is held
func (f *logFactory) makeLogger(cfg logging.Config) (logging.Logger, error) {
	if _, ok := f.loggers[cfg.LoggerName]; ok {
		return nil, fmt.Errorf("logger with name %q already exists", cfg.LoggerName)
	}
	consoleCore := logging.NewWrappedCore(cfg.DisplayLevel, os.Stderr, logging.Colors.ConsoleEncoder())

	var (
		fileWriter io.WriteCloser = discardWriteCloser{io.Discard}
		fileLevel                 = logging.Off
	)
	if len(cfg.Directory) > 0 {
		fileWriter = &lumberjack.Logger{
			Filename:   filepath.Join(cfg.Directory, cfg.LoggerName+".log"),
			MaxSize:    cfg.MaxSize,  // megabytes
			MaxAge:     cfg.MaxAge,   // days
			MaxBackups: cfg.MaxFiles, // files
			Compress:   cfg.Compress,
		}
		fileLevel = cfg.LogLevel
	}
	fileCore := logging.NewWrappedCore(fileLevel, fileWriter, cfg.LogFormat.FileEncoder())
	prefix := cfg.LogFormat.WrapPrefix(cfg.MsgPrefix)

	l := logging.NewLogger(prefix, consoleCore, fileCore)
	f.loggers[cfg.LoggerName] = logWrapper{
		logger:       l,
		displayLevel: consoleCore.AtomicLevel,
		logLevel:     fileCore.AtomicLevel,
	}
	return l, nil
}

func (f *logFactory) Make(name string) (logging.Logger, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	cfg := f.config
	cfg.LoggerName = name
	return f.makeLogger(cfg)
}

func (f *logFactory) Close() {
	f.lock.Lock()
	defer f.lock.Unlock()

	for _, lw := range f.loggers {
		lw.logger.Stop()
	}
	f.loggers = nil
}

type discardWriteCloser struct {
	io.Writer
}

func (discardWriteCloser) Close() error {
	return nil
}

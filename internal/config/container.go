package config

import (
	"pdf-extractor/internal/domain"
	"pdf-extractor/internal/service"
	"pdf-extractor/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config    domain.Config
	Logger    domain.Logger
	Extractor domain.Extractor
	Inspector domain.Inspector
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	cfg := NewConfig()

	logLevel := cfg.GetLogLevel()
	if cfg.IsDebug() {
		logLevel = "debug"
	}
	appLogger := logger.NewLogger(logLevel)

	return &Container{
		Config:    cfg,
		Logger:    appLogger,
		Extractor: service.NewPDFExtractor(appLogger),
		Inspector: service.NewInspector(appLogger),
	}
}

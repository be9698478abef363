package commands

import (
	"context"

	"content-hub/internal/app"
	"content-hub/internal/config"
	"content-hub/internal/printer"
	"content-hub/internal/repository"
	"content-hub/internal/service"
	"content-hub/internal/validator"
)

// session is an opened backend with its services, loaded once.
type session struct {
	backend *app.Backend
	app.Services
}

func (s *session) Close() {
	s.backend.Close()
}

// openSession resolves the configuration, opens the source and loads the
// collection. Failures are printed before they are returned.
func openSession(ctx context.Context) (*session, error) {
	cfg, err := config.Load()
	if err == nil && sourceName != "" {
		cfg, err = cfg.WithSource(sourceName)
	}
	if err != nil {
		return nil, printer.Error("Invalid configuration", err.Error(), []string{
			"Check the DATA_SOURCE and related environment variables",
		})
	}

	backend, err := app.Open(ctx, cfg)
	if err != nil {
		return nil, printer.Error("Cannot open data source",
			err.Error(),
			[]string{"Check that the " + cfg.DataSource + " source is reachable", "Use --source mock to try the built-in data"})
	}

	s := &session{backend: backend, Services: app.NewServices(backend, cfg)}
	if err := s.Content.Load(ctx, service.TriggerManual); err != nil {
		s.Close()
		return nil, printer.Error("Failed to load content", err.Error(), nil)
	}
	return s, nil
}

// failure prints err in the shape matching its kind.
func failure(title string, err error) error {
	if fields := validator.FieldsOf(err); len(fields) > 0 {
		return printer.FieldErrors(title, fields)
	}
	if repository.IsSourceError(err) {
		return printer.Error(title, err.Error(), []string{"Retry the command; the source may be temporarily unavailable"})
	}
	return printer.Error(title, err.Error(), nil)
}

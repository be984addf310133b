package main

import (
	"notedeck/internal/app"
	"notedeck/internal/client"
	"notedeck/internal/config"
	"notedeck/internal/logging"
)

type clientFactory func(cfg config.Config, logger logging.Logger) (app.NotesAPI, error)

func newNotesClient(cfg config.Config, logger logging.Logger) (app.NotesAPI, error) {
	c, err := client.New(cfg.BaseURL(),
		client.WithTimeout(cfg.RequestTimeout()),
		client.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

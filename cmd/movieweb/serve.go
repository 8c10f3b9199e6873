package main

import (
	"log"
	"net/http"

	"github.com/spf13/cobra"

	"movieweb/internal/api"
	"movieweb/internal/config"
	"movieweb/internal/db"
	"movieweb/internal/omdb"
	"movieweb/internal/store"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			database, err := db.New(cfg.DB.Driver, cfg.DB.DSN)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			if err := db.Migrate(database, cfg.DB.Driver); err != nil {
				return err
			}

			httpc := &http.Client{Timeout: cfg.OMDB.Timeout}
			omdbClient := omdb.NewClient(cfg.OMDB.APIKey, cfg.OMDB.BaseURL, httpc)

			router := api.NewRouter(api.Deps{
				Users:     store.NewUserStore(database),
				Movies:    store.NewMovieStore(database),
				Favorites: store.NewFavoriteStore(database),
				Metadata:  omdbClient,
			})

			log.Printf("listening on %s", cfg.HTTP.Addr)
			return http.ListenAndServe(cfg.HTTP.Addr, router)
		},
	}
}

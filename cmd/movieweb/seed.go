package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/spf13/cobra"

	"movieweb/internal/config"
	"movieweb/internal/db"
	"movieweb/internal/omdb"
	"movieweb/internal/store"
)

// seedData maps demo users to the titles looked up live from OMDb. Inserts
// are idempotent, so re-running seed against an existing database only
// fills gaps.
var seedData = map[string][]string{
	"Alice":   {"Pulp Fiction", "Inception", "The Matrix", "Alien", "Heat"},
	"Bob":     {"Goodfellas", "Se7en", "Casablanca", "Jaws", "Rocky"},
	"Charlie": {"Interstellar", "Memento", "Gladiator", "Whiplash", "Up"},
	"Dana":    {"Amélie", "Parasite", "Spirited Away", "Her", "Arrival"},
	"Eve":     {"Fargo", "The Shining", "Psycho", "Vertigo", "Chinatown"},
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Populate the database with a demo roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.OMDB.APIKey == "" {
				return fmt.Errorf("seed needs MOVIEWEB_OMDB_API_KEY to fetch movie metadata")
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
			client := omdb.NewClient(cfg.OMDB.APIKey, cfg.OMDB.BaseURL, httpc)

			users := store.NewUserStore(database)
			movies := store.NewMovieStore(database)
			favorites := store.NewFavoriteStore(database)

			ctx := context.Background()
			for name, titles := range seedData {
				user, err := findOrCreateUser(ctx, users, name)
				if err != nil {
					return fmt.Errorf("seed user %s: %w", name, err)
				}

				for _, title := range titles {
					payload, err := client.Fetch(ctx, title)
					if err != nil {
						// A title the provider cannot resolve should not
						// abort the rest of the seed.
						if errors.Is(err, omdb.ErrTitleNotFound) {
							log.Printf("skipping %q: %v", title, err)
							continue
						}
						return fmt.Errorf("fetch %q: %w", title, err)
					}
					rec, err := omdb.Normalize(payload)
					if err != nil {
						log.Printf("skipping %q: %v", title, err)
						continue
					}
					if rec.ID == "" {
						log.Printf("skipping %q: provider returned no id", title)
						continue
					}

					movie, created, err := movies.Create(ctx, rec)
					if err != nil {
						return fmt.Errorf("store %q: %w", title, err)
					}
					if err := favorites.Add(ctx, user.ID, movie.ID); err != nil {
						return fmt.Errorf("favorite %q for %s: %w", title, name, err)
					}
					if created {
						log.Printf("added %s (%d) for %s", movie.Name, movie.Year, name)
					}
				}
			}

			log.Println("seed complete")
			return nil
		},
	}
}

func findOrCreateUser(ctx context.Context, users *store.UserStore, name string) (*store.User, error) {
	existing, err := users.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range existing {
		if u.Name == name {
			return u, nil
		}
	}
	return users.Create(ctx, store.NewUser{Name: name})
}

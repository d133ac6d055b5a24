package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/prculley/gramps/place"
)

// placefmt renders place titles from a place database.
// Usage:
//
//	placefmt import places.yml
//	placefmt display HANDLE... [--format N] [--date "about 1850"]
//	placefmt types [--menu]
//	placefmt formats list | load FILE
//	placefmt prune
//	placefmt load-types PATH
//	placefmt merge-types OTHER.db
//	placefmt find [--name X] [--regex] [--fuzzy N] [--type T]
func main() {
	_ = godotenv.Load(".env")
	place.SetupLogger()
	if err := newRootCmd().Execute(); err != nil {
		place.Logger().Error("placefmt failed", "err", err)
		os.Exit(1)
	}
}

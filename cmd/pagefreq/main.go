// Package main is the pagefreq command: fetch a page, count the words of
// its paragraphs and chart the most frequent ones.
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/pagefreq/internal/app"
)

// Exit codes.
const (
	exitError      = 1
	exitNetwork    = 2
	exitExtraction = 3
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, describe(err))
		os.Exit(exitCode(err))
	}
}

// describe prefixes pipeline failures the way the web UI does.
func describe(err error) string {
	var ee *app.ExtractionError
	if app.IsNetworkError(err) || errors.As(err, &ee) {
		return app.Describe(err)
	}
	return "error: " + err.Error()
}

func exitCode(err error) int {
	var ee *app.ExtractionError
	switch {
	case app.IsNetworkError(err):
		return exitNetwork
	case errors.As(err, &ee):
		return exitExtraction
	}
	return exitError
}

func setupLogging(verbose bool) {
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

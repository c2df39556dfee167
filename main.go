// Command oas2har converts an OpenAPI/Swagger description into synthetic HAR
// request descriptors, one per declared path+method pair.
package main

import (
	"os"

	"github.com/rs/zerolog"

	"oas2har/internal/cli"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	app := cli.New(log)
	if err := app.Execute(); err != nil {
		log.Error().Err(err).Msg("oas2har failed")
		os.Exit(1)
	}
}

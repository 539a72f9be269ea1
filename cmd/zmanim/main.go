// Command zmanim prints the zmanim of a day, or the distance between two
// places, from the command line.
package main

import (
	"io"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type CommandLineOpts struct {
	Config  string `short:"c" long:"config" description:"config file with named locations" value-name:"<FILE>"`
	Verbose bool   `short:"v" long:"verbose" description:"log debugging output"`

	DayCommand      DayCommand      `command:"day" description:"print the zmanim of a day"`
	DistanceCommand DistanceCommand `command:"distance" description:"print the geodesic and rhumb line between two places"`
	VersionCommand  VersionCommand  `command:"version" description:"print the program version"`
}

var Opts CommandLineOpts

// out is where commands print their results.
var out io.Writer = os.Stdout

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	parser := flags.NewParser(&Opts, flags.Default)
	parser.SubcommandsOptional = false
	parser.CommandHandler = func(command flags.Commander, args []string) error {
		if Opts.Verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
		return command.Execute(args)
	}

	_, err := parser.Parse()
	if flags.WroteHelp(err) {
		os.Exit(0)
	} else if err != nil {
		// go-flags has already printed the error
		os.Exit(1)
	}
}

// loadConfig reads the config named by --config, or the default one.
func loadConfig() (Config, error) {
	path := Opts.Config
	if path == "" {
		path = DefaultConfigPath()
	}
	log.Debug().Str("path", path).Msg("Loading config")
	return LoadConfig(path)
}

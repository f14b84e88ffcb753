package main

import (
	"fmt"
	"os"

	"github.com/gx4ki/middlelayer"
	flags "github.com/jessevdk/go-flags"
)

func main() {
	var cmd MiddlelayerCommand

	cmd.Version = func() {
		fmt.Printf("middlelayer %s (side-car API %s)\n", middlelayer.Version, middlelayer.SideCarAPIVersion)
		os.Exit(0)
	}

	parser := flags.NewParser(&cmd, flags.HelpFlag|flags.PassDoubleDash)
	parser.NamespaceDelimiter = "-"

	// The config file location must be known before the real parse, so a
	// throwaway pass picks up --config / MIDDLELAYER_CONFIG first.
	var boot struct {
		ConfigFile string `long:"config" env:"MIDDLELAYER_CONFIG"`
	}
	bootParser := flags.NewParser(&boot, flags.IgnoreUnknown)
	if _, err := bootParser.ParseArgs(os.Args[1:]); err == nil {
		handleError(cmd.Run.LoadConfig(parser, boot.ConfigFile))
	}

	args, err := parser.Parse()
	handleError(err)

	handleError(cmd.Run.Execute(args))
}

func handleError(err error) {
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			fmt.Println(err)
			os.Exit(0)
		} else {
			fmt.Fprintf(os.Stderr, "error: %s\n", err)
		}

		os.Exit(1)
	}
}

package main

import (
	"github.com/gx4ki/middlelayer/wfapi/wfapicmd"
)

type MiddlelayerCommand struct {
	Version func() `short:"v" long:"version" description:"Print the version of middlelayer and exit"`

	Run wfapicmd.RunCommand
}

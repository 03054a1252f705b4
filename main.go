package main

import (
	"github.com/crafthub/depcraft/cmd"
	"github.com/crafthub/depcraft/config"
)

var Version string

func main() {
	config.SetVersion(Version)
	cmd.Execute()
}

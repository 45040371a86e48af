// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/alecthomas/kong"
	"github.com/ik5/loudplayer/internal/cli"
	"github.com/ik5/loudplayer/internal/config"
)

var version = "0.1.0"

// Globals are shared by every command.
type Globals struct {
	Config  string      `short:"c" type:"path" placeholder:"FILE" help:"YAML config file (default: user config dir)."`
	LogFile string      `name:"log-file" type:"path" placeholder:"FILE" help:"Write a debug log to FILE."`
	Version versionFlag `short:"v" help:"Show version information."`

	logOut io.Closer
}

// CLI defines the command-line interface
type CLI struct {
	Globals

	Play   PlayCmd   `cmd:"" default:"withargs" help:"Play files through the loudness chain."`
	Simple SimpleCmd `cmd:"" help:"Play one file with play, pause and stop only."`
	Render RenderCmd `cmd:"" help:"Render a file through the loudness chain to 16-bit WAV."`
}

type versionFlag bool

func (versionFlag) BeforeReset(app *kong.Kong, vars kong.Vars) error {
	cli.PrintVersion(app.Stdout, vars["version"])
	app.Exit(0)

	return nil
}

// setup loads the configuration and opens the debug log.
func (g *Globals) setup() (config.Config, *log.Logger, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return cfg, nil, err
	}

	if g.LogFile == "" {
		return cfg, log.New(io.Discard, "", 0), nil
	}

	f, err := os.OpenFile(g.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return cfg, nil, fmt.Errorf("opening log file: %w", err)
	}
	g.logOut = f

	return cfg, log.New(f, "", log.LstdFlags|log.Lmicroseconds), nil
}

func (g *Globals) close() {
	if g.logOut != nil {
		_ = g.logOut.Close()
	}
}

func main() {
	cliArgs := &CLI{}
	ctx := kong.Parse(cliArgs,
		kong.Name("loudplayer"),
		kong.Description("Loudness-maximising audio player"),
		kong.UsageOnError(),
		kong.Vars{
			"version": version,
		},
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)

	err := ctx.Run(&cliArgs.Globals)
	cliArgs.Globals.close()
	if err != nil {
		cli.PrintError(os.Stderr, err.Error())
		os.Exit(1)
	}
}

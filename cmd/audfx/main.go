// SPDX-License-Identifier: EPL-2.0

// Command audfx applies PCM effects to audio files and writes 16-bit WAV.
//
//	audfx fade --fade-in 2 --curve scurve -o out.wav in.mp3
//	audfx split --mode silence --threshold-db -45 -o part.wav in.wav
//	audfx run -c pipeline.yaml -o out.wav in.ogg
package main

import (
	"os"

	"github.com/alecthomas/kong"
)

var version = "0.1.0"

type Globals struct {
	LogLevel string           `name:"log-level" default:"info" enum:"trace,debug,info,warn,error" help:"Log level: trace, debug, info, warn or error."`
	LogJSON  bool             `name:"log-json" help:"Log as JSON."`
	Version  kong.VersionFlag `short:"v" help:"Show version information."`
}

type CLI struct {
	Globals

	Fade      FadeCmd      `cmd:"" help:"Fade in and fade out."`
	Mix       MixCmd       `cmd:"" help:"Remix two channels through a 2x2 gain matrix."`
	Stereo    StereoCmd    `cmd:"" help:"Synthesise stereo from mono."`
	Transient TransientCmd `cmd:"" help:"Shape attacks and sustain."`
	Trim      TrimCmd      `cmd:"" help:"Keep a time range."`
	Split     SplitCmd     `cmd:"" help:"Cut into numbered WAV files."`
	Run       RunCmd       `cmd:"" help:"Run a YAML pipeline."`
	Info      InfoCmd      `cmd:"" help:"Describe audio files."`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("audfx"),
		kong.Description("Offline PCM effects pipeline"),
		kong.UsageOnError(),
		kong.Vars{
			"version": version,
		},
	)

	log, err := newLogger(os.Stderr, cli.LogLevel, cli.LogJSON)
	if err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}

	if err := ctx.Run(log); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/bgc/cli/render"
	"github.com/pithecene-io/bgc/convert"
	"github.com/pithecene-io/bgc/iox"
	"github.com/pithecene-io/bgc/log"
	"github.com/pithecene-io/bgc/source"
)

// Exit codes for the convert command.
const (
	exitSuccess  = 0
	exitUsage    = 1
	exitFormat   = 2
	exitChecksum = 3
	exitWrite    = 4
)

// ConvertResponse is the response rendered by --stats.
type ConvertResponse struct {
	Input  string        `json:"input" yaml:"input"`
	Output string        `json:"output" yaml:"output"`
	Stats  convert.Stats `json:"stats" yaml:"stats"`
}

// Rows implements render.Tabler.
func (r ConvertResponse) Rows() [][2]string {
	return [][2]string{
		{"Input", r.Input},
		{"Output", r.Output},
		{"Producer", r.Stats.Producer},
		{"Blocks", strconv.Itoa(r.Stats.Blocks)},
		{"Thumbnails", strconv.Itoa(r.Stats.Thumbnails)},
		{"GCode blocks", strconv.Itoa(r.Stats.GCodeBlocks)},
		{"Lines kept", strconv.FormatInt(r.Stats.LinesKept, 10)},
		{"Lines dropped", strconv.FormatInt(r.Stats.LinesDropped, 10)},
		{"Bytes written", strconv.FormatInt(r.Stats.BytesWritten, 10)},
	}
}

// ConvertCommand returns the convert command, the only command that
// writes anything.
func ConvertCommand() *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "Convert a binary gcode file to ascii gcode",
		ArgsUsage: "<input> [output]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output path (\"-\" for stdout; default derives from input)",
			},
			NoVerifyFlag,
			&cli.BoolFlag{
				Name:  "stats",
				Usage: "Print conversion statistics",
			},
			&cli.BoolFlag{
				Name:  "quiet",
				Usage: "Suppress the completion message",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging to stderr",
			},
			FormatFlag,
			NoColorFlag,
			ConfigFlag,
		},
		Action: convertAction,
	}
}

func convertAction(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.Exit("input file required", exitUsage)
	}
	input := c.Args().First()

	cfg, err := loadConfig(c)
	if err != nil {
		return cli.Exit(err.Error(), exitUsage)
	}

	output := c.String("output")
	if c.NArg() > 1 {
		if output != "" {
			return cli.Exit("output given both as argument and --output", exitUsage)
		}
		output = c.Args().Get(1)
	}
	if output == "" {
		output = deriveOutputPath(input)
	}

	logger := log.Nop()
	if c.Bool("verbose") {
		logger = log.NewLogger(input)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	in, err := source.Open(ctx, input, cfg.SourceOptions())
	if err != nil {
		return cli.Exit(fmt.Sprintf("open input: %v", err), exitUsage)
	}
	defer iox.DiscardClose(in)

	dst, cleanup, err := openOutput(output)
	if err != nil {
		return cli.Exit(fmt.Sprintf("open output: %v", err), exitWrite)
	}

	opts := convert.Options{
		VerifyChecksums: !c.Bool("no-verify") && cfg.VerifyDefault(),
		Logger:          logger,
	}

	stats, convErr := convert.BinaryToASCII(in, dst, opts)
	if err := cleanup(convErr == nil); err != nil && convErr == nil {
		convErr = err
	}
	if convErr != nil {
		return cli.Exit(convErr.Error(), convertExitCode(convErr))
	}

	if c.Bool("stats") {
		r, err := render.NewRendererWithDefault(c, cfg.Format)
		if err != nil {
			return err
		}
		return r.Render(ConvertResponse{Input: input, Output: output, Stats: stats})
	}

	if !c.Bool("quiet") && output != "-" {
		fmt.Fprintf(os.Stderr, "%s -> %s (%d bytes)\n", input, output, stats.BytesWritten)
	}
	return nil
}

// deriveOutputPath maps input.bgcode to input.gcode; anything else gets
// .gcode appended.
func deriveOutputPath(input string) string {
	if stripped, ok := strings.CutSuffix(input, ".bgcode"); ok {
		return stripped + ".gcode"
	}
	return input + ".gcode"
}

// openOutput opens the destination writer. The returned cleanup closes
// the file, removing it when the conversion failed so no partial output
// survives.
func openOutput(path string) (io.Writer, func(ok bool) error, error) {
	if path == "-" {
		return os.Stdout, func(bool) error { return nil }, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func(ok bool) error {
		closeErr := f.Close()
		if !ok {
			_ = os.Remove(path)
			return nil
		}
		return closeErr
	}
	return f, cleanup, nil
}

// convertExitCode maps conversion error kinds to process exit codes.
func convertExitCode(err error) int {
	switch {
	case errors.Is(err, convert.ErrChecksum):
		return exitChecksum
	case errors.Is(err, convert.ErrWrite):
		return exitWrite
	default:
		return exitFormat
	}
}

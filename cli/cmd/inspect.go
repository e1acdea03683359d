package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/bgc/bgcode"
	"github.com/pithecene-io/bgc/cli/render"
	"github.com/pithecene-io/bgc/iox"
	"github.com/pithecene-io/bgc/source"
	"github.com/pithecene-io/bgc/types"
)

// BlockInfo describes a single block for the inspect command.
type BlockInfo struct {
	Index       int    `json:"index" yaml:"index"`
	Offset      int64  `json:"offset" yaml:"offset"`
	Type        string `json:"type" yaml:"type"`
	PayloadSize uint32 `json:"payload_size" yaml:"payload_size"`
	// Thumbnail blocks only.
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
	Width  uint16 `json:"width,omitempty" yaml:"width,omitempty"`
	Height uint16 `json:"height,omitempty" yaml:"height,omitempty"`
}

// InspectResponse is the response for the inspect command.
type InspectResponse struct {
	Path     string      `json:"path" yaml:"path"`
	Version  uint32      `json:"version" yaml:"version"`
	Checksum string      `json:"checksum" yaml:"checksum"`
	Blocks   []BlockInfo `json:"blocks" yaml:"blocks"`
}

// Rows implements render.Tabler.
func (r InspectResponse) Rows() [][2]string {
	rows := [][2]string{
		{"Path", r.Path},
		{"Version", strconv.FormatUint(uint64(r.Version), 10)},
		{"Checksum", r.Checksum},
		{"Blocks", strconv.Itoa(len(r.Blocks))},
	}
	for _, b := range r.Blocks {
		desc := fmt.Sprintf("%s offset=%d size=%d", b.Type, b.Offset, b.PayloadSize)
		if b.Format != "" {
			desc += fmt.Sprintf(" %s %dx%d", b.Format, b.Width, b.Height)
		}
		rows = append(rows, [2]string{fmt.Sprintf("Block %d", b.Index), desc})
	}
	return rows
}

// InspectCommand returns the inspect command.
// Inspect lists block headers without decoding payloads; thumbnail
// parameters are the one exception since dimensions live there.
func InspectCommand() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "List the blocks of a binary gcode file",
		ArgsUsage: "<input>",
		Flags:     ReadOnlyFlags(),
		Action:    inspectAction,
	}
}

func inspectAction(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.Exit("input file required", 1)
	}
	path := c.Args().First()

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	r, err := render.NewRendererWithDefault(c, cfg.Format)
	if err != nil {
		return err
	}

	in, err := source.Open(context.Background(), path, cfg.SourceOptions())
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer iox.DiscardClose(in)

	resp, err := inspectFile(in, path)
	if err != nil {
		return err
	}
	return r.Render(resp)
}

func inspectFile(in io.ReadSeeker, path string) (InspectResponse, error) {
	resp := InspectResponse{Path: path}

	fh, err := bgcode.ReadFileHeader(in)
	if err != nil {
		return resp, err
	}
	resp.Version = fh.Version
	resp.Checksum = fh.Checksum.String()

	for i := 0; ; i++ {
		h, err := bgcode.ReadBlockHeader(in, fh, false)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return resp, err
		}

		info := BlockInfo{
			Index:       i,
			Offset:      h.Offset,
			Type:        h.Type.String(),
			PayloadSize: h.PayloadSize,
		}
		if h.Type == types.BlockThumbnail {
			thumb, err := bgcode.ReadThumbnailBlock(in, fh, h)
			if err != nil {
				return resp, err
			}
			info.Format = thumb.Format.String()
			info.Width = thumb.Width
			info.Height = thumb.Height
		} else if err := bgcode.SkipBlock(in, fh, h); err != nil {
			return resp, err
		}
		resp.Blocks = append(resp.Blocks, info)
	}

	return resp, nil
}

package convert

import (
	"fmt"

	"github.com/pithecene-io/bgc/types"
)

// state tracks progress through the block grammar:
//
//	file metadata, printer metadata, thumbnail*, gcode+,
//	print metadata, slicer metadata
//
// Each state is named after the block type last accepted; stateStart
// precedes the first block and stateDone follows the slicer metadata
// block. The grammar admits exactly one next type per transition, except
// after printer metadata and thumbnails, where either another thumbnail
// or the first gcode block may follow.
type state int

const (
	stateStart state = iota
	stateFileMetadata
	statePrinterMetadata
	stateThumbnail
	stateGCode
	statePrintMetadata
	stateDone
)

func (s state) String() string {
	switch s {
	case stateStart:
		return "start"
	case stateFileMetadata:
		return "file metadata"
	case statePrinterMetadata:
		return "printer metadata"
	case stateThumbnail:
		return "thumbnail"
	case stateGCode:
		return "gcode"
	case statePrintMetadata:
		return "print metadata"
	case stateDone:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// advance returns the state reached by accepting a block of type t in
// state s. Any transition the grammar does not admit is a hard
// ErrInvalidSequence failure; the walker never skips ahead to find a
// conforming block.
func advance(s state, t types.BlockType) (state, error) {
	switch s {
	case stateStart:
		if t == types.BlockFileMetadata {
			return stateFileMetadata, nil
		}
	case stateFileMetadata:
		if t == types.BlockPrinterMetadata {
			return statePrinterMetadata, nil
		}
	case statePrinterMetadata, stateThumbnail:
		switch t {
		case types.BlockThumbnail:
			return stateThumbnail, nil
		case types.BlockGCode:
			return stateGCode, nil
		}
	case stateGCode:
		switch t {
		case types.BlockGCode:
			return stateGCode, nil
		case types.BlockPrintMetadata:
			return statePrintMetadata, nil
		}
	case statePrintMetadata:
		if t == types.BlockSlicerMetadata {
			return stateDone, nil
		}
	}
	return s, &Error{
		Kind: ErrInvalidSequence,
		Op:   fmt.Sprintf("after %s", s),
		Err:  fmt.Errorf("unexpected %s block", t),
	}
}

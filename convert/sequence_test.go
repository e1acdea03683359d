package convert

import (
	"errors"
	"testing"

	"github.com/pithecene-io/bgc/types"
)

var allBlockTypes = []types.BlockType{
	types.BlockFileMetadata,
	types.BlockGCode,
	types.BlockSlicerMetadata,
	types.BlockPrinterMetadata,
	types.BlockPrintMetadata,
	types.BlockThumbnail,
}

func TestAdvance_Grammar(t *testing.T) {
	// allowed maps each state to its complete set of legal transitions.
	// Everything absent is an ErrInvalidSequence failure.
	allowed := map[state]map[types.BlockType]state{
		stateStart: {
			types.BlockFileMetadata: stateFileMetadata,
		},
		stateFileMetadata: {
			types.BlockPrinterMetadata: statePrinterMetadata,
		},
		statePrinterMetadata: {
			types.BlockThumbnail: stateThumbnail,
			types.BlockGCode:     stateGCode,
		},
		stateThumbnail: {
			types.BlockThumbnail: stateThumbnail,
			types.BlockGCode:     stateGCode,
		},
		stateGCode: {
			types.BlockGCode:         stateGCode,
			types.BlockPrintMetadata: statePrintMetadata,
		},
		statePrintMetadata: {
			types.BlockSlicerMetadata: stateDone,
		},
		stateDone: {},
	}

	for s, transitions := range allowed {
		for _, bt := range allBlockTypes {
			next, err := advance(s, bt)
			if want, ok := transitions[bt]; ok {
				if err != nil {
					t.Errorf("advance(%v, %v) failed: %v", s, bt, err)
				} else if next != want {
					t.Errorf("advance(%v, %v) = %v, want %v", s, bt, next, want)
				}
				continue
			}
			if !errors.Is(err, ErrInvalidSequence) {
				t.Errorf("advance(%v, %v) error = %v, want ErrInvalidSequence", s, bt, err)
			}
		}
	}
}

func TestAdvance_UnknownType(t *testing.T) {
	if _, err := advance(stateStart, types.BlockType(42)); !errors.Is(err, ErrInvalidSequence) {
		t.Errorf("advance on unknown type = %v, want ErrInvalidSequence", err)
	}
}

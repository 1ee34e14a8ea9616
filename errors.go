package cubeterm

import (
	"github.com/SeamusWaldron/cubeterm/internal/smartcube"
	"github.com/SeamusWaldron/cubeterm/pkg/types"
)

// Sentinel errors for the cubeterm package.
var (
	// Parsing errors
	ErrInvalidNotation = types.ErrInvalidNotation

	// State errors
	ErrNoStoredFace = types.ErrNoStoredFace

	// Smart cube errors
	ErrNotConnected     = smartcube.ErrNotConnected
	ErrAlreadyConnected = smartcube.ErrAlreadyConnected
	ErrDeviceNotFound   = smartcube.ErrDeviceNotFound
)

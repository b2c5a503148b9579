package fluidgo

import "errors"

// Error kinds of the session layer. Callers match with errors.Is; wrapped
// messages carry the failing path or setting.
var (
	// ErrNotLoaded: the native library never resolved, so no engine
	// capability exists in this process.
	ErrNotLoaded = errors.New("native synthesis library not loaded")

	// ErrVersionTooOld: the loaded engine is older than the minimum this
	// code was designed against.
	ErrVersionTooOld = errors.New("native synthesis library too old")

	ErrEngineCreation = errors.New("creating native engine instance failed")
	ErrDriverCreation = errors.New("creating native audio driver failed")

	ErrSoundFontLoad   = errors.New("loading soundfont failed")
	ErrSoundFontUnload = errors.New("unloading soundfont failed")

	ErrInputNotFound = errors.New("input file not readable")
	ErrRender        = errors.New("rendering audio file failed")
)

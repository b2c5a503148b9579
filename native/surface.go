package native

// Result codes and status values defined by the engine's C API.
const (
	OK     = 0
	Failed = -1

	PlayerReady    = 0
	PlayerPlaying  = 1
	PlayerStopping = 2
	PlayerDone     = 3
)

// Handle is the opaque address of a native-side object (settings, synth,
// driver, player, renderer). A zero Handle means "no object".
type Handle uintptr

// Surface is the call surface of the native synthesis engine. The production
// implementation binds every method to a symbol of the shared library
// resolved at startup; tests substitute a recording fake.
//
// All calls are synchronous and block the calling goroutine. The engine does
// not guarantee thread safety for concurrent calls on the same handle, so
// callers must serialize per handle.
type Surface interface {
	// Version reports the engine version as numeric major.minor.micro parts.
	Version() (major, minor, micro int)

	NewSettings() Handle
	DeleteSettings(settings Handle)
	SettingsSetStr(settings Handle, key, value string) int
	SettingsSetNum(settings Handle, key string, value float64) int
	SettingsSetInt(settings Handle, key string, value int) int
	// SettingsCopyStr copies the value into a buffer of the given size.
	// Values longer than size-1 are silently truncated by the engine.
	SettingsCopyStr(settings Handle, key string, size int) string
	SettingsGetInt(settings Handle, key string) int
	SettingsGetNum(settings Handle, key string) float64

	NewSynth(settings Handle) Handle
	DeleteSynth(synth Handle)
	SetGain(synth Handle, gain float32)
	Gain(synth Handle) float32
	NoteOn(synth Handle, channel, key, velocity int) int
	NoteOff(synth Handle, channel, key int) int
	ProgramChange(synth Handle, channel, program int) int
	ControlChange(synth Handle, channel, controller, value int) int
	SystemReset(synth Handle) int
	// Sysex sends a system-exclusive payload. The payload must not include
	// the 0xF0/0xF7 framing bytes. handled reports how many bytes the
	// engine consumed.
	Sysex(synth Handle, payload []byte) (handled, code int)
	SetChorusGroupType(synth Handle, group, chorusType int) int
	ChorusGroupType(synth Handle, group int) int
	// SFLoad loads a soundfont by absolute path and returns its id, or
	// Failed. resetPresets re-assigns presets on all MIDI channels.
	SFLoad(synth Handle, path string, resetPresets bool) int
	SFUnload(synth Handle, id int, resetPresets bool) int

	NewAudioDriver(settings, synth Handle) Handle
	DeleteAudioDriver(driver Handle)

	NewPlayer(synth Handle) Handle
	DeletePlayer(player Handle)
	PlayerAdd(player Handle, midiPath string) int
	PlayerPlay(player Handle) int
	PlayerStop(player Handle) int
	PlayerJoin(player Handle) int
	PlayerStatus(player Handle) int

	NewFileRenderer(synth Handle) Handle
	DeleteFileRenderer(renderer Handle)
	RenderBlock(renderer Handle) int
}

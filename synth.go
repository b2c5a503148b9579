package fluidgo

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"fluidgo/native"
)

// The session layer was designed against engine version 2.3.0 (API version
// 3, shipped since 2.2.0). Older engines expose an incompatible surface.
var minEngineVersion = Version{Major: 2, Minor: 2, Micro: 0}

// Engine versions around 2.3.0 only react to a standard XG System ON sysex
// when the device id is 16; see the fix shipped in 2.3.1. Setting it
// unconditionally is harmless on fixed versions.
const xgCompatibilityDeviceID = 16

// Property names passed to change observers.
const (
	PropGain   = "gain"
	PropReverb = "reverb"
	PropChorus = "chorus"
)

// Ready reports whether the native library resolved, which gates every
// session in this process. Check it before constructing synths.
func Ready() bool {
	return native.Load()
}

// Synth is one session against the native engine. It owns the settings,
// engine and optional driver handles and enforces their lifecycle: created
// together in Open, destroyed together in reverse order in Close.
//
// A Synth is not safe for concurrent use; the engine itself requires all
// calls on a handle to be serialized.
type Synth struct {
	surface native.Surface

	settings native.Handle
	synth    native.Handle
	driver   native.Handle

	// Last explicitly set values. Re-setting an identical config is
	// suppressed: the engine audibly perturbs the sound even when the
	// value does not change.
	reverb *Reverb
	chorus *Chorus

	sfPath string
	sfID   int

	observers []func(prop string)

	log *slog.Logger
}

// New creates a closed session. Call Open to allocate native resources.
func New() *Synth {
	return &Synth{sfID: -1, log: slog.Default()}
}

// newSynth wires an explicit call surface, bypassing the process-wide
// loader. Used by tests and by NewSynthFrom.
func newSynth(surface native.Surface) *Synth {
	return &Synth{surface: surface, sfID: -1, log: slog.Default()}
}

// IsOpen reports whether native resources are allocated.
func (s *Synth) IsOpen() bool {
	return s.synth != 0
}

// Open allocates the native resources: settings, engine and, if requested,
// the audio output driver. No-op when already open. On driver failure the
// whole session is torn down; partial success is never observable.
func (s *Synth) Open(withDriver bool) error {
	if s.surface == nil {
		if !native.Load() {
			return fmt.Errorf("%w: %v", ErrNotLoaded, native.LoadErr())
		}
		s.surface = native.Lib()
	}
	if s.IsOpen() {
		return nil
	}

	version := s.engineVersion()
	s.log.Info("opening synth session", "engineVersion", version)
	if !version.AtLeast(minEngineVersion) {
		return fmt.Errorf("%w: have %s, need at least %s", ErrVersionTooOld, version, minEngineVersion)
	}

	s.settings = s.surface.NewSettings()
	s.synth = s.surface.NewSynth(s.settings)
	if s.synth == 0 {
		s.surface.DeleteSettings(s.settings)
		s.settings = 0
		return ErrEngineCreation
	}

	s.SetSettingInt("synth.device-id", xgCompatibilityDeviceID)

	if withDriver {
		s.driver = s.surface.NewAudioDriver(s.settings, s.synth)
		if s.driver == 0 {
			s.Close()
			return ErrDriverCreation
		}
	}
	return nil
}

// Close releases the native resources in reverse creation order: driver,
// engine, settings. Idempotent and safe on a never-opened session.
func (s *Synth) Close() {
	if s.driver != 0 {
		s.surface.DeleteAudioDriver(s.driver)
	}
	if s.synth != 0 {
		s.surface.DeleteSynth(s.synth)
	}
	if s.settings != 0 {
		s.surface.DeleteSettings(s.settings)
	}
	s.driver, s.synth, s.settings = 0, 0, 0
	s.sfPath = ""
	s.sfID = -1
	s.reverb = nil
	s.chorus = nil
}

// NewSynthFrom creates an open session whose engine matches src's current
// gain, reverb, chorus, device id and loaded soundfont. src must be open.
// withDriver additionally creates an output driver if src has one. Cloning
// exists to run offline work against a private engine without disturbing a
// live session.
func NewSynthFrom(src *Synth, withDriver bool) (*Synth, error) {
	if !src.IsOpen() {
		return nil, fmt.Errorf("source synth is not open")
	}

	s := newSynth(src.surface)
	s.log = src.log
	s.settings = s.surface.NewSettings()
	s.synth = s.surface.NewSynth(s.settings)
	if s.synth == 0 {
		s.surface.DeleteSettings(s.settings)
		s.settings = 0
		return nil, ErrEngineCreation
	}

	s.SetGain(src.Gain())
	s.SetReverb(src.Reverb())
	s.SetChorus(src.Chorus())
	s.SetSettingInt("synth.device-id", src.SettingInt("synth.device-id"))

	if withDriver && src.driver != 0 {
		s.driver = s.surface.NewAudioDriver(s.settings, s.synth)
		if s.driver == 0 {
			s.Close()
			return nil, ErrDriverCreation
		}
	}

	if src.sfPath != "" {
		if _, err := s.LoadSoundFont(src.sfPath); err != nil {
			s.Close()
			return nil, err
		}
	}
	return s, nil
}

// EngineVersion returns the native engine version as "major.minor.micro".
func (s *Synth) EngineVersion() string {
	return s.engineVersion().String()
}

func (s *Synth) engineVersion() Version {
	major, minor, micro := s.surface.Version()
	return Version{Major: major, Minor: minor, Micro: micro}
}

// Gain returns the engine's master gain.
func (s *Synth) Gain() float32 {
	return s.surface.Gain(s.synth)
}

// SetGain sets the master gain (0..10). Setting the current value again is
// suppressed.
func (s *Synth) SetGain(gain float32) {
	if s.surface.Gain(s.synth) == gain {
		return
	}
	s.surface.SetGain(s.synth, gain)
	s.notify(PropGain)
}

// Reverb returns the last explicitly set reverb, falling back to the
// engine's live values when none was set.
func (s *Synth) Reverb() Reverb {
	if s.reverb != nil {
		return *s.reverb
	}
	return Reverb{
		Room:  s.SettingNum("synth.reverb.room-size"),
		Damp:  s.SettingNum("synth.reverb.damp"),
		Width: s.SettingNum("synth.reverb.width"),
		Level: s.SettingNum("synth.reverb.level"),
	}
}

// SetReverb applies rv. Re-setting the cached value is suppressed. All
// sub-settings are applied unconditionally; the result is their logical
// AND, with no rollback on partial failure.
func (s *Synth) SetReverb(rv Reverb) bool {
	if s.reverb != nil && *s.reverb == rv {
		return true
	}
	ok := s.SetSettingNum("synth.reverb.damp", rv.Damp)
	ok = s.SetSettingNum("synth.reverb.level", rv.Level) && ok
	ok = s.SetSettingNum("synth.reverb.room-size", rv.Room) && ok
	ok = s.SetSettingNum("synth.reverb.width", rv.Width) && ok

	s.reverb = &rv
	s.notify(PropReverb)
	return ok
}

// Chorus returns the last explicitly set chorus, falling back to the
// engine's live values.
func (s *Synth) Chorus() Chorus {
	if s.chorus != nil {
		return *s.chorus
	}
	return Chorus{
		Nr:    s.SettingInt("synth.chorus.nr"),
		Speed: s.SettingNum("synth.chorus.speed"),
		Depth: s.SettingNum("synth.chorus.depth"),
		Type:  s.surface.ChorusGroupType(s.synth, -1),
		Level: s.SettingNum("synth.chorus.level"),
	}
}

// SetChorus applies ch with the same suppression and partial-failure
// semantics as SetReverb.
func (s *Synth) SetChorus(ch Chorus) bool {
	if s.chorus != nil && *s.chorus == ch {
		return true
	}
	ok := s.SetSettingNum("synth.chorus.depth", ch.Depth)
	ok = s.SetSettingNum("synth.chorus.level", ch.Level) && ok
	ok = s.SetSettingInt("synth.chorus.nr", ch.Nr) && ok
	ok = s.SetSettingNum("synth.chorus.speed", ch.Speed) && ok
	ok = s.surface.SetChorusGroupType(s.synth, -1, ch.Type) == native.OK && ok

	s.chorus = &ch
	s.notify(PropChorus)
	return ok
}

// LoadSoundFont loads a soundfont by path, re-assigning presets on all MIDI
// channels, and returns the engine's soundfont id.
func (s *Synth) LoadSoundFont(path string) (int, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return -1, fmt.Errorf("%w: %s: %v", ErrSoundFontLoad, path, err)
	}
	id := s.surface.SFLoad(s.synth, abs, true)
	if id == native.Failed {
		s.sfPath = ""
		s.sfID = -1
		return -1, fmt.Errorf("%w: %s", ErrSoundFontLoad, abs)
	}
	s.log.Info("soundfont loaded", "path", abs, "id", id)
	s.sfPath = abs
	s.sfID = id
	return id, nil
}

// UnloadSoundFont unloads a soundfont id obtained from LoadSoundFont.
func (s *Synth) UnloadSoundFont(id int) error {
	if s.surface.SFUnload(s.synth, id, true) == native.Failed {
		return fmt.Errorf("%w: id=%d", ErrSoundFontUnload, id)
	}
	if id == s.sfID {
		s.sfPath = ""
		s.sfID = -1
	}
	return nil
}

// SoundFontFile returns the path of the last successfully loaded soundfont,
// or "" if none.
func (s *Synth) SoundFontFile() string {
	return s.sfPath
}

// SoundFontID returns the engine id of the loaded soundfont, or -1.
func (s *Synth) SoundFontID() int {
	return s.sfID
}

// OnChange subscribes fn to gain/reverb/chorus changes. Callbacks run
// synchronously on the mutating goroutine.
func (s *Synth) OnChange(fn func(prop string)) {
	s.observers = append(s.observers, fn)
}

func (s *Synth) notify(prop string) {
	for _, fn := range s.observers {
		fn(prop)
	}
}

// PlayTestNotes plays a chromatic scale from middle C on channel 0. A quick
// audible smoke test for a live session.
func (s *Synth) PlayTestNotes() {
	for i := 0; i < 12; i++ {
		key := 60 + i
		s.surface.NoteOn(s.synth, 0, key, 80)
		time.Sleep(500 * time.Millisecond)
		s.surface.NoteOff(s.synth, 0, key)
	}
}

package fluidgo

import (
	"errors"
	"strings"
	"testing"
)

func TestOpenCreatesHandlesInOrder(t *testing.T) {
	f := newFakeSurface()
	s := newSynth(f)

	if err := s.Open(true); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if !s.IsOpen() {
		t.Fatal("synth should be open")
	}

	settings := indexOf(f.calls, "new_settings")
	synth := indexOf(f.calls, "new_synth")
	driver := indexOf(f.calls, "new_driver")
	if settings == -1 || synth == -1 || driver == -1 {
		t.Fatalf("missing creation calls: %v", f.calls)
	}
	if !(settings < synth && synth < driver) {
		t.Errorf("creation order settings->synth->driver violated: %v", f.calls)
	}
}

func TestOpenAppliesDeviceIDWorkaround(t *testing.T) {
	f := newFakeSurface()
	s := newSynth(f)

	if err := s.Open(false); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if f.count("setint synth.device-id=16") != 1 {
		t.Errorf("device-id workaround not applied: %v", f.calls)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	f := newFakeSurface()
	s := newSynth(f)

	if err := s.Open(false); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	before := len(f.calls)
	if err := s.Open(false); err != nil {
		t.Fatalf("second Open failed: %v", err)
	}
	if len(f.calls) != before {
		t.Errorf("second Open issued native calls: %v", f.calls[before:])
	}
}

func TestOpenRejectsOldEngine(t *testing.T) {
	f := newFakeSurface()
	f.version = [3]int{2, 1, 9}
	s := newSynth(f)

	err := s.Open(false)
	if !errors.Is(err, ErrVersionTooOld) {
		t.Fatalf("want ErrVersionTooOld, got %v", err)
	}
	if f.count("new_settings") != 0 {
		t.Error("no handles may be created when the version gate fails")
	}
}

func TestOpenEngineCreationFailure(t *testing.T) {
	f := newFakeSurface()
	f.failNewSynth = true
	s := newSynth(f)

	err := s.Open(false)
	if !errors.Is(err, ErrEngineCreation) {
		t.Fatalf("want ErrEngineCreation, got %v", err)
	}
	if s.IsOpen() {
		t.Error("synth must stay closed")
	}
	if f.count("delete_settings") != 1 {
		t.Errorf("partially created settings handle must be released: %v", f.calls)
	}
}

func TestOpenDriverFailureTearsDownSession(t *testing.T) {
	f := newFakeSurface()
	f.failNewDriver = true
	s := newSynth(f)

	err := s.Open(true)
	if !errors.Is(err, ErrDriverCreation) {
		t.Fatalf("want ErrDriverCreation, got %v", err)
	}
	if s.IsOpen() {
		t.Error("partial success must not be observable")
	}
	if f.count("delete_synth") != 1 || f.count("delete_settings") != 1 {
		t.Errorf("engine and settings must be torn down: %v", f.calls)
	}
	if f.count("delete_driver") != 0 {
		t.Error("driver was never created, must not be deleted")
	}
}

func TestCloseReversesCreationOrder(t *testing.T) {
	f := newFakeSurface()
	s := newSynth(f)

	if err := s.Open(true); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	s.Close()

	driver := indexOf(f.calls, "delete_driver")
	synth := indexOf(f.calls, "delete_synth")
	settings := indexOf(f.calls, "delete_settings")
	if driver == -1 || synth == -1 || settings == -1 {
		t.Fatalf("missing teardown calls: %v", f.calls)
	}
	if !(driver < synth && synth < settings) {
		t.Errorf("teardown order driver->synth->settings violated: %v", f.calls)
	}
	if s.IsOpen() {
		t.Error("synth should be closed")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	f := newFakeSurface()
	s := newSynth(f)

	// Never opened: must be a no-op.
	s.Close()
	if len(f.calls) != 0 {
		t.Errorf("close on a never-opened synth issued calls: %v", f.calls)
	}

	if err := s.Open(true); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	s.Close()
	after := len(f.calls)
	s.Close()
	if len(f.calls) != after {
		t.Errorf("second close issued calls: %v", f.calls[after:])
	}
}

func TestCloseClearsSoundFontReference(t *testing.T) {
	f := newFakeSurface()
	s := newSynth(f)
	if err := s.Open(false); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, err := s.LoadSoundFont("/sf/test.sf2"); err != nil {
		t.Fatalf("LoadSoundFont failed: %v", err)
	}
	s.Close()
	if s.SoundFontFile() != "" || s.SoundFontID() != -1 {
		t.Errorf("soundfont reference not cleared: %q %d", s.SoundFontFile(), s.SoundFontID())
	}
}

func TestSetGainSuppressesUnchangedValue(t *testing.T) {
	f := newFakeSurface()
	s := newSynth(f)
	if err := s.Open(false); err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	s.SetGain(0.7)
	s.SetGain(0.7)
	if got := f.count("set_gain 0.7"); got != 1 {
		t.Errorf("set_gain issued %d times, want 1", got)
	}
	if s.Gain() != 0.7 {
		t.Errorf("gain = %v, want 0.7", s.Gain())
	}
}

func TestSetReverbSuppressesIdenticalConfig(t *testing.T) {
	f := newFakeSurface()
	s := newSynth(f)
	if err := s.Open(false); err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	rv := Reverb{Room: 0.3, Damp: 0.1, Width: 0.5, Level: 0.8}
	if !s.SetReverb(rv) {
		t.Fatal("SetReverb reported failure")
	}
	if !s.SetReverb(rv) {
		t.Fatal("suppressed SetReverb must report success")
	}
	if got := f.count("setnum synth.reverb.damp=0.1"); got != 1 {
		t.Errorf("reverb damp set %d times, want 1", got)
	}
	if s.Reverb() != rv {
		t.Errorf("Reverb() = %+v, want %+v", s.Reverb(), rv)
	}
}

func TestSetChorusSuppressesIdenticalConfig(t *testing.T) {
	f := newFakeSurface()
	s := newSynth(f)
	if err := s.Open(false); err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	ch := Chorus{Nr: 4, Speed: 0.4, Depth: 10, Type: 1, Level: 2}
	s.SetChorus(ch)
	s.SetChorus(ch)
	if got := f.count("setnum synth.chorus.depth=10"); got != 1 {
		t.Errorf("chorus depth set %d times, want 1", got)
	}
	if got := f.count("set_chorus_type -1 1"); got != 1 {
		t.Errorf("chorus type set %d times, want 1", got)
	}
}

func TestSetReverbPartialFailureReported(t *testing.T) {
	f := newFakeSurface()
	f.failSet["synth.reverb.width"] = true
	s := newSynth(f)
	if err := s.Open(false); err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if s.SetReverb(Reverb{Room: 0.3}) {
		t.Error("partial failure must report false")
	}
	// All sub-settings are still attempted, no rollback.
	if f.count("setnum synth.reverb.damp=0") != 1 {
		t.Errorf("remaining sub-settings must still be applied: %v", f.calls)
	}
}

func TestChangeObserver(t *testing.T) {
	f := newFakeSurface()
	s := newSynth(f)
	if err := s.Open(false); err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	var props []string
	s.OnChange(func(prop string) { props = append(props, prop) })

	s.SetGain(0.5)
	s.SetReverb(ReverbHall)
	s.SetChorus(ChorusLight)
	s.SetGain(0.5) // suppressed, no notification

	want := []string{PropGain, PropReverb, PropChorus}
	if strings.Join(props, ",") != strings.Join(want, ",") {
		t.Errorf("observed %v, want %v", props, want)
	}
}

func TestLoadSoundFontFailure(t *testing.T) {
	f := newFakeSurface()
	f.failSFLoad = true
	s := newSynth(f)
	if err := s.Open(false); err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	_, err := s.LoadSoundFont("/sf/missing.sf2")
	if !errors.Is(err, ErrSoundFontLoad) {
		t.Fatalf("want ErrSoundFontLoad, got %v", err)
	}
	if s.SoundFontFile() != "" || s.SoundFontID() != -1 {
		t.Error("failed load must clear the soundfont reference")
	}
}

func TestUnloadSoundFont(t *testing.T) {
	f := newFakeSurface()
	s := newSynth(f)
	if err := s.Open(false); err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	id, err := s.LoadSoundFont("/sf/test.sf2")
	if err != nil {
		t.Fatalf("LoadSoundFont failed: %v", err)
	}
	if err := s.UnloadSoundFont(id); err != nil {
		t.Fatalf("UnloadSoundFont failed: %v", err)
	}
	if s.SoundFontFile() != "" {
		t.Error("unloading the active soundfont must clear the reference")
	}

	f.failSFUnload = true
	if err := s.UnloadSoundFont(42); !errors.Is(err, ErrSoundFontUnload) {
		t.Errorf("want ErrSoundFontUnload, got %v", err)
	}
}

func TestCloneFidelity(t *testing.T) {
	f := newFakeSurface()
	src := newSynth(f)
	if err := src.Open(false); err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	src.SetGain(0.7)
	rv := Reverb{Room: 0.4, Damp: 0.2, Width: 0.6, Level: 0.9}
	ch := Chorus{Nr: 5, Speed: 0.5, Depth: 12, Type: 1, Level: 3}
	src.SetReverb(rv)
	src.SetChorus(ch)
	if _, err := src.LoadSoundFont("/sf/test.sf2"); err != nil {
		t.Fatalf("LoadSoundFont failed: %v", err)
	}

	clone, err := NewSynthFrom(src, false)
	if err != nil {
		t.Fatalf("clone failed: %v", err)
	}
	defer clone.Close()

	if clone.Gain() != 0.7 {
		t.Errorf("clone gain = %v, want 0.7", clone.Gain())
	}
	if clone.Reverb() != rv {
		t.Errorf("clone reverb = %+v, want %+v", clone.Reverb(), rv)
	}
	if clone.Chorus() != ch {
		t.Errorf("clone chorus = %+v, want %+v", clone.Chorus(), ch)
	}
	if clone.SoundFontFile() != src.SoundFontFile() {
		t.Errorf("clone soundfont = %q, want %q", clone.SoundFontFile(), src.SoundFontFile())
	}
	if clone.SettingInt("synth.device-id") != xgCompatibilityDeviceID {
		t.Errorf("clone device-id = %d, want %d", clone.SettingInt("synth.device-id"), xgCompatibilityDeviceID)
	}
	if len(f.sfLoaded) != 2 {
		t.Errorf("soundfont must be re-loaded by path for the clone, loads: %v", f.sfLoaded)
	}
}

func TestCloneRequiresOpenSource(t *testing.T) {
	f := newFakeSurface()
	src := newSynth(f)
	if _, err := NewSynthFrom(src, false); err == nil {
		t.Fatal("cloning a closed synth must fail")
	}
}

func TestCloneSoundFontFailureClosesClone(t *testing.T) {
	f := newFakeSurface()
	src := newSynth(f)
	if err := src.Open(false); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, err := src.LoadSoundFont("/sf/test.sf2"); err != nil {
		t.Fatalf("LoadSoundFont failed: %v", err)
	}

	f.failSFLoad = true
	before := f.count("delete_synth")
	_, err := NewSynthFrom(src, false)
	if !errors.Is(err, ErrSoundFontLoad) {
		t.Fatalf("want ErrSoundFontLoad, got %v", err)
	}
	if f.count("delete_synth") != before+1 {
		t.Error("half-built clone must be closed on soundfont failure")
	}
}

func TestEngineVersionString(t *testing.T) {
	f := newFakeSurface()
	f.version = [3]int{2, 4, 1}
	s := newSynth(f)
	if got := s.EngineVersion(); got != "2.4.1" {
		t.Errorf("EngineVersion() = %q, want 2.4.1", got)
	}
}

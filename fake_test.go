package fluidgo

import (
	"fmt"

	"fluidgo/native"
)

// fakeSurface is a recording implementation of the native call surface. It
// keeps a per-settings-handle key/value store so clone fidelity can be
// verified, and records every call in order for lifecycle assertions.
type fakeSurface struct {
	calls []string

	nextHandle uintptr

	version [3]int

	failNewSynth    bool
	failNewDriver   bool
	failSet         map[string]bool
	failSFLoad      bool
	failSFUnload    bool
	failNewPlayer   bool
	failPlayerAdd   bool
	failPlayerPlay  bool
	failPlayerStop  bool
	failPlayerJoin  bool
	failNewRenderer bool

	// Render simulation: the player reports playing until totalBlocks
	// blocks are processed; block failRenderAt (1-based) fails.
	totalBlocks  int
	failRenderAt int
	blocksDone   int
	playing      bool

	store      map[native.Handle]map[string]any
	gain       map[native.Handle]float32
	chorusType map[native.Handle]int

	sysexPayloads [][]byte
	sfLoaded      []string
	sfNextID      int
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{
		version:     [3]int{2, 3, 0},
		totalBlocks: 8,
		failSet:     map[string]bool{},
		store:       map[native.Handle]map[string]any{},
		gain:        map[native.Handle]float32{},
		chorusType:  map[native.Handle]int{},
		sfNextID:    1,
	}
}

func (f *fakeSurface) record(format string, args ...any) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeSurface) count(call string) int {
	n := 0
	for _, c := range f.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (f *fakeSurface) handle() native.Handle {
	f.nextHandle++
	return native.Handle(f.nextHandle)
}

func (f *fakeSurface) Version() (int, int, int) {
	return f.version[0], f.version[1], f.version[2]
}

func (f *fakeSurface) NewSettings() native.Handle {
	f.record("new_settings")
	h := f.handle()
	f.store[h] = map[string]any{}
	return h
}

func (f *fakeSurface) DeleteSettings(settings native.Handle) {
	f.record("delete_settings")
}

func (f *fakeSurface) SettingsSetStr(settings native.Handle, key, value string) int {
	f.record("setstr %s=%s", key, value)
	if f.failSet[key] {
		return native.Failed
	}
	f.store[settings][key] = value
	return native.OK
}

func (f *fakeSurface) SettingsSetNum(settings native.Handle, key string, value float64) int {
	f.record("setnum %s=%v", key, value)
	if f.failSet[key] {
		return native.Failed
	}
	f.store[settings][key] = value
	return native.OK
}

func (f *fakeSurface) SettingsSetInt(settings native.Handle, key string, value int) int {
	f.record("setint %s=%d", key, value)
	if f.failSet[key] {
		return native.Failed
	}
	f.store[settings][key] = value
	return native.OK
}

func (f *fakeSurface) SettingsCopyStr(settings native.Handle, key string, size int) string {
	v, _ := f.store[settings][key].(string)
	if len(v) >= size {
		v = v[:size-1]
	}
	return v
}

func (f *fakeSurface) SettingsGetInt(settings native.Handle, key string) int {
	v, _ := f.store[settings][key].(int)
	return v
}

func (f *fakeSurface) SettingsGetNum(settings native.Handle, key string) float64 {
	v, _ := f.store[settings][key].(float64)
	return v
}

func (f *fakeSurface) NewSynth(settings native.Handle) native.Handle {
	f.record("new_synth")
	if f.failNewSynth {
		return 0
	}
	return f.handle()
}

func (f *fakeSurface) DeleteSynth(synth native.Handle) {
	f.record("delete_synth")
}

func (f *fakeSurface) SetGain(synth native.Handle, gain float32) {
	f.record("set_gain %v", gain)
	f.gain[synth] = gain
}

func (f *fakeSurface) Gain(synth native.Handle) float32 {
	return f.gain[synth]
}

func (f *fakeSurface) NoteOn(synth native.Handle, channel, key, velocity int) int {
	f.record("noteon %d %d %d", channel, key, velocity)
	return native.OK
}

func (f *fakeSurface) NoteOff(synth native.Handle, channel, key int) int {
	f.record("noteoff %d %d", channel, key)
	return native.OK
}

func (f *fakeSurface) ProgramChange(synth native.Handle, channel, program int) int {
	f.record("program_change %d %d", channel, program)
	return native.OK
}

func (f *fakeSurface) ControlChange(synth native.Handle, channel, controller, value int) int {
	f.record("cc %d %d %d", channel, controller, value)
	return native.OK
}

func (f *fakeSurface) SystemReset(synth native.Handle) int {
	f.record("system_reset")
	return native.OK
}

func (f *fakeSurface) Sysex(synth native.Handle, payload []byte) (int, int) {
	f.record("sysex len=%d", len(payload))
	f.sysexPayloads = append(f.sysexPayloads, append([]byte(nil), payload...))
	return len(payload), native.OK
}

func (f *fakeSurface) SetChorusGroupType(synth native.Handle, group, chorusType int) int {
	f.record("set_chorus_type %d %d", group, chorusType)
	f.chorusType[synth] = chorusType
	return native.OK
}

func (f *fakeSurface) ChorusGroupType(synth native.Handle, group int) int {
	return f.chorusType[synth]
}

func (f *fakeSurface) SFLoad(synth native.Handle, path string, resetPresets bool) int {
	f.record("sfload %s", path)
	if f.failSFLoad {
		return native.Failed
	}
	f.sfLoaded = append(f.sfLoaded, path)
	id := f.sfNextID
	f.sfNextID++
	return id
}

func (f *fakeSurface) SFUnload(synth native.Handle, id int, resetPresets bool) int {
	f.record("sfunload %d", id)
	if f.failSFUnload {
		return native.Failed
	}
	return native.OK
}

func (f *fakeSurface) NewAudioDriver(settings, synth native.Handle) native.Handle {
	f.record("new_driver")
	if f.failNewDriver {
		return 0
	}
	return f.handle()
}

func (f *fakeSurface) DeleteAudioDriver(driver native.Handle) {
	f.record("delete_driver")
}

func (f *fakeSurface) NewPlayer(synth native.Handle) native.Handle {
	f.record("new_player")
	if f.failNewPlayer {
		return 0
	}
	return f.handle()
}

func (f *fakeSurface) DeletePlayer(player native.Handle) {
	f.record("delete_player")
}

func (f *fakeSurface) PlayerAdd(player native.Handle, midiPath string) int {
	f.record("player_add %s", midiPath)
	if f.failPlayerAdd {
		return native.Failed
	}
	return native.OK
}

func (f *fakeSurface) PlayerPlay(player native.Handle) int {
	f.record("player_play")
	if f.failPlayerPlay {
		return native.Failed
	}
	f.playing = true
	return native.OK
}

func (f *fakeSurface) PlayerStop(player native.Handle) int {
	f.record("player_stop")
	f.playing = false
	if f.failPlayerStop {
		return native.Failed
	}
	return native.OK
}

func (f *fakeSurface) PlayerJoin(player native.Handle) int {
	f.record("player_join")
	if f.failPlayerJoin {
		return native.Failed
	}
	return native.OK
}

func (f *fakeSurface) PlayerStatus(player native.Handle) int {
	if f.playing && f.blocksDone < f.totalBlocks {
		return native.PlayerPlaying
	}
	return native.PlayerDone
}

func (f *fakeSurface) NewFileRenderer(synth native.Handle) native.Handle {
	f.record("new_renderer")
	if f.failNewRenderer {
		return 0
	}
	return f.handle()
}

func (f *fakeSurface) DeleteFileRenderer(renderer native.Handle) {
	f.record("delete_renderer")
}

func (f *fakeSurface) RenderBlock(renderer native.Handle) int {
	f.blocksDone++
	f.record("render_block %d", f.blocksDone)
	if f.failRenderAt > 0 && f.blocksDone == f.failRenderAt {
		return native.Failed
	}
	return native.OK
}

// indexOf returns the position of the first call equal to want, or -1.
func indexOf(calls []string, want string) int {
	for i, c := range calls {
		if c == want {
			return i
		}
	}
	return -1
}

package native

import (
	"fmt"
	"unsafe"

	"github.com/ebitengine/purego"
)

// library implements Surface on top of the shared library loaded by the
// resolver. Every method that marshals arguments does so through a scoped
// Arena so no foreign-visible allocation outlives its call.
type library struct {
	version func(major, minor, micro uintptr)

	newSettings      func() uintptr
	deleteSettings   func(settings uintptr)
	settingsSetstr   func(settings, key, value uintptr) int32
	settingsSetnum   func(settings, key uintptr, value float64) int32
	settingsSetint   func(settings, key uintptr, value int32) int32
	settingsCopystr  func(settings, key, buf uintptr, size int32) int32
	settingsGetint   func(settings, key, out uintptr) int32
	settingsGetnum   func(settings, key, out uintptr) int32

	newSynth           func(settings uintptr) uintptr
	deleteSynth        func(synth uintptr)
	setGain            func(synth uintptr, gain float32)
	getGain            func(synth uintptr) float32
	noteon             func(synth uintptr, channel, key, velocity int32) int32
	noteoff            func(synth uintptr, channel, key int32) int32
	programChange      func(synth uintptr, channel, program int32) int32
	cc                 func(synth uintptr, channel, controller, value int32) int32
	systemReset        func(synth uintptr) int32
	sysex              func(synth, data uintptr, length int32, response, responseLen, handled uintptr, dryrun int32) int32
	setChorusGroupType func(synth uintptr, group, chorusType int32) int32
	getChorusGroupType func(synth uintptr, group int32, out uintptr) int32
	sfload             func(synth, path uintptr, resetPresets int32) int32
	sfunload           func(synth uintptr, id, resetPresets int32) int32

	newAudioDriver    func(settings, synth uintptr) uintptr
	deleteAudioDriver func(driver uintptr)

	newPlayer       func(synth uintptr) uintptr
	deletePlayer    func(player uintptr)
	playerAdd       func(player, midiPath uintptr) int32
	playerPlay      func(player uintptr) int32
	playerStop      func(player uintptr) int32
	playerJoin      func(player uintptr) int32
	playerGetStatus func(player uintptr) int32

	newFileRenderer          func(synth uintptr) uintptr
	deleteFileRenderer       func(renderer uintptr)
	fileRendererProcessBlock func(renderer uintptr) int32
}

// bind resolves every engine symbol against the loaded library handle.
// RegisterLibFunc panics on a missing symbol; that is converted into an
// error so the resolver can fall through to the next candidate.
func bind(handle uintptr) (s *library, err error) {
	defer func() {
		if r := recover(); r != nil {
			s = nil
			err = fmt.Errorf("binding engine symbols: %v", r)
		}
	}()

	l := &library{}
	for _, sym := range []struct {
		fptr any
		name string
	}{
		{&l.version, "fluid_version"},
		{&l.newSettings, "new_fluid_settings"},
		{&l.deleteSettings, "delete_fluid_settings"},
		{&l.settingsSetstr, "fluid_settings_setstr"},
		{&l.settingsSetnum, "fluid_settings_setnum"},
		{&l.settingsSetint, "fluid_settings_setint"},
		{&l.settingsCopystr, "fluid_settings_copystr"},
		{&l.settingsGetint, "fluid_settings_getint"},
		{&l.settingsGetnum, "fluid_settings_getnum"},
		{&l.newSynth, "new_fluid_synth"},
		{&l.deleteSynth, "delete_fluid_synth"},
		{&l.setGain, "fluid_synth_set_gain"},
		{&l.getGain, "fluid_synth_get_gain"},
		{&l.noteon, "fluid_synth_noteon"},
		{&l.noteoff, "fluid_synth_noteoff"},
		{&l.programChange, "fluid_synth_program_change"},
		{&l.cc, "fluid_synth_cc"},
		{&l.systemReset, "fluid_synth_system_reset"},
		{&l.sysex, "fluid_synth_sysex"},
		{&l.setChorusGroupType, "fluid_synth_set_chorus_group_type"},
		{&l.getChorusGroupType, "fluid_synth_get_chorus_group_type"},
		{&l.sfload, "fluid_synth_sfload"},
		{&l.sfunload, "fluid_synth_sfunload"},
		{&l.newAudioDriver, "new_fluid_audio_driver"},
		{&l.deleteAudioDriver, "delete_fluid_audio_driver"},
		{&l.newPlayer, "new_fluid_player"},
		{&l.deletePlayer, "delete_fluid_player"},
		{&l.playerAdd, "fluid_player_add"},
		{&l.playerPlay, "fluid_player_play"},
		{&l.playerStop, "fluid_player_stop"},
		{&l.playerJoin, "fluid_player_join"},
		{&l.playerGetStatus, "fluid_player_get_status"},
		{&l.newFileRenderer, "new_fluid_file_renderer"},
		{&l.deleteFileRenderer, "delete_fluid_file_renderer"},
		{&l.fileRendererProcessBlock, "fluid_file_renderer_process_block"},
	} {
		purego.RegisterLibFunc(sym.fptr, handle, sym.name)
	}
	return l, nil
}

func (l *library) Version() (major, minor, micro int) {
	_ = With(func(a *Arena) error {
		maj, min, mic := a.OutInt32(), a.OutInt32(), a.OutInt32()
		l.version(addr(maj), addr(min), addr(mic))
		major, minor, micro = int(*maj), int(*min), int(*mic)
		return nil
	})
	return major, minor, micro
}

func (l *library) NewSettings() Handle {
	return Handle(l.newSettings())
}

func (l *library) DeleteSettings(settings Handle) {
	l.deleteSettings(uintptr(settings))
}

func (l *library) SettingsSetStr(settings Handle, key, value string) (code int) {
	_ = With(func(a *Arena) error {
		code = int(l.settingsSetstr(uintptr(settings), a.CString(key), a.CString(value)))
		return nil
	})
	return code
}

func (l *library) SettingsSetNum(settings Handle, key string, value float64) (code int) {
	_ = With(func(a *Arena) error {
		code = int(l.settingsSetnum(uintptr(settings), a.CString(key), value))
		return nil
	})
	return code
}

func (l *library) SettingsSetInt(settings Handle, key string, value int) (code int) {
	_ = With(func(a *Arena) error {
		code = int(l.settingsSetint(uintptr(settings), a.CString(key), int32(value)))
		return nil
	})
	return code
}

func (l *library) SettingsCopyStr(settings Handle, key string, size int) (value string) {
	_ = With(func(a *Arena) error {
		buf := a.Buffer(size)
		l.settingsCopystr(uintptr(settings), a.CString(key), uintptr(unsafe.Pointer(&buf[0])), int32(size))
		value = cstring(buf)
		return nil
	})
	return value
}

func (l *library) SettingsGetInt(settings Handle, key string) (value int) {
	_ = With(func(a *Arena) error {
		out := a.OutInt32()
		l.settingsGetint(uintptr(settings), a.CString(key), addr(out))
		value = int(*out)
		return nil
	})
	return value
}

func (l *library) SettingsGetNum(settings Handle, key string) (value float64) {
	_ = With(func(a *Arena) error {
		out := a.OutFloat64()
		l.settingsGetnum(uintptr(settings), a.CString(key), addr(out))
		value = *out
		return nil
	})
	return value
}

func (l *library) NewSynth(settings Handle) Handle {
	return Handle(l.newSynth(uintptr(settings)))
}

func (l *library) DeleteSynth(synth Handle) {
	l.deleteSynth(uintptr(synth))
}

func (l *library) SetGain(synth Handle, gain float32) {
	l.setGain(uintptr(synth), gain)
}

func (l *library) Gain(synth Handle) float32 {
	return l.getGain(uintptr(synth))
}

func (l *library) NoteOn(synth Handle, channel, key, velocity int) int {
	return int(l.noteon(uintptr(synth), int32(channel), int32(key), int32(velocity)))
}

func (l *library) NoteOff(synth Handle, channel, key int) int {
	return int(l.noteoff(uintptr(synth), int32(channel), int32(key)))
}

func (l *library) ProgramChange(synth Handle, channel, program int) int {
	return int(l.programChange(uintptr(synth), int32(channel), int32(program)))
}

func (l *library) ControlChange(synth Handle, channel, controller, value int) int {
	return int(l.cc(uintptr(synth), int32(channel), int32(controller), int32(value)))
}

func (l *library) SystemReset(synth Handle) int {
	return int(l.systemReset(uintptr(synth)))
}

func (l *library) Sysex(synth Handle, payload []byte) (handled, code int) {
	_ = With(func(a *Arena) error {
		out := a.OutInt32()
		code = int(l.sysex(uintptr(synth), a.Bytes(payload), int32(len(payload)), 0, 0, addr(out), 0))
		handled = int(*out)
		return nil
	})
	return handled, code
}

func (l *library) SetChorusGroupType(synth Handle, group, chorusType int) int {
	return int(l.setChorusGroupType(uintptr(synth), int32(group), int32(chorusType)))
}

func (l *library) ChorusGroupType(synth Handle, group int) (chorusType int) {
	_ = With(func(a *Arena) error {
		out := a.OutInt32()
		l.getChorusGroupType(uintptr(synth), int32(group), addr(out))
		chorusType = int(*out)
		return nil
	})
	return chorusType
}

func (l *library) SFLoad(synth Handle, path string, resetPresets bool) int {
	// The engine keeps a reference to the path, so it gets a
	// process-lifetime allocation rather than a per-call arena.
	return int(l.sfload(uintptr(synth), pinForever(path), b2i(resetPresets)))
}

func (l *library) SFUnload(synth Handle, id int, resetPresets bool) int {
	return int(l.sfunload(uintptr(synth), int32(id), b2i(resetPresets)))
}

func (l *library) NewAudioDriver(settings, synth Handle) Handle {
	return Handle(l.newAudioDriver(uintptr(settings), uintptr(synth)))
}

func (l *library) DeleteAudioDriver(driver Handle) {
	l.deleteAudioDriver(uintptr(driver))
}

func (l *library) NewPlayer(synth Handle) Handle {
	return Handle(l.newPlayer(uintptr(synth)))
}

func (l *library) DeletePlayer(player Handle) {
	l.deletePlayer(uintptr(player))
}

func (l *library) PlayerAdd(player Handle, midiPath string) (code int) {
	_ = With(func(a *Arena) error {
		code = int(l.playerAdd(uintptr(player), a.CString(midiPath)))
		return nil
	})
	return code
}

func (l *library) PlayerPlay(player Handle) int {
	return int(l.playerPlay(uintptr(player)))
}

func (l *library) PlayerStop(player Handle) int {
	return int(l.playerStop(uintptr(player)))
}

func (l *library) PlayerJoin(player Handle) int {
	return int(l.playerJoin(uintptr(player)))
}

func (l *library) PlayerStatus(player Handle) int {
	return int(l.playerGetStatus(uintptr(player)))
}

func (l *library) NewFileRenderer(synth Handle) Handle {
	return Handle(l.newFileRenderer(uintptr(synth)))
}

func (l *library) DeleteFileRenderer(renderer Handle) {
	l.deleteFileRenderer(uintptr(renderer))
}

func (l *library) RenderBlock(renderer Handle) int {
	return int(l.fileRendererProcessBlock(uintptr(renderer)))
}

func cstring(buf []byte) string {
	for i, c := range buf {
		if c == 0 {
			return string(buf[:i])
		}
	}
	return string(buf)
}

func b2i(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

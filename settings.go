package fluidgo

import "fluidgo/native"

// okCode is the engine's success sentinel for settings calls.
const okCode = native.OK

// Typed accessors over the engine's settings object. Keys are the engine's
// dotted strings ("synth.gain", "audio.file.type", ...) and are passed
// through without validation: an unknown key surfaces as a false return or a
// zero default, exactly as the engine reports it.
//
// The session must be open.

// settingBufSize bounds string values read back from the engine. Longer
// values are silently truncated; the engine gives no indication.
const settingBufSize = 256

// SetSettingString sets a string-valued setting. True iff the engine
// accepted it.
func (s *Synth) SetSettingString(key, value string) bool {
	return s.surface.SettingsSetStr(s.settings, key, value) == okCode
}

// SetSettingNum sets a float-valued setting.
func (s *Synth) SetSettingNum(key string, value float64) bool {
	return s.surface.SettingsSetNum(s.settings, key, value) == okCode
}

// SetSettingInt sets an int-valued setting.
func (s *Synth) SetSettingInt(key string, value int) bool {
	return s.surface.SettingsSetInt(s.settings, key, value) == okCode
}

// SettingString reads a string setting. Unknown keys read as "".
func (s *Synth) SettingString(key string) string {
	return s.surface.SettingsCopyStr(s.settings, key, settingBufSize)
}

// SettingInt reads an int setting. Unknown keys read as 0.
func (s *Synth) SettingInt(key string) int {
	return s.surface.SettingsGetInt(s.settings, key)
}

// SettingNum reads a float setting. Unknown keys read as 0.
func (s *Synth) SettingNum(key string) float64 {
	return s.surface.SettingsGetNum(s.settings, key)
}

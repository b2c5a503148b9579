package fluidgo

import (
	"gitlab.com/gomidi/midi/v2"

	"fluidgo/native"
)

// Send maps one MIDI message to the corresponding engine call. Channel
// voice messages map one to one; a note-on with velocity 0 is a note-off by
// MIDI convention and is sent as one. System reset triggers a full engine
// reset. Status-only messages other than reset are ignored.
//
// No-op on a closed session.
func (s *Synth) Send(msg midi.Message) {
	if !s.IsOpen() {
		return
	}

	var channel, key, velocity, program, controller, value uint8
	switch {
	case msg.GetNoteStart(&channel, &key, &velocity):
		s.surface.NoteOn(s.synth, int(channel), int(key), int(velocity))
	case msg.GetNoteEnd(&channel, &key):
		s.surface.NoteOff(s.synth, int(channel), int(key))
	case msg.GetProgramChange(&channel, &program):
		s.surface.ProgramChange(s.synth, int(channel), int(program))
	case msg.GetControlChange(&channel, &controller, &value):
		s.surface.ControlChange(s.synth, int(channel), int(controller), int(value))
	case msg.Is(midi.SysExMsg):
		s.SendSysEx(msg.Bytes())
	case msg.Is(midi.ResetMsg):
		s.surface.SystemReset(s.synth)
	}
}

// SendSysEx sends a system-exclusive message. The engine expects the
// payload without the leading 0xF0 and trailing 0xF7, so both framing bytes
// are stripped before marshaling.
//
// The engine reports how many bytes it consumed; a partially handled
// message is only logged, matching the engine's own lenient treatment of
// sysex it does not understand.
func (s *Synth) SendSysEx(data []byte) {
	if !s.IsOpen() || len(data) == 0 {
		return
	}

	payload := data
	if payload[0] == 0xF0 {
		payload = payload[1:]
	}
	if n := len(payload); n > 0 && payload[n-1] == 0xF7 {
		payload = payload[:n-1]
	}

	handled, code := s.surface.Sysex(s.synth, payload)
	if code != native.OK {
		s.log.Debug("sysex not handled by engine", "len", len(payload), "handled", handled)
	}
}

// Package fluidgo wraps a native audio-synthesis engine. A Synth session
// owns the engine's native handles, streams MIDI events to it, tunes its
// settings and effects, loads soundfonts, and renders MIDI files to audio
// offline.
//
// The native library resolves once per process; check Ready before opening
// sessions:
//
//	if !fluidgo.Ready() {
//		log.Fatal("no synthesis engine available")
//	}
//	synth := fluidgo.New()
//	if err := synth.Open(true); err != nil {
//		log.Fatal(err)
//	}
//	defer synth.Close()
//
//	synth.LoadSoundFont("/usr/share/sounds/sf2/default.sf2")
//	synth.Send(midi.NoteOn(0, 60, 100))
package fluidgo

package fluidgo

import (
	"fmt"
	"os"

	"fluidgo/native"
)

// RenderToFile renders a MIDI file to an audio file offline, using the
// engine's own player and file renderer ("fast file renderer for
// non-realtime MIDI file rendering").
//
// The work runs on a disposable clone of this session, created without an
// output driver so rendering never contends with a live audio device. The
// loop is a busy poll: offline rendering is throughput-bound, not
// wall-clock-bound, and the engine offers no completion callback.
//
// The output format is selected by "audio.file.type" (wav); the output only
// contains a real wave container when the engine was built with its sound
// file backend, raw PCM otherwise.
func (s *Synth) RenderToFile(midiPath, wavPath string) error {
	in, err := os.Open(midiPath)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInputNotFound, midiPath)
	}
	in.Close()

	clone, err := NewSynthFrom(s, false)
	if err != nil {
		return err
	}
	defer clone.Close()

	renderFailed := func(detail string) error {
		return fmt.Errorf("%w: %s (%s)", ErrRender, wavPath, detail)
	}

	if !clone.SetSettingString("audio.file.name", wavPath) {
		return renderFailed("can't set audio.file.name")
	}
	if !clone.SetSettingString("audio.file.type", "wav") {
		return renderFailed("can't set audio.file.type")
	}
	// Sample count as timing source instead of the system timer, so the
	// render runs at full speed and is deterministic.
	if !clone.SetSettingString("player.timing-source", "sample") {
		return renderFailed("can't set player.timing-source")
	}
	// Pinning sample memory only matters for real-time playback.
	if !clone.SetSettingInt("synth.lock-memory", 0) {
		return renderFailed("can't set synth.lock-memory")
	}

	sur := clone.surface
	player := sur.NewPlayer(clone.synth)
	if player == 0 {
		return renderFailed("can't create player")
	}
	if sur.PlayerAdd(player, midiPath) != native.OK {
		sur.DeletePlayer(player)
		return renderFailed("can't add MIDI file to player")
	}
	if sur.PlayerPlay(player) != native.OK {
		sur.DeletePlayer(player)
		return renderFailed("can't start player")
	}

	renderer := sur.NewFileRenderer(clone.synth)
	if renderer == 0 {
		sur.PlayerStop(player)
		sur.PlayerJoin(player)
		sur.DeletePlayer(player)
		return renderFailed("can't create file renderer")
	}

	blockFailed := false
	for sur.PlayerStatus(player) == native.PlayerPlaying {
		if sur.RenderBlock(renderer) != native.OK {
			blockFailed = true
			break
		}
	}

	// Stop the playback explicitly and wait until the player thread
	// settles, whatever the loop outcome.
	stopped := sur.PlayerStop(player) == native.OK
	joined := sur.PlayerJoin(player) == native.OK
	sur.DeleteFileRenderer(renderer)
	sur.DeletePlayer(player)
	clone.Close()

	if blockFailed {
		return renderFailed("block processing failed")
	}
	if !stopped || !joined {
		return renderFailed("player did not stop cleanly")
	}
	return nil
}

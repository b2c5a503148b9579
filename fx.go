package fluidgo

// Reverb holds the reverb parameters of the engine. Value semantics: two
// configs are the same setting iff all fields are equal.
type Reverb struct {
	Room  float64 // room size, 0..1
	Damp  float64 // high frequency damping, 0..1
	Width float64 // stereo spread, 0..100
	Level float64 // output level, 0..1
}

// Chorus holds the chorus parameters of the engine.
type Chorus struct {
	Nr    int     // voice count, 0..99
	Speed float64 // modulation speed in Hz, 0.1..5
	Depth float64 // modulation depth in ms, 0..256
	Type  int     // 0 sine, 1 triangle
	Level float64 // output level, 0..10
}

// Factory presets matching the engine's defaults plus a couple of commonly
// used rooms.
var (
	ReverbRoom   = Reverb{Room: 0.2, Damp: 0.0, Width: 0.5, Level: 0.9}
	ReverbHall   = Reverb{Room: 0.7, Damp: 0.3, Width: 0.8, Level: 0.9}
	ReverbDry    = Reverb{Room: 0.0, Damp: 0.0, Width: 0.0, Level: 0.0}
	ChorusLight  = Chorus{Nr: 3, Speed: 0.3, Depth: 8, Type: 0, Level: 2}
	ChorusNormal = Chorus{Nr: 3, Speed: 0.3, Depth: 8, Type: 0, Level: 2.5}
	ChorusOff    = Chorus{Nr: 0, Speed: 0.1, Depth: 0, Type: 0, Level: 0}
)

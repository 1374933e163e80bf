package descriptor

// Hooks is implemented by concrete descriptor generators. Every method has
// a default supplied by BaseHooks; concrete types embed BaseHooks and override only what they need, the way
// the teacher's executor dispatch only implements the action kinds a given
// command actually uses.
type Hooks interface {
	// OnNewTrack is called the first time a track is seen as active. The
	// returned value becomes that track's scratch for the remainder of its
	// lifetime, until OnTerminate or a generator Reset.
	OnNewTrack(track Track) (any, error)

	// OnUpdate is called once per sampled step for every currently active
	// track, with that track's scratch.
	OnUpdate(track Track, scratch any) error

	// OnTerminate is called once for every track reported terminated on a
	// sampled step (or still registered when TerminateAllTracks runs), with
	// that track's scratch, before the scratch is dropped from the
	// registry. A termination reported on a step skipped by the sampling
	// gate does not call it from Step.
	OnTerminate(track Track, scratch any) error

	// OnFrame is called once per sampled step, before any per-track hook.
	OnFrame() error

	// OnFinal is called once per sampled step, after every per-track hook
	// in that step's batch has completed.
	OnFinal() error

	// OnReset is called by Generator.Reset after internal state (frame
	// buffer, scratch registry, step counter) has already been cleared.
	OnReset() error

	// DefaultSettings returns the settings this generator should use if
	// Configure is never called explicitly.
	DefaultSettings() Settings
}

// BaseHooks supplies no-op/success defaults for every Hooks method.
// OnNewTrack returns (nil, nil), so every track gets an absent scratch;
// concrete generators that keep per-track state override it. DefaultSettings
// returns the package DefaultSettings. Concrete generators embed BaseHooks
// and override what they need.
type BaseHooks struct{}

func (BaseHooks) OnNewTrack(Track) (any, error) { return nil, nil }
func (BaseHooks) OnUpdate(Track, any) error      { return nil }
func (BaseHooks) OnTerminate(Track, any) error   { return nil }
func (BaseHooks) OnFrame() error                 { return nil }
func (BaseHooks) OnFinal() error                 { return nil }
func (BaseHooks) OnReset() error                 { return nil }
func (BaseHooks) DefaultSettings() Settings      { return DefaultSettings() }

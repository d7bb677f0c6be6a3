package session

import "time"

// Keys names the store entries owned by a session.
type Keys struct {
	Progress string
	Notes    string
	Theory   string
}

// DefaultKeys returns the key names used when none are configured.
func DefaultKeys() Keys {
	return Keys{
		Progress: "investigation-progress",
		Notes:    "investigation-notes",
		Theory:   "investigation-theory",
	}
}

// All lists every key, for Reset.
func (k Keys) All() []string {
	return []string{k.Progress, k.Notes, k.Theory}
}

func (k Keys) withDefaults() Keys {
	def := DefaultKeys()
	if k.Progress == "" {
		k.Progress = def.Progress
	}
	if k.Notes == "" {
		k.Notes = def.Notes
	}
	if k.Theory == "" {
		k.Theory = def.Theory
	}
	return k
}

// Timings holds every deferral used by the session.
type Timings struct {
	// RevealStagger separates consecutive cards in a reveal sequence.
	RevealStagger time.Duration
	// StartupDelay postpones the reveal of the initially active section.
	StartupDelay time.Duration
	// AutosaveDelay is the notepad debounce window.
	AutosaveDelay time.Duration
	// SaveAck is how long the save control shows its acknowledgement.
	SaveAck time.Duration
	// Celebration is how long the post-submission effect stays up.
	Celebration time.Duration
}

// DefaultTimings returns the stock timings.
func DefaultTimings() Timings {
	return Timings{
		RevealStagger: 100 * time.Millisecond,
		StartupDelay:  300 * time.Millisecond,
		AutosaveDelay: 2000 * time.Millisecond,
		SaveAck:       1500 * time.Millisecond,
		Celebration:   3000 * time.Millisecond,
	}
}

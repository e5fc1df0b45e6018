package sequencer

// SyncController holds the global sync flag.
// Pads can still be set individually; the global flag only wins at the moment
// it is toggled.
type SyncController struct {
	synced bool
}

// Toggle flips the global flag and applies it to every pad
func (s *SyncController) Toggle(pads []*Pad) bool {
	s.synced = !s.synced
	for _, p := range pads {
		p.SetSync(s.synced)
	}
	return s.synced
}

func (s *SyncController) Synced() bool {
	return s.synced
}

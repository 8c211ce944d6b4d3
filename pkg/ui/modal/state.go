package modal

// State holds a dialog's open flag for hosts that drive Render from it.
type State struct {
	open bool
}

// NewState returns a State starting at initialOpen.
func NewState(initialOpen bool) *State {
	return &State{open: initialOpen}
}

// Open sets the flag.
func (s *State) Open() { s.open = true }

// Close clears the flag.
func (s *State) Close() { s.open = false }

// Toggle flips the flag.
func (s *State) Toggle() { s.open = !s.open }

// IsOpen reports the flag.
func (s *State) IsOpen() bool { return s.open }

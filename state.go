package trajwatch

import "github.com/tmc/langchaingo/llms"

// NodeInfo describes one element of an observation.
type NodeInfo struct {
	// Text is the element as it appears in the text observation,
	// e.g. "[12] button 'Search'".
	Text string `yaml:"text"`
}

// Observation is what the agent saw at one point of the run.
type Observation struct {
	Text string `yaml:"text"`

	// Image is the screenshot of the page, if one was captured.
	Image *llms.BinaryContent `yaml:"-"`
}

// State is an observation snapshot. States are immutable once captured.
type State struct {
	// URL is the location of the page the observation was taken from.
	URL string `yaml:"url"`

	Observation Observation `yaml:"observation"`

	// Metadata maps element identifiers to their description. It is used to
	// resolve what an action's ElementID refers to.
	Metadata map[string]NodeInfo `yaml:"metadata,omitempty"`
}

// Node returns the metadata entry for id.
func (s *State) Node(id string) (NodeInfo, bool) {
	if s == nil || s.Metadata == nil {
		return NodeInfo{}, false
	}
	info, ok := s.Metadata[id]
	return info, ok
}

func (*State) trajectoryElement() {}

// MetaData is the per-run bookkeeping the caller keeps next to the trajectory.
type MetaData struct {
	// ActionHistory holds one label per realized step, oldest first.
	ActionHistory []string `yaml:"action_history"`
}

// NewMetaData returns MetaData whose history is seeded with "None", the label
// of the step before the first action.
func NewMetaData() *MetaData {
	return &MetaData{ActionHistory: []string{"None"}}
}

// LastAction returns the most recent history entry, or "None" when the
// history is empty.
func (m *MetaData) LastAction() string {
	if m == nil || len(m.ActionHistory) == 0 {
		return "None"
	}
	return m.ActionHistory[len(m.ActionHistory)-1]
}

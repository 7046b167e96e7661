package trailingspaces

import "github.com/bethropolis/trailspace/internal/core/trailing"

// State is the per-process data of the plugin. It is created in Initialize
// and only touched from the host's event goroutine.
type State struct {
	cache   *trailing.MatchCache
	ignored map[string]struct{}
}

func newState(syntaxIgnore []string) *State {
	ignored := make(map[string]struct{}, len(syntaxIgnore))
	for _, id := range syntaxIgnore {
		ignored[id] = struct{}{}
	}
	return &State{
		cache:   trailing.NewMatchCache(),
		ignored: ignored,
	}
}

// IsIgnored reports whether documents of languageID are skipped.
func (s *State) IsIgnored(languageID string) bool {
	_, ok := s.ignored[languageID]
	return ok
}

// Package state holds shared data stores consumed by the UI.
package state

import "github.com/mfenwick/couchtv/internal/catalog"

// LineupStore exposes the current channel lineup to the UI.
type LineupStore interface {
	Channels() []catalog.Channel
	SetChannels([]catalog.Channel)
	Rows() []catalog.Row
}

type lineupStore struct {
	channels []catalog.Channel
}

// NewLineupStore creates an empty lineup store.
func NewLineupStore() LineupStore {
	return &lineupStore{}
}

func (s *lineupStore) Channels() []catalog.Channel {
	return cloneChannels(s.channels)
}

func (s *lineupStore) SetChannels(channels []catalog.Channel) {
	s.channels = cloneChannels(channels)
}

func (s *lineupStore) Rows() []catalog.Row {
	return catalog.BuildRows(s.channels)
}

func cloneChannels(channels []catalog.Channel) []catalog.Channel {
	if len(channels) == 0 {
		return nil
	}
	dup := make([]catalog.Channel, len(channels))
	copy(dup, channels)
	return dup
}

package pattern

// Badge is the short protocol label shown above the groups.
type Badge struct {
	Protocol string `json:"protocol"` // "MPv1", "MPv2"
	Text     string `json:"text"`     // upper-cased label, e.g. "MPV1"
}

func (b *Badge) Type() PatternType { return PatternTypeBadge }

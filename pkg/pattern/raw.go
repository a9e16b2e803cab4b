package pattern

// Raw holds the cell text exactly as it was acquired.
type Raw struct {
	Text string `json:"text"`
}

func (r *Raw) Type() PatternType { return PatternTypeRaw }

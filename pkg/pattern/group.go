package pattern

// FieldGroup is a titled block of key/value rows.
type FieldGroup struct {
	Title  string  `json:"title"`
	Rows   []Row   `json:"rows,omitempty"`
	Blocks []Block `json:"blocks,omitempty"` // labelled sub-blocks, used for MPv2 events
}

// Row is a single key/value line.
type Row struct {
	Key   string `json:"key"` // display name
	Value string `json:"value"`
	JSON  bool   `json:"json,omitempty"` // value is pretty-printed JSON and rendered as a block
}

// Block is a labelled run of rows inside a group.
type Block struct {
	Label string `json:"label"`
	Rows  []Row  `json:"rows,omitempty"`
}

func (g *FieldGroup) Type() PatternType { return PatternTypeGroup }

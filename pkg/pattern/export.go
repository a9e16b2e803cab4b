package pattern

// Export is the serialised form of the record with its copy affordance.
type Export struct {
	Kind      string `json:"kind"` // "query-string" or "json"
	Title     string `json:"title"`
	Display   string `json:"display"`
	Copy      string `json:"copy"`
	CopyLabel string `json:"copy_label"`
}

func (e *Export) Type() PatternType { return PatternTypeExport }

package model

// SplitGroup describes one file written by the splitter
type SplitGroup struct {
	Value string `json:"value"`
	File  string `json:"file"`
	Rows  int    `json:"rows"`
}

// SplitReport is the outcome of splitting a table by a column
type SplitReport struct {
	Groups      []SplitGroup  `json:"groups"`
	Failures    []FileFailure `json:"failures,omitempty"`
	BlankValues int           `json:"blank_values"`
}

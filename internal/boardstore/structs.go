package boardstore

type Group struct {
	GroupID  string `json:"group_id"`
	BoardID  string `json:"board_id"`
	Name     string `json:"name"`
	Position int32  `json:"position"`
}

type Item struct {
	ItemID    string `json:"item_id"`
	GroupID   string `json:"group_id"`
	BoardID   string `json:"board_id"`
	Name      string `json:"name"`
	Position  int32  `json:"position"`
	CreatedBy string `json:"created_by"`
}

type Column struct {
	ColumnID string `json:"column_id"`
	BoardID  string `json:"board_id"`
	Title    string `json:"title"`
	Type     string `json:"type"`
	Position int32  `json:"position"`
	// Settings is a json blob with type-specific options, e.g. the label
	// palette for status columns.
	Settings string `json:"settings"`
}

type ColumnValue struct {
	ValueID  string `json:"value_id"`
	ItemID   string `json:"item_id"`
	ColumnID string `json:"column_id"`
	Value    string `json:"value"`
}

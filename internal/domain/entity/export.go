package entity

// ExportTable is a wide result set in query projection order.
type ExportTable struct {
	Columns []string
	Rows    [][]interface{}
}

// Stats holds study-wide counters.
type Stats struct {
	PatientsTotal  int64
	FollowUpsTotal int64
}

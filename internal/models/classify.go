package models

// ColumnRoles holds the disjoint column-name sets every insight and chart
// rule works from. Each list keeps schema order.
type ColumnRoles struct {
	Numeric     []string
	Categorical []string
	Temporal    []string
}

// Classify assigns every column to at most one role. Boolean and other
// columns get no role and are ignored downstream.
func Classify(ds *Dataset) ColumnRoles {
	var roles ColumnRoles
	if ds == nil {
		return roles
	}
	for _, c := range ds.Columns {
		switch c.Kind {
		case KindNumeric:
			roles.Numeric = append(roles.Numeric, c.Name)
		case KindString:
			roles.Categorical = append(roles.Categorical, c.Name)
		case KindTemporal:
			roles.Temporal = append(roles.Temporal, c.Name)
		}
	}
	return roles
}

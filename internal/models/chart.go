package models

import (
	"encoding/json"
	"fmt"
)

type ChartType string

const (
	ChartLine    ChartType = "line"
	ChartBar     ChartType = "bar"
	ChartScatter ChartType = "scatter"
	ChartArea    ChartType = "area"
	ChartHist    ChartType = "hist"
)

func (t ChartType) Valid() bool {
	switch t {
	case ChartLine, ChartBar, ChartScatter, ChartArea, ChartHist:
		return true
	default:
		return false
	}
}

// Axis is a chart axis binding: nothing, a single column, or a list of
// columns. It marshals to null, a string or an array respectively.
type Axis struct {
	columns []string
	list    bool
}

func NoAxis() Axis { return Axis{} }

func ColumnAxis(name string) Axis {
	return Axis{columns: []string{name}}
}

func ColumnsAxis(names ...string) Axis {
	return Axis{columns: append([]string(nil), names...), list: true}
}

func (a Axis) IsZero() bool { return len(a.columns) == 0 }

func (a Axis) IsList() bool { return a.list }

func (a Axis) Columns() []string { return append([]string(nil), a.columns...) }

// Column returns the single bound column, or the first one of a list.
func (a Axis) Column() string {
	if len(a.columns) == 0 {
		return ""
	}
	return a.columns[0]
}

func (a Axis) String() string {
	switch {
	case a.IsZero():
		return ""
	case a.list:
		return fmt.Sprint(a.columns)
	default:
		return a.columns[0]
	}
}

func (a Axis) MarshalJSON() ([]byte, error) {
	switch {
	case a.IsZero():
		return []byte("null"), nil
	case a.list:
		return json.Marshal(a.columns)
	default:
		return json.Marshal(a.columns[0])
	}
}

func (a *Axis) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*a = axisFromValue(v)
	return nil
}

func axisFromValue(v any) Axis {
	switch x := v.(type) {
	case string:
		return ColumnAxis(x)
	case []string:
		return ColumnsAxis(x...)
	case []any:
		names := make([]string, 0, len(x))
		for _, item := range x {
			if s, ok := item.(string); ok {
				names = append(names, s)
			}
		}
		return ColumnsAxis(names...)
	default:
		return NoAxis()
	}
}

// ChartSpec declares one chart independently of the rendering runtime.
type ChartSpec struct {
	ID        string    `json:"id"`
	Type      ChartType `json:"type"`
	Title     string    `json:"title"`
	X         Axis      `json:"x"`
	Y         Axis      `json:"y"`
	Aggregate string    `json:"aggregate,omitempty"`
	TopN      int       `json:"top_n,omitempty"`
}

// ChartSummary is the part of a chart spec reported in dashboard metadata.
type ChartSummary struct {
	Title string    `json:"title"`
	Type  ChartType `json:"type"`
	X     Axis      `json:"x"`
	Y     Axis      `json:"y"`
}

func (c ChartSpec) Summary() ChartSummary {
	return ChartSummary{Title: c.Title, Type: c.Type, X: c.X, Y: c.Y}
}

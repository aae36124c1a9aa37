package models

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Metric asks for a KPI named Name, computed as Agg over Field unless Name is
// already a numeric column of the result.
type Metric struct {
	Name  string `json:"name" yaml:"name"`
	Agg   string `json:"agg,omitempty" yaml:"agg,omitempty"`
	Field string `json:"field,omitempty" yaml:"field,omitempty"`
}

// Visual is a caller-declared chart. Type and Title may be empty.
type Visual struct {
	Type      string `json:"type,omitempty"`
	Title     string `json:"title,omitempty"`
	X         Axis   `json:"x"`
	Y         Axis   `json:"y"`
	Aggregate string `json:"aggregate,omitempty"`
	TopN      int    `json:"top_n,omitempty"`
}

// Plan is the caller's declared intent. A nil plan means auto-detection.
type Plan struct {
	Metrics []Metric `json:"metrics,omitempty"`
	Visuals []Visual `json:"visuals,omitempty"`
}

// MetricList and VisualList are nil-safe accessors.
func (p *Plan) MetricList() []Metric {
	if p == nil {
		return nil
	}
	return p.Metrics
}

func (p *Plan) VisualList() []Visual {
	if p == nil {
		return nil
	}
	return p.Visuals
}

// ParsePlan decodes a JSON or YAML plan document. Entries that are not
// objects are skipped; a metric without a name is skipped.
func ParsePlan(data []byte) (*Plan, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, nil
	}
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode plan: %w", err)
	}
	if raw == nil {
		return nil, nil
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("plan must be an object, got %T", raw)
	}
	return PlanFromMap(m), nil
}

// PlanFromMap converts a loosely typed plan mapping into a Plan.
func PlanFromMap(m map[string]any) *Plan {
	plan := &Plan{}

	if metrics, ok := m["metrics"].([]any); ok {
		for _, item := range metrics {
			entry, ok := item.(map[string]any)
			if !ok {
				continue
			}
			name, _ := entry["name"].(string)
			if strings.TrimSpace(name) == "" {
				continue
			}
			agg, _ := entry["agg"].(string)
			field, _ := entry["field"].(string)
			plan.Metrics = append(plan.Metrics, Metric{Name: name, Agg: agg, Field: field})
		}
	}

	if visuals, ok := m["visuals"].([]any); ok {
		for _, item := range visuals {
			entry, ok := item.(map[string]any)
			if !ok {
				continue
			}
			v := Visual{
				X: axisFromValue(entry["x"]),
				Y: axisFromValue(entry["y"]),
			}
			v.Type, _ = entry["type"].(string)
			v.Title = stringify(entry["title"])
			v.Aggregate, _ = entry["aggregate"].(string)
			v.TopN = intValue(entry["top_n"])
			if _, isList := entry["x"].([]any); isList {
				// x must name a single column
				v.X = NoAxis()
			}
			plan.Visuals = append(plan.Visuals, v)
		}
	}

	return plan
}

func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

func intValue(v any) int {
	switch x := v.(type) {
	case int:
		return x
	case int64:
		return int(x)
	case float64:
		return int(x)
	default:
		return 0
	}
}

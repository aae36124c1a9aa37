package services

import (
	"context"

	"github.com/21f1001434/Agentic-AI/internal/models"
)

// Pipeline chains execution, insight extraction and dashboard synthesis.
type Pipeline struct {
	executor  *Executor
	insights  *InsightAgent
	dashboard *DashboardAgent
}

func NewPipeline(executor *Executor, insights *InsightAgent, dashboard *DashboardAgent) *Pipeline {
	return &Pipeline{executor: executor, insights: insights, dashboard: dashboard}
}

// Run executes req and derives its insights and dashboard.
func (p *Pipeline) Run(ctx context.Context, req models.QueryRequest) (*models.PipelineResult, error) {
	result, err := p.Insights(ctx, req)
	if err != nil {
		return nil, err
	}
	result.Dashboard = p.dashboard.Build(result.Dataset, req.Plan, result.Insights)
	return result, nil
}

// Insights executes req and derives its insight report only.
func (p *Pipeline) Insights(ctx context.Context, req models.QueryRequest) (*models.PipelineResult, error) {
	ds, meta, err := p.executor.Run(ctx, req.SQL, req.Params)
	if err != nil {
		return nil, err
	}
	return &models.PipelineResult{
		Dataset:   ds,
		Execution: meta,
		Insights:  p.insights.Generate(ds, req.Plan),
	}, nil
}

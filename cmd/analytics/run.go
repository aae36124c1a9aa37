package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/21f1001434/Agentic-AI/internal/config"
	"github.com/21f1001434/Agentic-AI/internal/export"
	"github.com/21f1001434/Agentic-AI/internal/models"
)

type runOptions struct {
	sql        string
	sqlFile    string
	params     []string
	paramsFile string
	planFile   string
	out        string
	exportDir  string
}

func newRunCmd(cfg *config.Configuration) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a query and build its insights and dashboard",
		Example: `  analytics run --sql "SELECT day, region, amount FROM sales WHERE region = :region" \
    --param region=emea --plan plan.yaml --out dashboard.html`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := opts.request()
			if err != nil {
				return err
			}

			a, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.pipeline().Run(cmd.Context(), req)
			if err != nil {
				return err
			}

			if err := os.WriteFile(opts.out, []byte(result.Dashboard.HTML), 0o644); err != nil {
				return fmt.Errorf("failed to write dashboard: %w", err)
			}
			if opts.exportDir != "" {
				if _, err := export.New().Write(opts.exportDir, result); err != nil {
					return err
				}
			}

			return printRunSummary(cmd.OutOrStdout(), result, opts.out)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.sql, "sql", "", "SQL query to run")
	f.StringVar(&opts.sqlFile, "sql-file", "", "file containing the SQL query")
	f.StringArrayVar(&opts.params, "param", nil, "query parameter as name=value (repeatable)")
	f.StringVar(&opts.paramsFile, "params-file", "", "yaml or json file with query parameters")
	f.StringVar(&opts.planFile, "plan", "", "yaml or json file with metrics and visuals")
	f.StringVar(&opts.out, "out", "dashboard.html", "where to write the dashboard")
	f.StringVar(&opts.exportDir, "export-dir", "", "also export html, csv, xlsx and json into this directory")
	cmd.MarkFlagsMutuallyExclusive("sql", "sql-file")
	cmd.MarkFlagsOneRequired("sql", "sql-file")

	return cmd
}

func (o *runOptions) request() (models.QueryRequest, error) {
	req := models.QueryRequest{SQL: o.sql}

	if o.sqlFile != "" {
		data, err := os.ReadFile(o.sqlFile)
		if err != nil {
			return req, fmt.Errorf("failed to read sql file: %w", err)
		}
		req.SQL = string(data)
	}

	params, err := parseParams(o.paramsFile, o.params)
	if err != nil {
		return req, err
	}
	req.Params = params

	if o.planFile != "" {
		data, err := os.ReadFile(o.planFile)
		if err != nil {
			return req, fmt.Errorf("failed to read plan: %w", err)
		}
		if req.Plan, err = models.ParsePlan(data); err != nil {
			return req, err
		}
	}

	return req, nil
}

// parseParams merges the parameters file with name=value pairs, the pairs
// winning. Values are decoded as yaml scalars so 5 is a number and emea a
// string.
func parseParams(file string, pairs []string) (map[string]any, error) {
	params := map[string]any{}

	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read params file: %w", err)
		}
		if err := yaml.Unmarshal(data, &params); err != nil {
			return nil, fmt.Errorf("failed to decode params file: %w", err)
		}
	}

	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid parameter %q, expected name=value", pair)
		}
		var value any
		if err := yaml.Unmarshal([]byte(raw), &value); err != nil || value == nil {
			value = raw
		}
		params[strings.TrimSpace(name)] = value
	}

	if len(params) == 0 {
		return nil, nil
	}
	for k, v := range params {
		params[k] = models.NormalizeValue(v)
	}
	return params, nil
}

func printRunSummary(w io.Writer, result *models.PipelineResult, out string) error {
	title := color.New(color.FgCyan, color.Bold).SprintFunc()
	value := color.New(color.FgGreen, color.Bold).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()
	warn := color.New(color.FgYellow).SprintFunc()

	fmt.Fprintln(w, title("Execution"))
	if err := printJSON(w, result.Execution); err != nil {
		return err
	}

	fmt.Fprintln(w, title("Dashboard"))
	if err := printJSON(w, result.Dashboard.Meta); err != nil {
		return err
	}

	fmt.Fprintln(w, title("KPIs"))
	for _, k := range result.Insights.KPIs {
		fmt.Fprintf(w, "  %-24s %s  %s\n", k.Title, value(k.Value), faint(k.Context))
	}
	for _, msg := range result.Insights.Warnings {
		fmt.Fprintf(w, "  %s %s\n", warn("warning:"), msg)
	}

	fmt.Fprintf(w, "\n%s\n%s %s\n", result.Insights.Summary, faint("dashboard written to"), out)
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("  ", "  ")
	_, _ = io.WriteString(w, "  ")
	return enc.Encode(v)
}

package scenario

import (
	"context"
)

// Scenario is one named conformance check. Run functions are stateless; each
// builds its own request sequence and drives a fresh subprocess.
type Scenario struct {
	Name string
	Run  func(ctx context.Context, r *Runner) Verdict
}

// ToolCall names a tool invocation to exercise in the suite.
type ToolCall struct {
	Name      string
	Arguments map[string]interface{}
}

// DefaultToolCalls is the HGNC server's canonical tool exercise list.
func DefaultToolCalls() []ToolCall {
	return []ToolCall{
		{Name: "GET__tools_info", Arguments: map[string]interface{}{}},
		{Name: "POST__tools_find", Arguments: map[string]interface{}{"query": "BRCA"}},
		{Name: "POST__tools_resolve_symbol", Arguments: map[string]interface{}{"symbol": "TP53"}},
		{Name: "POST__tools_normalize_list", Arguments: map[string]interface{}{"symbols": []string{"BRCA1", "TP53", "EGFR"}}},
		{Name: "POST__tools_validate_panel", Arguments: map[string]interface{}{"items": []string{"BRCA1", "TP53", "INVALID"}}},
	}
}

// Suite builds the fixed, ordered scenario list: handshake, enumerations, the
// given tool calls, then the invalid-method probe.
func Suite(toolCalls []ToolCall) []Scenario {
	scenarios := []Scenario{
		{Name: "MCP Initialize", Run: func(ctx context.Context, r *Runner) Verdict { return r.Initialize(ctx) }},
		{Name: "List Tools", Run: func(ctx context.Context, r *Runner) Verdict { return r.ListTools(ctx) }},
		{Name: "List Resources", Run: func(ctx context.Context, r *Runner) Verdict { return r.ListResources(ctx) }},
	}
	for _, call := range toolCalls {
		call := call
		scenarios = append(scenarios, Scenario{
			Name: "Call Tool: " + call.Name,
			Run: func(ctx context.Context, r *Runner) Verdict {
				return r.CallTool(ctx, call.Name, call.Arguments)
			},
		})
	}
	scenarios = append(scenarios, Scenario{
		Name: "Invalid Method Error Handling",
		Run:  func(ctx context.Context, r *Runner) Verdict { return r.InvalidMethod(ctx) },
	})
	return scenarios
}

// Summary aggregates the verdicts of one full run.
type Summary struct {
	Verdicts []Verdict
	Passed   int
	Total    int
}

// AllPassed reports whether every scenario passed.
func (s Summary) AllPassed() bool {
	return s.Passed == s.Total
}

// Failed returns the failing verdicts in run order.
func (s Summary) Failed() []Verdict {
	var failed []Verdict
	for _, v := range s.Verdicts {
		if !v.Passed {
			failed = append(failed, v)
		}
	}
	return failed
}

// RunAll executes every scenario in order, regardless of individual failures,
// and aggregates the verdicts. Scenario outcomes are logged, recorded as
// metrics, and traced as individual spans.
func (r *Runner) RunAll(ctx context.Context, scenarios []Scenario) Summary {
	summary := Summary{Total: len(scenarios)}

	for _, sc := range scenarios {
		spanCtx, span := r.tracer.StartScenario(ctx, sc.Name)

		verdict := sc.Run(spanCtx, r)

		r.metrics.RecordScenario(verdict.Name, verdict.Passed, verdict.Duration)
		if verdict.Passed {
			summary.Passed++
			r.logger.Info().
				Str("scenario", verdict.Name).
				Dur("duration", verdict.Duration).
				Msg(verdict.Message)
		} else {
			r.tracer.RecordFailure(span, verdict.Message)
			r.logger.Error().
				Str("scenario", verdict.Name).
				Dur("duration", verdict.Duration).
				Msg(verdict.Message)
		}
		span.End()

		summary.Verdicts = append(summary.Verdicts, verdict)
	}

	return summary
}

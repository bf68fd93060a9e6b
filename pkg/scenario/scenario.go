package scenario

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/armish/hgnc-mcp-harness/pkg/observability"
	"github.com/armish/hgnc-mcp-harness/pkg/protocol"
	"github.com/armish/hgnc-mcp-harness/pkg/transport"
)

// Request ids within one session. The invalid-method probe uses a deliberately
// out-of-band id so a confused server echoing the wrong id is visible.
const (
	handshakeID     = 1
	followUpID      = 2
	invalidMethodID = 99
)

// Verdict is the immutable outcome of one scenario: a name, pass/fail, a
// human-readable diagnostic, wall-clock duration, and the raw response that
// decided it (if any).
type Verdict struct {
	Name     string
	Passed   bool
	Message  string
	Duration time.Duration
	Response *protocol.Response
}

// Runner executes conformance scenarios against one server invocation. Every
// scenario starts a fresh subprocess; no state leaks between scenarios through
// a warm server.
type Runner struct {
	cfg     transport.Config
	logger  zerolog.Logger
	metrics *observability.Metrics
	tracer  *observability.Tracer
	client  protocol.ClientInfo
	runID   string
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the runner's logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Runner) { r.logger = logger }
}

// WithMetrics attaches a metrics collector.
func WithMetrics(m *observability.Metrics) Option {
	return func(r *Runner) { r.metrics = m }
}

// WithTracer attaches a tracer; each scenario runs inside its own span.
func WithTracer(t *observability.Tracer) Option {
	return func(r *Runner) { r.tracer = t }
}

// WithClientInfo overrides the clientInfo sent in the handshake.
func WithClientInfo(client protocol.ClientInfo) Option {
	return func(r *Runner) { r.client = client }
}

// WithRunID overrides the generated run id, so logs, metrics and traces of
// one invocation share an identifier minted by the caller.
func WithRunID(id string) Option {
	return func(r *Runner) {
		if id != "" {
			r.runID = id
		}
	}
}

// NewRunner creates a runner for the given server invocation.
func NewRunner(cfg transport.Config, opts ...Option) *Runner {
	r := &Runner{
		cfg:    cfg,
		logger: zerolog.Nop(),
		client: protocol.ClientInfo{Name: "hgnc-mcp-harness", Version: "1.0"},
		runID:  uuid.NewString(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With().Str("run_id", r.runID).Logger()
	r.cfg.Logger = r.logger
	return r
}

// RunID identifies this runner's invocation in logs and traces.
func (r *Runner) RunID() string {
	return r.runID
}

// session returns a fresh session; one subprocess per scenario.
func (r *Runner) session() *transport.Session {
	return transport.NewSession(r.cfg)
}

// Initialize verifies the MCP handshake: a single initialize request must
// produce a result carrying a protocolVersion field.
func (r *Runner) Initialize(ctx context.Context) Verdict {
	const name = "MCP Initialize"
	start := time.Now()

	req, err := protocol.NewInitializeRequest(handshakeID, r.client)
	if err != nil {
		return Verdict{Name: name, Message: err.Error(), Duration: time.Since(start)}
	}

	res := r.session().Run(ctx, []*protocol.Request{req})
	duration := time.Since(start)
	r.observe(res)

	resp := pick(res, handshakeID, 0)
	if resp != nil {
		// Presence of the field is the contract; its type is the schema
		// linter's business, not the handshake's.
		if version, ok := resp.ResultFields()["protocolVersion"]; ok {
			return Verdict{
				Name:     name,
				Passed:   true,
				Message:  fmt.Sprintf("protocol version: %v", version),
				Duration: duration,
				Response: resp,
			}
		}
	}

	return Verdict{
		Name:     name,
		Message:  diagnose(res, "no valid initialize response"),
		Duration: duration,
		Response: resp,
	}
}

// ListTools verifies tool enumeration after a handshake. An empty tools list
// is a pass; a result without one is not.
func (r *Runner) ListTools(ctx context.Context) Verdict {
	return r.listScenario(ctx, "List Tools", protocol.MethodListTools, "tools")
}

// ListResources verifies resource enumeration after a handshake.
func (r *Runner) ListResources(ctx context.Context) Verdict {
	return r.listScenario(ctx, "List Resources", protocol.MethodListResources, "resources")
}

func (r *Runner) listScenario(ctx context.Context, name, method, listKey string) Verdict {
	start := time.Now()

	reqs, err := r.handshakeThen(method, nil)
	if err != nil {
		return Verdict{Name: name, Message: err.Error(), Duration: time.Since(start)}
	}

	res := r.session().Run(ctx, reqs)
	duration := time.Since(start)
	r.observe(res)

	resp := pick(res, followUpID, 1)
	if resp == nil {
		return Verdict{
			Name:     name,
			Message:  diagnose(res, fmt.Sprintf("no %s response after handshake", method)),
			Duration: duration,
		}
	}

	entries, ok := resp.ResultFields()[listKey].([]interface{})
	if !ok {
		return Verdict{
			Name:     name,
			Message:  fmt.Sprintf("%s result has no %s list", method, listKey),
			Duration: duration,
			Response: resp,
		}
	}

	return Verdict{
		Name:     name,
		Passed:   true,
		Message:  fmt.Sprintf("found %d %s", len(entries), listKey),
		Duration: duration,
		Response: resp,
	}
}

// CallTool invokes one tool after a handshake. A result is a pass; an error
// object is a valid protocol exchange but a failed outcome, reported with the
// server's own message; a missing response names the missing step.
func (r *Runner) CallTool(ctx context.Context, tool string, arguments map[string]interface{}) Verdict {
	name := fmt.Sprintf("Call Tool: %s", tool)
	start := time.Now()

	reqs, err := r.handshakeThen(protocol.MethodCallTool, protocol.CallToolParams{
		Name:      tool,
		Arguments: arguments,
	})
	if err != nil {
		return Verdict{Name: name, Message: err.Error(), Duration: time.Since(start)}
	}

	res := r.session().Run(ctx, reqs)
	duration := time.Since(start)
	r.observe(res)

	resp := pick(res, followUpID, 1)
	switch {
	case resp == nil:
		return Verdict{
			Name:     name,
			Message:  diagnose(res, "no response from tool call"),
			Duration: duration,
		}
	case resp.Error != nil:
		return Verdict{
			Name:     name,
			Message:  fmt.Sprintf("tool error: %s", resp.Error.Message),
			Duration: duration,
			Response: resp,
		}
	default:
		return Verdict{
			Name:     name,
			Passed:   true,
			Message:  "tool executed successfully",
			Duration: duration,
			Response: resp,
		}
	}
}

// InvalidMethod verifies error handling: an unrecognized method must produce
// an error object, not silence.
func (r *Runner) InvalidMethod(ctx context.Context) Verdict {
	const name = "Invalid Method Error Handling"
	start := time.Now()

	req, err := protocol.NewRequest(invalidMethodID, "invalid/method", map[string]interface{}{})
	if err != nil {
		return Verdict{Name: name, Message: err.Error(), Duration: time.Since(start)}
	}

	res := r.session().Run(ctx, []*protocol.Request{req})
	duration := time.Since(start)
	r.observe(res)

	resp := pick(res, invalidMethodID, 0)
	if resp != nil && resp.Error != nil {
		return Verdict{
			Name:     name,
			Passed:   true,
			Message:  fmt.Sprintf("correctly returned error: %s", resp.Error.Message),
			Duration: duration,
			Response: resp,
		}
	}

	return Verdict{
		Name:     name,
		Message:  "did not return error for invalid method",
		Duration: duration,
		Response: resp,
	}
}

// handshakeThen builds the two-message sequence every follow-up scenario uses.
func (r *Runner) handshakeThen(method string, params interface{}) ([]*protocol.Request, error) {
	init, err := protocol.NewInitializeRequest(handshakeID, r.client)
	if err != nil {
		return nil, err
	}
	followUp, err := protocol.NewRequest(followUpID, method, params)
	if err != nil {
		return nil, err
	}
	return []*protocol.Request{init, followUp}, nil
}

func (r *Runner) observe(res *transport.Result) {
	if res.TimedOut {
		r.metrics.RecordTimeout()
	}
}

// pick resolves a response by correlation id first and falls back to stdout
// position for servers that echo unusable ids.
func pick(res *transport.Result, id int64, pos int) *protocol.Response {
	if resp := res.ByID(id); resp != nil {
		return resp
	}
	return res.Response(pos)
}

// diagnose turns a response-less exchange into a verdict message that names
// what actually went wrong at the transport.
func diagnose(res *transport.Result, fallback string) string {
	switch {
	case res.StartErr != nil:
		return fmt.Sprintf("server process failed to start: %v", res.StartErr)
	case res.TimedOut:
		return "session timed out before a response arrived"
	default:
		return fallback
	}
}

package transport

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/armish/hgnc-mcp-harness/pkg/protocol"
)

// maxLineSize bounds a single stdout line; tool list responses can be large.
const maxLineSize = 4 * 1024 * 1024

// pipeCloseDelay bounds how long the drain goroutines may outlive the killed
// subprocess. Descendants the kill misses (a shell's child, a shim in front
// of docker) inherit the pipe write ends, so without a deadline the copies
// would never see EOF.
const pipeCloseDelay = time.Second

// ErrEmptyCommand reports a session configured with no server argv at all.
var ErrEmptyCommand = errors.New("empty command")

// Session drives one subprocess lifetime: it writes a batch of
// newline-delimited JSON-RPC requests to the process's stdin, closes it, and
// recovers whatever JSON-RPC responses appear on stdout before the process
// exits or the timeout fires. A Session holds no state between Run calls;
// every Run is a fresh subprocess.
type Session struct {
	cfg Config
}

// NewSession creates a session for the given invocation.
func NewSession(cfg Config) *Session {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Session{cfg: cfg}
}

// Result holds everything recovered from one exchange. Transport faults are
// recorded here as data rather than escalated: a timeout or a failed spawn
// yields zero responses, which callers report as a failed test outcome.
type Result struct {
	// Responses holds every valid JSON-RPC response line, in the order it
	// appeared on stdout.
	Responses []*protocol.Response

	// Stderr is the process's error stream, captured verbatim for
	// diagnostics. It is never parsed as protocol data.
	Stderr string

	// TimedOut is set when the exchange hit the configured timeout and the
	// subprocess was killed.
	TimedOut bool

	// StartErr is set when the subprocess could not be started at all.
	StartErr error
}

// Response returns the i-th response in stdout order, or nil if fewer were
// recovered. This is the positional-correlation fallback.
func (r *Result) Response(i int) *protocol.Response {
	if i < 0 || i >= len(r.Responses) {
		return nil
	}
	return r.Responses[i]
}

// ByID returns the first response whose correlation id matches, or nil. A
// compliant server echoes request ids verbatim, so id-based matching is
// preferred over position wherever the id is usable.
func (r *Result) ByID(id int64) *protocol.Response {
	for _, resp := range r.Responses {
		if idMatches(resp.ID, id) {
			return resp
		}
	}
	return nil
}

// idMatches compares a decoded response id against a request id. JSON numbers
// decode as float64; some servers echo ids as strings.
func idMatches(respID interface{}, id int64) bool {
	switch v := respID.(type) {
	case float64:
		return v == float64(id)
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		return err == nil && n == id
	case json.Number:
		n, err := v.Int64()
		return err == nil && n == id
	default:
		return false
	}
}

// Run performs one full exchange: write every request, close stdin, drain
// stdout and stderr to completion, reap the process. It never returns an
// error; faults surface on the Result. The subprocess does not outlive the
// call - on timeout it is killed and waited for before Run returns.
func (s *Session) Run(ctx context.Context, requests []*protocol.Request) *Result {
	res := &Result{}
	logger := s.cfg.Logger

	batch, err := encodeBatch(requests)
	if err != nil {
		res.StartErr = err
		return res
	}

	if len(s.cfg.Command) == 0 {
		res.StartErr = ErrEmptyCommand
		return res
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, s.cfg.Command[0], s.cfg.Command[1:]...)
	cmd.WaitDelay = pipeCloseDelay

	stdin, err := cmd.StdinPipe()
	if err != nil {
		res.StartErr = err
		return res
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		res.StartErr = err
		return res
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		res.StartErr = err
		return res
	}

	if err := cmd.Start(); err != nil {
		logger.Debug().Err(err).Strs("command", s.cfg.Command).Msg("failed to start server process")
		res.StartErr = err
		return res
	}

	var outBuf, errBuf bytes.Buffer

	g := new(errgroup.Group)
	g.Go(func() error {
		// The batch is always fully written and stdin closed, even when the
		// process dies early; a broken pipe just means the server stopped
		// reading, which the missing responses already report.
		_, _ = stdin.Write(batch)
		_ = stdin.Close()
		return nil
	})
	g.Go(func() error {
		_, _ = io.Copy(&outBuf, stdout)
		return nil
	})
	g.Go(func() error {
		_, _ = io.Copy(&errBuf, stderr)
		return nil
	})

	_ = g.Wait()
	waitErr := cmd.Wait()

	res.Stderr = errBuf.String()

	if ctx.Err() == context.DeadlineExceeded {
		logger.Warn().
			Dur("timeout", s.cfg.Timeout).
			Strs("command", s.cfg.Command).
			Msg("session timed out, subprocess killed")
		res.TimedOut = true
		return res
	}
	if waitErr != nil {
		// Non-zero exit is not itself a failure; the server may exit unhappily
		// after answering. Whatever made it to stdout still counts.
		logger.Debug().Err(waitErr).Msg("server process exited with error")
	}

	res.Responses = extractResponses(&outBuf, logger)
	logger.Debug().
		Int("requests", len(requests)).
		Int("responses", len(res.Responses)).
		Msg("session complete")
	return res
}

// encodeBatch serializes each request to one line of JSON and joins them with
// a trailing newline, the framing the stdio transport contract requires.
func encodeBatch(requests []*protocol.Request) ([]byte, error) {
	var buf bytes.Buffer
	for _, req := range requests {
		line, err := json.Marshal(req)
		if err != nil {
			return nil, err
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// extractResponses scans output line by line and keeps exactly the lines that
// decode as well-formed JSON-RPC responses. The server may interleave log
// lines and partial writes on the same stream, so anything that does not look
// like a response, fails to decode, or carries both a result and an error is
// silently dropped.
func extractResponses(r io.Reader, logger zerolog.Logger) []*protocol.Response {
	var responses []*protocol.Response

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "{") || !strings.Contains(line, `"jsonrpc"`) {
			continue
		}
		var resp protocol.Response
		if err := json.Unmarshal([]byte(line), &resp); err != nil {
			logger.Debug().Err(err).Str("line", truncate(line, 200)).Msg("skipping undecodable line")
			continue
		}
		if !resp.Valid() {
			logger.Debug().Str("line", truncate(line, 200)).Msg("skipping malformed response")
			continue
		}
		responses = append(responses, &resp)
	}
	if err := scanner.Err(); err != nil {
		logger.Debug().Err(err).Msg("stdout scan aborted")
	}
	return responses
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

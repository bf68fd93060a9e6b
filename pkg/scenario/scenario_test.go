package scenario

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/armish/hgnc-mcp-harness/pkg/transport"
)

// fakeServer returns a runner whose server is an inline shell script that
// consumes its whole stdin, then prints the given stdout lines.
func fakeServer(t *testing.T, stdout string) *Runner {
	t.Helper()
	return NewRunner(transportConfig("cat > /dev/null\n"+stdout, 5*time.Second))
}

func transportConfig(script string, timeout time.Duration) transport.Config {
	return transport.Config{
		Command: []string{"sh", "-c", script},
		Timeout: timeout,
		Logger:  zerolog.Nop(),
	}
}

func TestInitializePass(t *testing.T) {
	r := fakeServer(t, `echo '{"jsonrpc":"2.0","id":1,"result":{"protocolVersion":"2024-11-05","serverInfo":{"name":"hgnc-mcp","version":"0.3.1"}}}'`)

	v := r.Initialize(context.Background())

	assert.True(t, v.Passed)
	assert.Contains(t, v.Message, "2024-11-05")
	assert.NotNil(t, v.Response)
	assert.Greater(t, v.Duration, time.Duration(0))
}

func TestInitializeNoResponse(t *testing.T) {
	r := fakeServer(t, `echo "server starting, no protocol output"`)

	v := r.Initialize(context.Background())

	assert.False(t, v.Passed)
	assert.Contains(t, v.Message, "no valid initialize response")
}

func TestInitializeNonStringVersionStillPasses(t *testing.T) {
	// An oddly typed protocolVersion is a schema problem, not a handshake
	// failure; presence of the field is what the scenario checks.
	r := fakeServer(t, `echo '{"jsonrpc":"2.0","id":1,"result":{"protocolVersion":2024}}'`)

	v := r.Initialize(context.Background())

	assert.True(t, v.Passed)
	assert.Contains(t, v.Message, "2024")
}

func TestInitializeResultWithoutVersion(t *testing.T) {
	r := fakeServer(t, `echo '{"jsonrpc":"2.0","id":1,"result":{"serverInfo":{"name":"x","version":"1"}}}'`)

	v := r.Initialize(context.Background())
	assert.False(t, v.Passed)
}

func TestInitializeTimeout(t *testing.T) {
	r := NewRunner(transportConfig("cat > /dev/null; sleep 300", 300*time.Millisecond))

	v := r.Initialize(context.Background())

	assert.False(t, v.Passed)
	assert.Contains(t, v.Message, "timed out")
}

func TestListToolsEmptyListPasses(t *testing.T) {
	r := fakeServer(t, `
echo '{"jsonrpc":"2.0","id":1,"result":{"protocolVersion":"2024-11-05"}}'
echo '{"jsonrpc":"2.0","id":2,"result":{"tools":[]}}'`)

	v := r.ListTools(context.Background())

	assert.True(t, v.Passed)
	assert.Contains(t, v.Message, "found 0 tools")
}

func TestListToolsCountsEntries(t *testing.T) {
	r := fakeServer(t, `
echo '{"jsonrpc":"2.0","id":1,"result":{"protocolVersion":"2024-11-05"}}'
echo '{"jsonrpc":"2.0","id":2,"result":{"tools":[{"name":"a"},{"name":"b"}]}}'`)

	v := r.ListTools(context.Background())

	assert.True(t, v.Passed)
	assert.Contains(t, v.Message, "found 2 tools")
}

func TestListToolsMissingSecondResponse(t *testing.T) {
	r := fakeServer(t, `echo '{"jsonrpc":"2.0","id":1,"result":{"protocolVersion":"2024-11-05"}}'`)

	v := r.ListTools(context.Background())

	assert.False(t, v.Passed)
	assert.Contains(t, v.Message, "tools/list")
}

func TestListToolsResultWithoutList(t *testing.T) {
	r := fakeServer(t, `
echo '{"jsonrpc":"2.0","id":1,"result":{"protocolVersion":"2024-11-05"}}'
echo '{"jsonrpc":"2.0","id":2,"result":{"count":3}}'`)

	v := r.ListTools(context.Background())

	assert.False(t, v.Passed)
	assert.Contains(t, v.Message, "no tools list")
}

func TestListResources(t *testing.T) {
	r := fakeServer(t, `
echo '{"jsonrpc":"2.0","id":1,"result":{"protocolVersion":"2024-11-05"}}'
echo '{"jsonrpc":"2.0","id":2,"result":{"resources":[{"uri":"hgnc://genes","name":"genes","mimeType":"application/json"}]}}'`)

	v := r.ListResources(context.Background())

	assert.True(t, v.Passed)
	assert.Contains(t, v.Message, "found 1 resources")
}

func TestCallToolSuccess(t *testing.T) {
	r := fakeServer(t, `
echo '{"jsonrpc":"2.0","id":1,"result":{"protocolVersion":"2024-11-05"}}'
echo '{"jsonrpc":"2.0","id":2,"result":{"content":[{"type":"text","text":"TP53 ok"}]}}'`)

	v := r.CallTool(context.Background(), "POST__tools_resolve_symbol", map[string]interface{}{"symbol": "TP53"})

	assert.True(t, v.Passed)
	assert.Equal(t, "Call Tool: POST__tools_resolve_symbol", v.Name)
}

func TestCallToolErrorIsFailingVerdict(t *testing.T) {
	r := fakeServer(t, `
echo '{"jsonrpc":"2.0","id":1,"result":{"protocolVersion":"2024-11-05"}}'
echo '{"jsonrpc":"2.0","id":2,"error":{"code":-32602,"message":"bad args"}}'`)

	v := r.CallTool(context.Background(), "POST__tools_find", map[string]interface{}{})

	// An error response is a valid, informative exchange but a failed outcome.
	assert.False(t, v.Passed)
	assert.Contains(t, v.Message, "bad args")
	assert.NotNil(t, v.Response)
}

func TestCallToolNoResponse(t *testing.T) {
	r := fakeServer(t, `echo '{"jsonrpc":"2.0","id":1,"result":{"protocolVersion":"2024-11-05"}}'`)

	v := r.CallTool(context.Background(), "POST__tools_find", nil)

	assert.False(t, v.Passed)
	assert.Contains(t, v.Message, "no response from tool call")
}

func TestInvalidMethodPassOnError(t *testing.T) {
	r := fakeServer(t, `echo '{"jsonrpc":"2.0","id":99,"error":{"code":-32601,"message":"method not found"}}'`)

	v := r.InvalidMethod(context.Background())

	assert.True(t, v.Passed)
	assert.Contains(t, v.Message, "method not found")
}

func TestInvalidMethodFailOnResult(t *testing.T) {
	r := fakeServer(t, `echo '{"jsonrpc":"2.0","id":99,"result":{}}'`)

	v := r.InvalidMethod(context.Background())

	assert.False(t, v.Passed)
}

func TestOutOfOrderResponsesResolveByID(t *testing.T) {
	// Server answers the follow-up before the handshake; id correlation must
	// still find the right response.
	r := fakeServer(t, `
echo '{"jsonrpc":"2.0","id":2,"result":{"tools":[{"name":"only"}]}}'
echo '{"jsonrpc":"2.0","id":1,"result":{"protocolVersion":"2024-11-05"}}'`)

	v := r.ListTools(context.Background())

	assert.True(t, v.Passed)
	assert.Contains(t, v.Message, "found 1 tools")
}

func TestRunnerHasRunID(t *testing.T) {
	r := fakeServer(t, "")
	require.NotEmpty(t, r.RunID())
	assert.NotEqual(t, r.RunID(), fakeServer(t, "").RunID())
}

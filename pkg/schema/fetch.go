package schema

import (
	"context"

	"github.com/armish/hgnc-mcp-harness/pkg/protocol"
	"github.com/armish/hgnc-mcp-harness/pkg/transport"
)

// Request ids of the single capability-fetch session.
const (
	fetchInitID      = 1
	fetchToolsID     = 2
	fetchPromptsID   = 3
	fetchResourcesID = 4
)

// Fetch retrieves the three capability lists in one session: initialize plus
// the three list calls, correlated strictly by id. A transport failure yields
// empty lists; the caller's report shows zero entries rather than an error.
func Fetch(ctx context.Context, cfg transport.Config) Capabilities {
	requests, err := fetchRequests()
	if err != nil {
		return Capabilities{}
	}

	res := transport.NewSession(cfg).Run(ctx, requests)

	return Capabilities{
		Tools:     entryList(res.ByID(fetchToolsID), "tools"),
		Prompts:   entryList(res.ByID(fetchPromptsID), "prompts"),
		Resources: entryList(res.ByID(fetchResourcesID), "resources"),
	}
}

func fetchRequests() ([]*protocol.Request, error) {
	init, err := protocol.NewInitializeRequest(fetchInitID, protocol.ClientInfo{
		Name:    "hgnc-mcp-harness",
		Version: "1.0",
	})
	if err != nil {
		return nil, err
	}
	requests := []*protocol.Request{init}

	for _, call := range []struct {
		id     int64
		method string
	}{
		{fetchToolsID, protocol.MethodListTools},
		{fetchPromptsID, protocol.MethodListPrompts},
		{fetchResourcesID, protocol.MethodListResources},
	} {
		req, err := protocol.NewRequest(call.id, call.method, nil)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, nil
}

// entryList pulls the named list out of a response result as generic maps,
// dropping entries that are not JSON objects at all.
func entryList(resp *protocol.Response, key string) []map[string]interface{} {
	if resp == nil {
		return nil
	}
	items, ok := resp.ResultFields()[key].([]interface{})
	if !ok {
		return nil
	}
	var entries []map[string]interface{}
	for _, item := range items {
		if entry, ok := item.(map[string]interface{}); ok {
			entries = append(entries, entry)
		}
	}
	return entries
}

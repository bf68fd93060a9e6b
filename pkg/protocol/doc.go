// Package protocol defines the JSON-RPC 2.0 message types and the MCP method
// vocabulary the harness drives over a server's stdio: initialize, tools/list,
// tools/call, resources/list and prompts/list, plus typed views of the
// capability entries a server advertises.
package protocol

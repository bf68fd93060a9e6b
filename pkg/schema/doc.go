// Package schema lints the tool, prompt and resource schemas an MCP server
// advertises, flagging shapes known to break the downstream client. The rules
// are a declarative table run per entry; findings are blocking (client will
// disable the server) or advisory (survivable but wrong).
package schema

package localtools

import (
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// intArg extracts an integer argument; JSON numbers arrive as float64 and
// models sometimes send numbers as strings.
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	switch v := req.GetArguments()[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return defaultVal
}

// num prints a float the short way: 31.2, 31, 0.5.
func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

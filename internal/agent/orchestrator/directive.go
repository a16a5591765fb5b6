package orchestrator

import (
	"encoding/json"
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// Directive is a tool call request found in model output.
type Directive struct {
	// Name is the tool name as written, possibly "server.tool".
	Name    string
	RawArgs string
}

// ErrUnparsableArguments is returned when no argument grammar matches.
var ErrUnparsableArguments = errors.New("unparsable tool arguments")

var (
	reDirectiveOpen  = regexp.MustCompile(`(?is)<tool_call\s+name\s*=\s*["']([^"']+)["']\s*>`)
	reDirectiveClose = regexp.MustCompile(`(?i)</tool_call\s*>`)
	reFence          = regexp.MustCompile("(?s)^```[a-zA-Z]*\\s*(.*?)\\s*```$")
	reLoosePair      = regexp.MustCompile(`([A-Za-z_][A-Za-z0-9_\-]*)\s*[:=]\s*("(?:[^"\\]|\\.)*"|'[^']*'|[^,;\n]+)`)
)

// ParseDirective finds the first <tool_call name="...">args</tool_call> in text.
// A missing closing tag is tolerated: the arguments run to the end of text.
func ParseDirective(text string) (Directive, bool) {
	loc := reDirectiveOpen.FindStringSubmatchIndex(text)
	if loc == nil {
		return Directive{}, false
	}

	name := strings.TrimSpace(text[loc[2]:loc[3]])
	if name == "" {
		return Directive{}, false
	}

	rest := text[loc[1]:]
	if end := reDirectiveClose.FindStringIndex(rest); end != nil {
		rest = rest[:end[0]]
	}
	return Directive{Name: name, RawArgs: strings.TrimSpace(rest)}, true
}

// ParseArguments decodes a directive's argument blob. Strict JSON first, then
// fenced JSON, single-quoted JSON and finally loose key: value / key=value pairs.
// An empty blob is an empty argument set.
func ParseArguments(raw string) (map[string]any, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "{}" {
		return map[string]any{}, nil
	}

	if args, ok := strictJSON(raw); ok {
		return args, nil
	}
	if m := reFence.FindStringSubmatch(raw); m != nil {
		if args, ok := strictJSON(m[1]); ok {
			return args, nil
		}
		raw = strings.TrimSpace(m[1])
	}
	if start, end := strings.Index(raw, "{"), strings.LastIndex(raw, "}"); start >= 0 && end > start {
		obj := raw[start : end+1]
		if args, ok := strictJSON(obj); ok {
			return args, nil
		}
		if args, ok := strictJSON(strings.ReplaceAll(obj, "'", `"`)); ok {
			return args, nil
		}
		raw = strings.TrimSpace(obj[1 : len(obj)-1])
	}

	if args := loosePairs(raw); len(args) > 0 {
		return args, nil
	}
	return nil, ErrUnparsableArguments
}

func strictJSON(s string) (map[string]any, bool) {
	var args map[string]any
	if err := json.Unmarshal([]byte(s), &args); err != nil || args == nil {
		return nil, false
	}
	return args, true
}

// loosePairs accepts `location: Tokyo, days=3` style arguments.
func loosePairs(s string) map[string]any {
	matches := reLoosePair.FindAllStringSubmatch(s, -1)
	if len(matches) == 0 {
		return nil
	}
	args := make(map[string]any, len(matches))
	for _, m := range matches {
		args[m[1]] = looseValue(strings.TrimSpace(m[2]))
	}
	return args
}

func looseValue(v string) any {
	if len(v) >= 2 && (v[0] == '"' || v[0] == '\'') && v[len(v)-1] == v[0] {
		if v[0] == '"' {
			if s, err := strconv.Unquote(v); err == nil {
				return s
			}
		}
		return v[1 : len(v)-1]
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	return v
}

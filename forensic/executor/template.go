package executor

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/valyala/fasttemplate"
)

const (
	tagStart = "{{"
	tagEnd   = "}}"
)

// VarDeviceID is substituted with the addressed device's serial or UDID.
const VarDeviceID = "device_id"

// Vars holds placeholder values for a CommandTemplate.
type Vars map[string]string

// CommandTemplate is one row of a backend's invocation table. Every element
// of Args is rendered on its own and passed as a single argv token.
type CommandTemplate struct {
	Program string
	Args    []string
	Timeout time.Duration
}

func (c CommandTemplate) Render(vars Vars) (string, []string) {
	args := make([]string, len(c.Args))
	for i, arg := range c.Args {
		args[i] = renderToken(arg, vars)
	}
	return c.Program, args
}

func (c CommandTemplate) Run(ctx context.Context, inv Invoker, vars Vars) *Result {
	program, args := c.Render(vars)
	return inv.Invoke(ctx, program, args, c.Timeout)
}

func renderToken(token string, vars Vars) string {
	if !strings.Contains(token, tagStart) {
		return token
	}
	rendered, err := fasttemplate.ExecuteFuncStringWithErr(token, tagStart, tagEnd, func(w io.Writer, tag string) (int, error) {
		return w.Write([]byte(vars[strings.TrimSpace(tag)]))
	})
	if err != nil {
		return token
	}
	return rendered
}

package loggers

import (
	"fmt"
	"io"
	"os"
	"time"

	ed "github.com/rickchristie/eventdispatcher"
	"gopkg.in/yaml.v3"
)

// YAMLHook dumps every hook event as a YAML document, which makes nested and
// stopped dispatches easy to follow when debugging. Payloads are rendered
// with %v; nothing is truncated.
type YAMLHook struct {
	out io.Writer
}

// NewYAMLHook creates a YAMLHook that writes to stdout.
func NewYAMLHook() *YAMLHook {
	return &YAMLHook{out: os.Stdout}
}

// NewYAMLHookWithWriter creates a YAMLHook that writes to the given writer.
func NewYAMLHookWithWriter(w io.Writer) *YAMLHook {
	return &YAMLHook{out: w}
}

type yamlRecord struct {
	Hook      string `yaml:"hook"`
	Event     string `yaml:"event"`
	Depth     int    `yaml:"depth"`
	Listeners *int   `yaml:"listeners,omitempty"`
	Index     *int   `yaml:"index,omitempty"`
	Kind      string `yaml:"kind,omitempty"`
	Invoked   *int   `yaml:"invoked,omitempty"`
	Payload   string `yaml:"payload"`
	Stopped   string `yaml:"stopped,omitempty"`
	Duration  string `yaml:"duration,omitempty"`
	Error     string `yaml:"error,omitempty"`
}

// OnBeforeDispatch dumps the dispatch start.
func (h *YAMLHook) OnBeforeDispatch(e ed.BeforeDispatchEvent) {
	h.write(yamlRecord{
		Hook:      "BeforeDispatch",
		Event:     e.EventName,
		Depth:     e.Depth,
		Listeners: &e.Listeners,
		Payload:   fmt.Sprintf("%v", e.Payload),
	})
}

// OnAfterListener dumps a single listener invocation.
func (h *YAMLHook) OnAfterListener(e ed.AfterListenerEvent) {
	h.write(yamlRecord{
		Hook:     "AfterListener",
		Event:    e.EventName,
		Depth:    e.Depth,
		Index:    &e.Index,
		Kind:     string(e.Kind),
		Payload:  fmt.Sprintf("%v", e.Payload),
		Stopped:  string(e.Stopped),
		Duration: formatDuration(e.Duration),
		Error:    errorString(e.Error),
	})
}

// OnAfterDispatch dumps the dispatch outcome.
func (h *YAMLHook) OnAfterDispatch(e ed.AfterDispatchEvent) {
	h.write(yamlRecord{
		Hook:     "AfterDispatch",
		Event:    e.EventName,
		Depth:    e.Depth,
		Invoked:  &e.Invoked,
		Payload:  fmt.Sprintf("%v", e.Result),
		Stopped:  string(e.Stopped),
		Duration: formatDuration(e.Duration),
		Error:    errorString(e.Error),
	})
}

func (h *YAMLHook) write(rec yamlRecord) {
	data, err := yaml.Marshal(rec)
	if err != nil {
		fmt.Fprintf(h.out, "# failed to marshal %s: %v\n", rec.Hook, err)
		return
	}
	fmt.Fprintf(h.out, "---\n%s", data)
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return ""
	}
	return d.String()
}

func errorString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

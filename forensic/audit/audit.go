// Package audit keeps a syslog-style trail of every external tool run, so an
// examiner can show exactly which commands touched a device.
package audit

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/crewjam/rfc5424"
)

const sdID = "invocation@32473"

// Entry describes one finished tool invocation.
type Entry struct {
	Program  string
	Args     []string
	Status   string
	ExitCode int
	Start    time.Time
	Duration time.Duration
}

type Recorder interface {
	Record(entry Entry)
}

// SyslogRecorder writes each entry as one RFC 5424 line.
type SyslogRecorder struct {
	appName   string
	hostname  string
	processID string

	mu  sync.Mutex
	w   io.Writer
	seq int
}

func NewSyslogRecorder(appName string, w io.Writer) *SyslogRecorder {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}
	return &SyslogRecorder{
		appName:   appName,
		hostname:  hostname,
		processID: strconv.Itoa(os.Getpid()),
		w:         w,
	}
}

func (r *SyslogRecorder) Record(entry Entry) {
	severity := rfc5424.Info
	if entry.Status != "completed" || entry.ExitCode != 0 {
		severity = rfc5424.Warning
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++

	msg := &rfc5424.Message{
		Priority:  rfc5424.User | severity,
		Timestamp: entry.Start.UTC(),
		Hostname:  r.hostname,
		AppName:   r.appName,
		ProcessID: r.processID,
		MessageID: fmt.Sprintf("INV%d", r.seq),
		Message:   []byte(strings.TrimSpace(entry.Program + " " + strings.Join(entry.Args, " "))),
	}
	msg.AddDatum(sdID, "program", entry.Program)
	msg.AddDatum(sdID, "status", entry.Status)
	msg.AddDatum(sdID, "exit_code", strconv.Itoa(entry.ExitCode))
	msg.AddDatum(sdID, "duration_ms", strconv.FormatInt(entry.Duration.Milliseconds(), 10))

	line, err := msg.MarshalBinary()
	if err == nil {
		_, err = r.w.Write(line)
	}
	if err != nil {
		// Fall back to a hand-built line so the trail never has a hole.
		_, _ = fmt.Fprintf(r.w, "<%d>1 %s %s %s %s %s - %s",
			int(rfc5424.User|severity),
			entry.Start.UTC().Format(time.RFC3339),
			r.hostname, r.appName, r.processID, msg.MessageID, msg.Message)
	}
	_, _ = io.WriteString(r.w, "\n")
}

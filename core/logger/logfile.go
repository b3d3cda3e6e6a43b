package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/afero"
)

// LogFile is an append-only plain text log. Every line is prefixed with the
// wall clock time and the time elapsed since the file was opened.
type LogFile struct {
	fs     afero.Fs
	path   string
	parent *LogFile
	start  time.Time
	now    func() time.Time

	lock sync.Mutex
}

// OpenLogFile opens path for appending, creating it and its directory if
// needed. parent may be nil.
func OpenLogFile(fsys afero.Fs, path string, parent *LogFile) (*LogFile, error) {
	return openLogFile(fsys, path, parent, time.Now)
}

func openLogFile(fsys afero.Fs, path string, parent *LogFile, now func() time.Time) (*LogFile, error) {
	if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, eris.Wrapf(err, "couldn't create log directory for %s", path)
	}

	if isDir, _ := afero.IsDir(fsys, path); isDir {
		return nil, eris.Errorf("log path %s is a directory", path)
	}

	fd, err := fsys.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, eris.Wrapf(err, "couldn't open log %s", path)
	}
	if err := fd.Close(); err != nil {
		return nil, err
	}

	return &LogFile{
		fs:     fsys,
		path:   path,
		parent: parent,
		start:  now(),
		now:    now,
	}, nil
}

// Path is the location of the log.
func (l *LogFile) Path() string {
	return l.path
}

func (l *LogFile) prefix() string {
	now := l.now()
	return fmt.Sprintf("[%s (%.3fs from start)] ", now.Format("2006-01-02 15:04:05"), now.Sub(l.start).Seconds())
}

// WriteLog appends data, one prefixed line per input line. Blank lines are
// dropped.
func (l *LogFile) WriteLog(data string) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	prefix := l.prefix()
	var sb strings.Builder
	for _, line := range strings.Split(strings.TrimRight(data, "\n"), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	fd, err := l.fs.OpenFile(l.path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return eris.Wrapf(err, "couldn't open log %s", l.path)
	}
	defer fd.Close()

	_, err = fd.WriteString(sb.String())
	return err
}

// Write implements io.Writer so a LogFile can back a ConsoleWriter.
func (l *LogFile) Write(p []byte) (int, error) {
	if err := l.WriteLog(string(p)); err != nil {
		return 0, err
	}
	return len(p), nil
}

// ReadLog returns the log contents without trailing whitespace.
func (l *LogFile) ReadLog() (string, error) {
	l.lock.Lock()
	defer l.lock.Unlock()

	b, err := afero.ReadFile(l.fs, l.path)
	if err != nil {
		return "", eris.Wrapf(err, "couldn't read log %s", l.path)
	}
	return strings.TrimRight(string(b), " \t\r\n"), nil
}

// SaveToParent copies this log into the parent under a heading naming the
// script that produced it. Without a parent it does nothing.
func (l *LogFile) SaveToParent(script string) error {
	if l.parent == nil {
		return nil
	}

	if script == "" {
		script = "previous script"
	}

	contents, err := l.ReadLog()
	if err != nil {
		return err
	}
	return l.parent.WriteLog(fmt.Sprintf("Output of %s:\n%s", script, contents))
}

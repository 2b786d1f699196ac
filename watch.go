package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"

	"github.com/rjeczalik/notify"
)

// watchEntry is a ConfigurationEntry compiled and ready to run: the regex
// is built once and every watched file gets its own tail, keyed by
// absolute path since that is what notify reports in events.
type watchEntry struct {
	conf  ConfigurationEntry
	regex *regexp.Regexp
	tails map[string]*fileTail
}

func newWatchEntry(conf ConfigurationEntry) (*watchEntry, error) {
	r, err := regexp.Compile(conf.Regex)
	if err != nil {
		return nil, fmt.Errorf("invalid regex %q: %v", conf.Regex, err)
	}

	tails := make(map[string]*fileTail, len(conf.Files))
	for _, f := range conf.Files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, err
		}
		tails[abs] = &fileTail{path: abs}
	}

	return &watchEntry{conf: conf, regex: r, tails: tails}, nil
}

type watcher struct {
	entries []*watchEntry
	notify  *notifier
	once    bool
}

// setup registers an inotify watch for every file. A target that cannot
// be watched is fatal here, before any notification could be sent.
func (w *watcher) setup(events chan<- notify.EventInfo) error {
	for _, e := range w.entries {
		for _, t := range e.tails {
			if _, err := os.Stat(t.path); err != nil {
				return fmt.Errorf("cannot watch %s: %v", t.path, err)
			}
			if err := notify.Watch(t.path, events, notify.InModify|notify.InCloseWrite); err != nil {
				return fmt.Errorf("cannot watch %s: %v", t.path, err)
			}
		}
	}
	return nil
}

// run consumes change events one at a time until done is closed, or after
// the first handled event when running in once mode.
func (w *watcher) run(events <-chan notify.EventInfo, done <-chan struct{}) {
	for {
		select {
		case ei := <-events:
			handled := false
			for _, e := range w.entries {
				t, ok := e.tails[ei.Path()]
				if !ok {
					continue
				}
				w.handle(e, t)
				handled = true
			}
			if handled && w.once {
				return
			}
		case <-done:
			return
		}
	}
}

// handle reads the appended portion of the changed file and fires one
// notification per enabled channel if any of it matches. Delivery errors
// are logged and the watch goes on.
func (w *watcher) handle(e *watchEntry, t *fileTail) {
	fresh, err := t.readNew()
	if err != nil {
		log.Println("Error reading", t.path, ":", err)
		return
	}

	matches := matchLines(e.regex, fresh)
	if len(matches) == 0 {
		return
	}
	report := formatMatches(matches)

	if e.conf.Syslog {
		if err := w.notify.syslog(t.path, report); err != nil {
			log.Println("Error logging to syslog:", err)
		}
	}
	if len(e.conf.MailFrom) > 0 {
		if err := w.notify.mail(e.conf.MailFrom, e.conf.MailTo, e.conf.Regex, t.path, report); err != nil {
			log.Println("Error sending mail:", err)
		}
	}
}

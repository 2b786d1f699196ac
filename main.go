package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/davecgh/go-spew/spew"
	"github.com/rjeczalik/notify"
)

// multiFlag collects a repeatable string flag.
type multiFlag []string

func (m *multiFlag) String() string {
	return strings.Join(*m, ",")
}

func (m *multiFlag) Set(value string) error {
	*m = append(*m, value)
	return nil
}

type options struct {
	entries []ConfigurationEntry
	once    bool
}

func parseFlags(args []string, errOut io.Writer) (options, error) {
	fs := flag.NewFlagSet("filewatcher", flag.ContinueOnError)
	fs.SetOutput(errOut)

	configurationFile := fs.String("config", "", "JSON configuration file with watch entries")
	regex := fs.String("regex", "", "regular expression pattern to match in the changed portion")
	var files multiFlag
	fs.Var(&files, "file", "file to watch, repeat for multiple files")
	syslog := fs.Bool("syslog", false, "log matches to syslog, the default is not to")
	from := fs.String("from", "", "email address to send mail from")
	var to multiFlag
	fs.Var(&to, "to", "email address to send mail to, repeat for multiple addresses")
	once := fs.Bool("once", false, "exit after the first change event instead of watching forever")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	var entries []ConfigurationEntry
	if len(*configurationFile) > 0 {
		if len(*regex) > 0 || len(files) > 0 {
			return options{}, fmt.Errorf("-config cannot be combined with -regex or -file")
		}
		var err error
		entries, err = loadConfiguration(*configurationFile)
		if err != nil {
			return options{}, err
		}
	} else {
		entries = []ConfigurationEntry{{
			Files:    files,
			Regex:    *regex,
			Syslog:   *syslog,
			MailFrom: *from,
			MailTo:   to,
		}}
	}

	for i := range entries {
		if err := entries[i].Validate(); err != nil {
			return options{}, err
		}
	}

	return options{entries: entries, once: *once}, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		log.Fatal(err)
	}
	log.Println(spew.Sdump(opts.entries))

	entries := make([]*watchEntry, 0, len(opts.entries))
	for _, conf := range opts.entries {
		entry, err := newWatchEntry(conf)
		if err != nil {
			log.Fatal(err)
		}
		log.Println("Watching", strings.Join(conf.Files, ", "), "as entry", entry.conf.Hash()[:8])
		entries = append(entries, entry)
	}

	w := &watcher{entries: entries, notify: newNotifier(), once: opts.once}

	// Make the channel buffered to ensure no event is dropped. Notify will drop
	// an event if the receiver is not able to keep up the sending pace.
	events := make(chan notify.EventInfo, 16)
	if err := w.setup(events); err != nil {
		log.Fatal(err)
	}
	defer notify.Stop(events)

	done := make(chan struct{})
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		log.Println("Signal catched. Stopping watches..")
		close(done)
	}()

	w.run(events, done)
}

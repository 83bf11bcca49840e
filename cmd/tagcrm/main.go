// Command tagcrm reads and updates the contact and member collections from
// the command line. Results are written to stdout as JSON; logs go to stderr.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"tagcrm/internal/config"
	"tagcrm/internal/core"
	"tagcrm/internal/docstore"
	"tagcrm/internal/logging"
	"tagcrm/internal/repository"
	"tagcrm/pkg/domain"
)

var exitFunc = os.Exit

var errUsage = errors.New("usage")

const usage = `usage: tagcrm [flags] <command> <action> [action flags]

commands:
  contacts list|get|save|notes|alerts|templates|export
  members  list|get|save|notes|alerts|contacts|summary|export
  lookups  [table]

flags:
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cli(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	exitFunc(code)
}

func cli(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("tagcrm", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		_, _ = io.WriteString(stderr, usage)
		fs.PrintDefaults()
	}
	envFile := fs.String("env", ".env", "dotenv file loaded before reading the environment")
	driver := fs.String("driver", "", "document store driver; overrides TAGCRM_DATA_DRIVER")
	dataDir := fs.String("data-dir", "", "fs driver root; overrides TAGCRM_DATA_DIR")
	showMetrics := fs.Bool("metrics", false, "write Prometheus metrics to stderr before exiting")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}
	if *driver != "" {
		cfg.Docstore.Driver = docstore.Driver(*driver)
	}
	if *dataDir != "" {
		cfg.Docstore.Dir = *dataDir
	}

	logger := logging.Wrap(logging.NewWriterLogger(stderr, cfg.LogLevel, cfg.LogFormat, cfg.ServiceName)).
		With("run_id", uuid.NewString())
	defer func() { _ = logger.Sync() }()

	reg := prometheus.NewRegistry()
	rec, err := docstore.NewPrometheusRecorder(reg)
	if err != nil {
		logger.Error("register metrics", "error", err)
		return 1
	}
	svc, err := core.OpenService(ctx, cfg, core.WithLogger(logger), core.WithMetrics(rec))
	if err != nil {
		logger.Error("open service", "error", err)
		return 1
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.Warn("close store", "error", err)
		}
	}()

	a := &app{svc: svc, stdin: stdin, stdout: stdout, stderr: stderr}
	err = a.dispatch(ctx, fs.Args())
	if *showMetrics {
		if mErr := writeMetrics(reg, stderr); mErr != nil {
			logger.Warn("write metrics", "error", mErr)
		}
	}
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage):
		fmt.Fprintf(stderr, "%v\n", err)
		return 2
	default:
		logger.Error("command failed", "command", strings.Join(fs.Args(), " "), "error", err)
		return 1
	}
}

type app struct {
	svc    *core.Service
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func (a *app) dispatch(ctx context.Context, args []string) error {
	switch args[0] {
	case "contacts":
		return a.contacts(ctx, args[1:])
	case "members":
		return a.members(ctx, args[1:])
	case "lookups":
		return a.lookups(ctx, args[1:])
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
}

// actionFlags parses the flags following an action name.
type actionFlags struct {
	*flag.FlagSet
	id, page, size *int
	query, out     *string
	kind           *string
}

func (a *app) parseAction(name string, args []string) (actionFlags, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	f := actionFlags{
		FlagSet: fs,
		id:      fs.Int("id", 0, "record id"),
		page:    fs.Int("page", 1, "page number, from 1"),
		size:    fs.Int("size", 10, "page size"),
		query:   fs.String("q", "", "search term"),
		out:     fs.String("o", "", "output file for export"),
		kind:    fs.String("kind", "sms", "template kind: sms or email"),
	}
	if err := fs.Parse(args); err != nil {
		return f, fmt.Errorf("%w: %v", errUsage, err)
	}
	return f, nil
}

func (a *app) contacts(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: contacts needs an action", errUsage)
	}
	f, err := a.parseAction("contacts "+args[0], args[1:])
	if err != nil {
		return err
	}
	repo := a.svc.Contacts()
	switch args[0] {
	case "list":
		return a.writeJSON(repo.GetPaged(ctx, *f.page, *f.size, *f.query))
	case "get":
		c, ok := repo.GetByID(ctx, *f.id)
		if !ok {
			return repository.NotFoundError{Collection: domain.CollectionContacts, ID: *f.id}
		}
		return a.writeJSON(c)
	case "save":
		c := domain.NewContact()
		if err := json.NewDecoder(a.stdin).Decode(&c); err != nil {
			return fmt.Errorf("decode contact: %w", err)
		}
		saved, err := repo.Put(ctx, c)
		if err != nil {
			return err
		}
		return a.writeJSON(saved)
	case "notes":
		return a.writeJSON(repo.GetNotes(ctx, *f.id))
	case "alerts":
		return a.writeJSON(repo.GetAlerts(ctx, *f.id))
	case "templates":
		switch *f.kind {
		case "sms":
			return a.writeJSON(repo.GetSmsTemplates(ctx))
		case "email":
			return a.writeJSON(repo.GetEmailTemplates(ctx))
		default:
			return fmt.Errorf("%w: unknown template kind %q", errUsage, *f.kind)
		}
	case "export":
		b, err := a.svc.ExportContacts(ctx, *f.query)
		if err != nil {
			return err
		}
		return a.writeFile(*f.out, b)
	default:
		return fmt.Errorf("%w: unknown contacts action %q", errUsage, args[0])
	}
}

func (a *app) members(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: members needs an action", errUsage)
	}
	f, err := a.parseAction("members "+args[0], args[1:])
	if err != nil {
		return err
	}
	repo := a.svc.Members()
	switch args[0] {
	case "list":
		data, total := repo.GetPaged(ctx, *f.page, *f.size, *f.query)
		return a.writeJSON(domain.Page[domain.Member]{Data: data, TotalRecords: total, CurrentPage: *f.page, PageSize: *f.size})
	case "get":
		m, ok := repo.GetByID(ctx, *f.id)
		if !ok {
			return repository.NotFoundError{Collection: domain.CollectionMembers, ID: *f.id}
		}
		return a.writeJSON(m)
	case "save":
		var m domain.Member
		if err := json.NewDecoder(a.stdin).Decode(&m); err != nil {
			return fmt.Errorf("decode member: %w", err)
		}
		saved, err := repo.Put(ctx, m)
		if err != nil {
			return err
		}
		return a.writeJSON(saved)
	case "notes":
		return a.writeJSON(repo.GetNotes(ctx, *f.id))
	case "alerts":
		return a.writeJSON(repo.GetAlerts(ctx, *f.id))
	case "contacts":
		return a.writeJSON(repo.GetContacts(ctx, *f.id))
	case "summary":
		sum, err := a.svc.MemberSummary(ctx, *f.id)
		if err != nil {
			return err
		}
		return a.writeJSON(sum)
	case "export":
		b, err := a.svc.ExportMembers(ctx, *f.query)
		if err != nil {
			return err
		}
		return a.writeFile(*f.out, b)
	default:
		return fmt.Errorf("%w: unknown members action %q", errUsage, args[0])
	}
}

func (a *app) lookups(ctx context.Context, args []string) error {
	repo := a.svc.Lookups()
	if len(args) == 0 {
		return a.writeJSON(repo.Tables())
	}
	rows, err := repo.Table(ctx, args[0])
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	return a.writeJSON(rows)
}

func (a *app) writeJSON(v any) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) writeFile(path string, b []byte) error {
	if path == "" {
		return fmt.Errorf("%w: export needs -o <file>", errUsage)
	}
	if err := os.WriteFile(path, b, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return a.writeJSON(map[string]any{"file": path, "bytes": len(b)})
}

func writeMetrics(g prometheus.Gatherer, w io.Writer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

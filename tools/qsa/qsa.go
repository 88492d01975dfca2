package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/niklasfasching/qualifier/css"
	"github.com/niklasfasching/qualifier/soup"
	"github.com/niklasfasching/qualifier/sqlite"
	"github.com/niklasfasching/qualifier/util"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
)

type Config struct {
	Strict     bool
	Format     string
	Cache      string
	DB         string
	UserAgent  string
	Retries    int
	RetryDelay time.Duration
	Jobs       int
	LogLevel   util.Lvl
}

type result struct {
	source string
	nodes  soup.Nodes
}

var DefaultConfig = Config{
	Format:     "html",
	UserAgent:  "qsa",
	Retries:    2,
	RetryDelay: time.Second,
	Jobs:       4,
	LogLevel:   util.WARN,
}

var formats = map[string]func(*soup.Node) string{
	"tag":  func(n *soup.Node) string { return n.Data },
	"html": (*soup.Node).OuterHTML,
	"text": (*soup.Node).TrimmedText,
}

var migrations = []string{
	"CREATE TABLE matches (source TEXT, selector TEXT, idx INTEGER, tag TEXT, html TEXT)",
}

// Run matches selector against each source and prints the matches in source order.
// Sources are loaded concurrently; "-" (or no source at all) reads stdin and may appear at most once.
func Run(ctx context.Context, c Config, selector string, sources []string, stdin io.Reader, stdout io.Writer) error {
	s, err := compile(selector, c.Strict)
	if err != nil {
		return err
	}
	format, ok := formats[c.Format]
	if !ok {
		return fmt.Errorf("unknown format %q", c.Format)
	}
	if len(sources) == 0 {
		sources = []string{"-"}
	} else if i := slices.Index(sources, "-"); i >= 0 && slices.Contains(sources[i+1:], "-") {
		return fmt.Errorf("stdin (-) may only be given once as a source")
	}
	client, results := transport(c).Client(), make([]result, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, c.Jobs))
	for i, source := range sources {
		i, source := i, source
		g.Go(func() error {
			n, err := load(gctx, client, source, stdin)
			if err != nil {
				return fmt.Errorf("failed to load %q: %w", source, err)
			}
			results[i] = result{source, n.AllSel(s)}
			util.Debugf(gctx, "%s: %d matches for %q", source, len(results[i].nodes), s)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for _, r := range results {
		for _, n := range r.nodes {
			if len(sources) > 1 {
				fmt.Fprintf(stdout, "%s\t", r.source)
			}
			fmt.Fprintln(stdout, format(n))
		}
	}
	if c.DB != "" {
		return record(ctx, c.DB, selector, results)
	}
	return nil
}

// logTo writes one "time LVL msg" line per message to w.
func logTo(w io.Writer) util.LogFn {
	return func(lvl util.Lvl, msg string) {
		fmt.Fprintf(w, "%s %-5s %s\n", time.Now().Format(time.TimeOnly), lvl, strings.TrimSpace(msg))
	}
}

func compile(selector string, strict bool) (css.Matcher, error) {
	if !strict {
		return css.ParseList(selector), nil
	}
	ss, err := css.Compile(selector)
	if err != nil {
		return nil, err
	}
	return ss, nil
}

func transport(c Config) soup.Transport {
	t := soup.Transport{UserAgent: c.UserAgent, RetryCount: c.Retries, RetryDelay: c.RetryDelay}
	if c.Cache != "" {
		t.Cache = &soup.FileCache{Root: c.Cache}
	}
	return t
}

func load(ctx context.Context, client *http.Client, source string, stdin io.Reader) (*soup.Node, error) {
	switch {
	case source == "-":
		return soup.Parse(stdin)
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		req, err := http.NewRequestWithContext(ctx, "GET", source, nil)
		if err != nil {
			return nil, err
		}
		util.Debugf(ctx, "GET %s", source)
		return soup.LoadReq(client, req)
	default:
		f, err := os.Open(source)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return soup.Parse(f)
	}
}

func record(ctx context.Context, path, selector string, results []result) error {
	db, err := sqlite.New(path, migrations, nil)
	if err != nil {
		return err
	}
	defer db.Close()
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	count := 0
	for _, r := range results {
		for i, n := range r.nodes {
			if _, err := tx.Exec("INSERT INTO matches VALUES (?, ?, ?, ?, ?)", r.source, selector, i, n.Data, n.OuterHTML()); err != nil {
				return fmt.Errorf("failed to record match: %w", err)
			}
			count++
		}
	}
	util.Infof(ctx, "recorded %d matches in %s", count, path)
	return tx.Commit()
}

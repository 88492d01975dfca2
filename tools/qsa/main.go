// USAGE:
// $ qsa [flags] <selector> [file | url | -]...
// $ curl -s example.com | qsa 'h1, p.lead'
// $ qsa -format text -cache http 'span.price' https://example.com/a https://example.com/b
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/niklasfasching/qualifier/util"
)

func main() {
	c := DefaultConfig
	if err := util.LoadConfig("QSA_", &c); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	flag.BoolVar(&c.Strict, "strict", c.Strict, "reject selectors with unknown characters instead of skipping them")
	flag.StringVar(&c.Format, "format", c.Format, "output format: tag, html or text")
	flag.StringVar(&c.Cache, "cache", c.Cache, "directory to cache http responses in")
	flag.StringVar(&c.DB, "db", c.DB, "sqlite database to record matches in")
	flag.StringVar(&c.UserAgent, "user-agent", c.UserAgent, "user agent for http sources")
	flag.IntVar(&c.Retries, "retries", c.Retries, "retries for failed http requests")
	flag.DurationVar(&c.RetryDelay, "retry-delay", c.RetryDelay, "delay between http retries, e.g. 500ms (env QSA_RetryDelay)")
	flag.IntVar(&c.Jobs, "j", c.Jobs, "number of sources to load concurrently")
	flag.TextVar(&c.LogLevel, "log", c.LogLevel, "log level: DEBUG, INFO, WARN or ERROR")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <selector> [file | url | -]...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = util.WithLogger(ctx, util.WithLvl(c.LogLevel, logTo(os.Stderr)))
	if err := Run(ctx, c, flag.Arg(0), flag.Args()[1:], os.Stdin, os.Stdout); err != nil {
		util.Error(ctx, err)
		os.Exit(1)
	}
}

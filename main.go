package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/AYColumbia/glosser/config"
	"github.com/AYColumbia/glosser/dict"
	"github.com/AYColumbia/glosser/dom"
	"github.com/AYColumbia/glosser/page"
	"github.com/AYColumbia/glosser/selection"
	"github.com/AYColumbia/glosser/server"
	"github.com/AYColumbia/glosser/vocab"
)

var version = "dev"

func main() {
	ctx := context.Background()

	var (
		cfg   *config.Config
		store *vocab.Store
	)

	app := &cli.Command{
		Name:    "glosser",
		Usage:   "Look up words on web pages and build a vocabulary list",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to config file",
				Sources: cli.EnvVars("GLOSSER_CONFIG"),
				Value:   defaultConfigPath(),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error)",
				Sources: cli.EnvVars("GLOSSER_LOG_LEVEL"),
				Value:   "info",
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			level, err := zerolog.ParseLevel(c.String("log-level"))
			if err != nil {
				return ctx, fmt.Errorf("parse log level: %w", err)
			}
			log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
				Level(level).
				With().Timestamp().Logger()

			cfg, err = config.Load(c.String("config"))
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}

			if dir := filepath.Dir(cfg.Store.Path); dir != "" && dir != "." {
				if err := os.MkdirAll(dir, 0o700); err != nil {
					return ctx, fmt.Errorf("create data directory: %w", err)
				}
			}
			store, err = vocab.Open(cfg.Store.Path)
			if err != nil {
				return ctx, fmt.Errorf("open store: %w", err)
			}
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if store != nil {
				if err := store.Close(); err != nil {
					log.Error().Err(err).Msg("failed to close store")
					return err
				}
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "define",
				Usage:     "Look up a word's definition",
				ArgsUsage: "<word>",
				Action: func(ctx context.Context, c *cli.Command) error {
					word := c.Args().First()
					if word == "" {
						return fmt.Errorf("usage: glosser define <word>")
					}
					client := newDictClient(cfg)
					entry, err := client.Lookup(ctx, word)
					if err != nil {
						return fmt.Errorf("lookup failed: %w", err)
					}
					printEntry(entry)
					return nil
				},
			},
			{
				Name:      "read",
				Usage:     "Load a page, look up a word in context and save it",
				ArgsUsage: "<url> <word>",
				Action: func(ctx context.Context, c *cli.Command) error {
					urlStr, word := c.Args().Get(0), c.Args().Get(1)
					if urlStr == "" || word == "" {
						return fmt.Errorf("usage: glosser read <url> <word>")
					}
					return readAndSave(ctx, cfg, store, urlStr, word)
				},
			},
			{
				Name:  "list",
				Usage: "List saved vocabulary entries",
				Action: func(ctx context.Context, c *cli.Command) error {
					entries, err := store.List(ctx)
					if err != nil {
						return fmt.Errorf("list entries: %w", err)
					}
					if len(entries) == 0 {
						fmt.Println("no saved words")
						return nil
					}
					for _, e := range entries {
						fmt.Printf("%s  %-20s %s\n", e.CreatedAt.Format("2006-01-02"), e.Word, e.Sentence)
					}
					return nil
				},
			},
			{
				Name:  "serve",
				Usage: "Serve the vocabulary API",
				Action: func(ctx context.Context, c *cli.Command) error {
					ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
					defer stop()

					srv := server.New(store,
						server.WithAddr(cfg.Server.Addr),
						server.WithLogger(log.With().Str("component", "server").Logger()),
					)
					return srv.ListenAndServe(ctx)
				},
			},
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".glosser", "config.yaml")
}

func newDictClient(cfg *config.Config) *dict.Client {
	return dict.NewClient(
		dict.WithBaseURL(cfg.Dictionary.BaseURL),
		dict.WithTimeout(cfg.Dictionary.Timeout.Std()),
		dict.WithCacheTTL(cfg.Dictionary.CacheTTL.Std()),
		dict.WithLogger(log.With().Str("component", "dict").Logger()),
	)
}

// readAndSave runs the full pipeline on a page: locate the word, select
// it, wait for the definition and persist the entry.
func readAndSave(ctx context.Context, cfg *config.Config, store *vocab.Store, urlStr, word string) error {
	client, err := page.NewClient(
		page.WithTimeout(cfg.HTTP.Timeout.Std()),
		page.WithMaxRedirects(cfg.HTTP.MaxRedirects),
		page.WithUserAgent(cfg.HTTP.UserAgent),
	)
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	loader := page.NewLoader(client, page.WithLogger(log.With().Str("component", "page").Logger()))

	p, err := loader.Load(ctx, urlStr)
	if err != nil {
		return err
	}

	r := findWordRange(p.Document, word)
	if r == nil {
		return fmt.Errorf("word %q not found on %s", word, p.URL)
	}

	coord := selection.NewCoordinator(p.Document, newDictClient(cfg),
		selection.WithSaver(store),
		selection.WithSettleDelay(cfg.Selection.SettleDelay.Std()),
		selection.WithLogger(log.With().Str("component", "selection").Logger()),
	)
	coord.Select(selection.Input{Range: r})

	if err := waitResolved(ctx, coord); err != nil {
		return err
	}

	saved, err := coord.Save(ctx)
	if err != nil {
		return fmt.Errorf("save entry: %w", err)
	}
	fmt.Printf("saved %q\n  sentence: %s\n", saved.Word, saved.Sentence)
	if saved.Definition != "" {
		fmt.Printf("  %s: %s\n", saved.PartOfSpeech, saved.Definition)
	}
	return nil
}

// findWordRange locates the first occurrence of word in a text node under
// the document body and returns a range covering it.
func findWordRange(doc *dom.Document, word string) *dom.Range {
	root := doc.Body()
	if root == nil {
		root = doc.AsNode()
	}
	lower := strings.ToLower(word)

	var node *dom.Node
	idx := -1
	var walk func(n *dom.Node)
	walk = func(n *dom.Node) {
		if node != nil {
			return
		}
		if n.NodeType() == dom.TextNode {
			if i := strings.Index(strings.ToLower(n.Data()), lower); i >= 0 {
				node, idx = n, i
				return
			}
		}
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			walk(c)
		}
	}
	walk(root)
	if node == nil {
		return nil
	}

	r := dom.NewRange(doc)
	if err := r.SetStart(node, idx); err != nil {
		return nil
	}
	if err := r.SetEnd(node, idx+len(word)); err != nil {
		return nil
	}
	return r
}

func waitResolved(ctx context.Context, coord *selection.Coordinator) error {
	deadline := time.Now().Add(30 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(25 * time.Millisecond):
		}
		if coord.State() == selection.Resolved {
			return nil
		}
	}
	return fmt.Errorf("timed out waiting for definition")
}

func printEntry(entry dict.Entry) {
	if entry.Empty() {
		fmt.Printf("no definition found for %q\n", entry.Word)
		return
	}
	fmt.Println(entry.Word)
	if entry.Phonetic != "" {
		fmt.Println(entry.Phonetic)
	}
	for _, m := range entry.Meanings {
		fmt.Printf("  %s\n", m.PartOfSpeech)
		for i, d := range m.Definitions {
			fmt.Printf("    %d. %s\n", i+1, d.Definition)
			if d.Example != "" {
				fmt.Printf("       %q\n", d.Example)
			}
		}
	}
}

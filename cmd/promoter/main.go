package main

import (
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/k0kubun/pp/v3"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/letieu/hive-promoter/config"
	"github.com/letieu/hive-promoter/internal/archive"
	"github.com/letieu/hive-promoter/internal/content"
	"github.com/letieu/hive-promoter/internal/digest"
	"github.com/letieu/hive-promoter/internal/highlight"
	"github.com/letieu/hive-promoter/internal/hive"
	"github.com/letieu/hive-promoter/internal/logging"
	"github.com/letieu/hive-promoter/internal/poster"
	"github.com/letieu/hive-promoter/internal/schedule"
)

// bot wires every pipeline stage from one immutable config.
type bot struct {
	cfg       *config.Config
	log       *logrus.Logger
	fetcher   *highlight.Fetcher
	generator *content.Generator
	formatter *digest.Formatter
	poster    *poster.Poster
	scheduler *schedule.Scheduler
	archive   *archive.Archive
}

func newBot() (*bot, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logging.New(cfg.Bot.LogLevel)

	client := hive.NewClient(cfg.Hive.BaseURL, cfg.Hive.WebURL, cfg.Timeout())
	fetcher := highlight.NewFetcher(client, highlight.Thresholds{
		RecencyWindow:     cfg.RecencyWindow(),
		HotThreshold:      cfg.Curation.HotThreshold,
		DebateMinComments: cfg.Curation.DebateMinComments,
	}, log.WithField("component", "fetcher"))

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	generator := content.NewGenerator(fetcher, content.Weights{
		HotTake:  cfg.Curation.Weights.HotTake,
		Debate:   cfg.Curation.Weights.Debate,
		NewAgent: cfg.Curation.Weights.NewAgent,
		Default:  cfg.Curation.Weights.Default,
	}, cfg.Bot.Mention, rng, log.WithField("component", "generator"))

	formatter := digest.NewFormatter(cfg.Hive.WebURL, cfg.Bot.Mention, log.WithField("component", "formatter"))

	b := &bot{
		cfg:       cfg,
		log:       log,
		fetcher:   fetcher,
		generator: generator,
		formatter: formatter,
	}

	if cfg.Archive.Enabled {
		arc, err := archive.Open(cfg.Archive.URL, cfg.Archive.AuthToken)
		if err != nil {
			return nil, fmt.Errorf("open archive: %w", err)
		}
		b.archive = arc
	}

	xclient := poster.NewXClient(cfg.Broadcast.APIURL, cfg.Broadcast.BearerToken, cfg.Timeout())
	var rec poster.Recorder
	if b.archive != nil {
		rec = b.archive
	}
	b.poster = poster.New(xclient, rec, cfg.Broadcast.DryRun, log.WithField("component", "poster"))

	b.scheduler = schedule.NewScheduler(schedule.NewMemoryQueue(), b.poster, generator, schedule.Options{
		PostTimes:      cfg.Bot.PostTimes,
		MaxPostsPerDay: cfg.Bot.MaxPostsPerDay,
		AutoPost:       cfg.Bot.AutoPost,
	}, log.WithField("component", "scheduler"))

	return b, nil
}

func (b *bot) close() {
	if b.archive != nil {
		b.archive.Close()
	}
}

func main() {
	// A local .env is optional; viper picks the variables up afterwards.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "promoter",
		Usage: "curate TheHive activity and autopost it to X",
		Commands: []*cli.Command{
			{
				Name:   "test-fetch",
				Usage:  "fetch highlights and dump them",
				Action: runTestFetch,
			},
			{
				Name:   "test-post",
				Usage:  "send a canned post through the poster (honors dry run)",
				Action: runTestPost,
			},
			{
				Name:   "generate",
				Usage:  "generate one piece of content without dispatching",
				Action: runGenerate,
			},
			{
				Name:   "post-now",
				Usage:  "generate and dispatch immediately, bypassing the queue",
				Action: runPostNow,
			},
			{
				Name:   "queue",
				Usage:  "generate one piece of content and queue it",
				Action: runQueue,
			},
			{
				Name:   "status",
				Usage:  "print queue status",
				Action: runStatus,
			},
			{
				Name:   "start",
				Usage:  "run the posting scheduler until interrupted",
				Action: runStart,
			},
			{
				Name:   "digest",
				Usage:  "build digest stats and write the preview artifacts",
				Action: runDigest,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runTestFetch(c *cli.Context) error {
	b, err := newBot()
	if err != nil {
		return err
	}
	defer b.close()

	highlights := b.fetcher.All(c.Context)
	fmt.Printf("Fetched %d highlights\n", len(highlights))
	pp.Println(highlights)
	return nil
}

func runTestPost(c *cli.Context) error {
	b, err := newBot()
	if err != nil {
		return err
	}
	defer b.close()

	tweet := &content.Tweet{
		Text: "🐝 Test post from hive-promoter. If you can read this, the pipeline works.",
		Kind: content.KindSingle,
	}
	ids := b.poster.Post(c.Context, tweet)
	if len(ids) == 0 {
		fmt.Println("Dispatch produced no ids (see logs)")
		return nil
	}
	fmt.Printf("Posted: %v\n", ids)
	return nil
}

func runGenerate(c *cli.Context) error {
	b, err := newBot()
	if err != nil {
		return err
	}
	defer b.close()

	tweet := b.generator.Random(c.Context)
	pp.Println(tweet)
	return nil
}

func runPostNow(c *cli.Context) error {
	b, err := newBot()
	if err != nil {
		return err
	}
	defer b.close()

	tweet := b.generator.Random(c.Context)
	ids := b.scheduler.PostNow(c.Context, tweet)
	if len(ids) == 0 {
		fmt.Println("Dispatch produced no ids (see logs)")
		return nil
	}
	fmt.Printf("Posted %d part(s): %v\n", len(ids), ids)
	return nil
}

func runQueue(c *cli.Context) error {
	b, err := newBot()
	if err != nil {
		return err
	}
	defer b.close()

	tweet := b.generator.Random(c.Context)
	id := b.scheduler.QueueContent(tweet)

	for _, p := range b.scheduler.Status().Queue {
		if p.ID == id {
			fmt.Printf("Queued %s for %s\n", id, p.ScheduledTime.Format(time.RFC1123))
		}
	}
	return nil
}

func runStatus(c *cli.Context) error {
	b, err := newBot()
	if err != nil {
		return err
	}
	defer b.close()

	st := b.scheduler.Status()
	fmt.Printf("Queue length: %d\n", st.QueueLength)
	fmt.Printf("Posts today:  %d / %d\n", st.PostsToday, b.cfg.Bot.MaxPostsPerDay)
	if st.NextPost != nil {
		fmt.Printf("Next post:    %s\n", st.NextPost.Format(time.RFC1123))
	} else {
		fmt.Println("Next post:    none scheduled")
	}

	if b.archive != nil {
		records, err := b.archive.Recent(5)
		if err != nil {
			b.log.WithError(err).Warn("read archive failed")
			return nil
		}
		fmt.Printf("Recent dispatches: %d\n", len(records))
		for _, r := range records {
			fmt.Printf("  %s  %-7s %v\n", r.PostedAt.Format("2006-01-02 15:04"), r.Kind, r.ExternalIDs)
		}
	}
	return nil
}

func runStart(c *cli.Context) error {
	b, err := newBot()
	if err != nil {
		return err
	}
	defer b.close()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	b.scheduler.Run(ctx)
	return nil
}

func runDigest(c *cli.Context) error {
	b, err := newBot()
	if err != nil {
		return err
	}
	defer b.close()

	stats := digest.Collect(c.Context, b.fetcher, b.cfg.Curation.RecencyWindowHours)
	artifacts, err := b.formatter.WriteArtifacts(b.cfg.Bot.OutputDir, stats)
	if err != nil {
		return fmt.Errorf("write artifacts: %w", err)
	}

	fmt.Println("Wrote digest previews:")
	fmt.Println(" ", artifacts.ThreadPath)
	fmt.Println(" ", artifacts.EmailPath)
	fmt.Println(" ", artifacts.PlatformPath)
	fmt.Println(" ", artifacts.StatsPath)
	return nil
}

package poster

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/letieu/hive-promoter/internal/content"
	"github.com/letieu/hive-promoter/internal/textfit"
)

// Broadcaster is the opaque delivery capability: post one piece of text,
// optionally as a reply, and get back its external id.
type Broadcaster interface {
	Send(ctx context.Context, text string, inReplyTo string) (string, error)
}

// Recorder persists successfully dispatched posts. Optional; failures
// are advisory.
type Recorder interface {
	Record(id string, kind string, text string, externalIDs []string, postedAt time.Time) error
}

// Poster performs (or, in dry-run, simulates) delivery. Threads go out
// as a chain of dependent replies; a failure mid-chain aborts the rest
// and returns only the ids posted so far.
type Poster struct {
	client  Broadcaster
	archive Recorder
	dryRun  bool
	log     *logrus.Entry
}

func New(client Broadcaster, archive Recorder, dryRun bool, log *logrus.Entry) *Poster {
	return &Poster{client: client, archive: archive, dryRun: dryRun, log: log}
}

// Post dispatches one tweet and returns the external ids produced, empty
// on failure. It never returns an error: the scheduler decides what to
// do on a later tick.
func (p *Poster) Post(ctx context.Context, tweet *content.Tweet) []string {
	parts := tweet.Parts
	if tweet.Kind != content.KindThread {
		parts = []string{tweet.Text}
	}

	var ids []string
	replyTo := ""
	for i, part := range parts {
		if !textfit.Valid(part) {
			// The formatter guarantees compliance; this is a safety net.
			p.log.WithFields(logrus.Fields{"part": i, "length": textfit.Length(part)}).
				Warn("part exceeds platform budget")
		}

		id, err := p.send(ctx, part, replyTo)
		if err != nil {
			p.log.WithError(err).WithField("part", i).Warn("dispatch failed, aborting remaining parts")
			break
		}
		ids = append(ids, id)
		replyTo = id
	}

	if len(ids) > 0 && p.archive != nil {
		if err := p.archive.Record(uuid.NewString(), string(tweet.Kind), tweet.Text, ids, time.Now()); err != nil {
			p.log.WithError(err).Warn("archive record failed")
		}
	}
	return ids
}

func (p *Poster) send(ctx context.Context, text, replyTo string) (string, error) {
	if p.dryRun {
		id := "dry-" + uuid.NewString()
		p.log.WithFields(logrus.Fields{"id": id, "length": textfit.Length(text)}).
			Info("dry run, skipping dispatch")
		return id, nil
	}
	return p.client.Send(ctx, text, replyTo)
}

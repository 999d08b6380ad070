package lookup

import (
	"context"
	"fmt"

	"github.com/fwojciec/lectio"
)

// SeedReport counts what Seed created and skipped.
type SeedReport struct {
	VersionsCreated    int
	VersionsSkipped    int
	ConfessionsCreated int
	ConfessionsSkipped int
}

// Seed stores the versions and confessions of seed whose commands do not
// exist yet. Existing entries are left untouched.
func (s *Service) Seed(ctx context.Context, seed *lectio.Seed) (*SeedReport, error) {
	report := &SeedReport{}

	for _, v := range seed.Versions {
		_, err := s.Versions.FindVersionByCommand(ctx, v.Command)
		switch lectio.ErrorCode(err) {
		case "":
			report.VersionsSkipped++
			continue
		case lectio.EVERSION:
		default:
			return nil, err
		}
		if err := s.Versions.CreateVersion(ctx, v); err != nil {
			return nil, fmt.Errorf("create version %s: %w", v.Command, err)
		}
		report.VersionsCreated++
	}

	for _, doc := range seed.Confessions {
		_, err := s.Confessions.FindConfessionByCommand(ctx, doc.Confession.Command)
		switch lectio.ErrorCode(err) {
		case "":
			report.ConfessionsSkipped++
			continue
		case lectio.ENOTFOUND:
		default:
			return nil, err
		}
		if err := s.storeConfession(ctx, doc); err != nil {
			return nil, fmt.Errorf("create confession %s: %w", doc.Confession.Command, err)
		}
		report.ConfessionsCreated++
	}

	return report, nil
}

func (s *Service) storeConfession(ctx context.Context, doc *lectio.ConfessionDocument) error {
	if err := s.Confessions.CreateConfession(ctx, doc.Confession); err != nil {
		return err
	}
	id := doc.Confession.ID

	for _, ch := range doc.Chapters {
		ch.ConfessionID = id
		if err := s.Confessions.CreateChapter(ctx, ch); err != nil {
			return err
		}
	}
	for _, p := range doc.Paragraphs {
		p.ConfessionID = id
		if err := s.Confessions.CreateParagraph(ctx, p); err != nil {
			return err
		}
	}
	for _, q := range doc.Questions {
		q.ConfessionID = id
		if err := s.Confessions.CreateQuestion(ctx, q); err != nil {
			return err
		}
	}
	for _, a := range doc.Articles {
		a.ConfessionID = id
		if err := s.Confessions.CreateArticle(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/lectio"
	"github.com/fwojciec/lectio/mock"
	lslog "github.com/fwojciec/lectio/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingConfessionService(t *testing.T) {
	t.Parallel()

	wcf := &lectio.Confession{Command: "wcf", Name: "Westminster Confession of Faith"}

	t.Run("logs paragraph address", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.ConfessionService{
			FindParagraphFn: func(ctx context.Context, c *lectio.Confession, chapter, paragraph int) (*lectio.Paragraph, error) {
				return &lectio.Paragraph{ChapterNumber: chapter, Number: paragraph}, nil
			},
		}

		p, err := lslog.NewLoggingConfessionService(inner, logger).FindParagraph(context.Background(), wcf, 11, 2)

		require.NoError(t, err)
		assert.Equal(t, 2, p.Number)
		assert.Contains(t, buf.String(), "confession=wcf")
		assert.Contains(t, buf.String(), "section=11.2")
	})

	t.Run("logs search terms", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.ConfessionService{
			SearchQuestionsFn: func(ctx context.Context, c *lectio.Confession, terms []string) (lectio.Cursor[*lectio.Question], error) {
				return lectio.NewSliceCursor([]*lectio.Question{{Number: 1}}), nil
			},
		}

		cur, err := lslog.NewLoggingConfessionService(inner, logger).SearchQuestions(context.Background(), wcf, []string{"comfort"})

		require.NoError(t, err)
		found, err := lectio.Collect(cur, 0)
		require.NoError(t, err)
		assert.Len(t, found, 1)
		assert.Contains(t, buf.String(), "confession search")
		assert.Contains(t, buf.String(), "terms=[comfort]")
	})

	t.Run("passes listing through", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.ConfessionService{
			FindConfessionsFn: func(ctx context.Context) ([]*lectio.Confession, error) {
				return []*lectio.Confession{wcf}, nil
			},
		}

		all, err := lslog.NewLoggingConfessionService(inner, logger).FindConfessions(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []*lectio.Confession{wcf}, all)
		assert.Empty(t, buf.String())
	})
}

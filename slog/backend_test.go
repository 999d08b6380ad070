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

func TestLoggingBackend_Lookup(t *testing.T) {
	t.Parallel()

	t.Run("logs version, range and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		want := &lectio.Passage{Text: "Jesus wept."}
		inner := &mock.Backend{
			LookupFn: func(ctx context.Context, v *lectio.Version, r lectio.VerseRange) (*lectio.Passage, error) {
				return want, nil
			},
		}

		r, err := lectio.NewVerseRange(lectio.John, lectio.Verse{Chapter: 11, Verse: 35}, nil)
		require.NoError(t, err)

		p, err := lslog.NewLoggingBackend(inner, logger).Lookup(context.Background(), &lectio.Version{Command: "nwt"}, r)

		require.NoError(t, err)
		assert.Equal(t, want, p)
		output := buf.String()
		assert.Contains(t, output, "msg=lookup")
		assert.Contains(t, output, "version=nwt")
		assert.Contains(t, output, `range="John 11:35"`)
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Backend{
			LookupFn: func(ctx context.Context, v *lectio.Version, r lectio.VerseRange) (*lectio.Passage, error) {
				return nil, lectio.Errorf(lectio.EUNAVAILABLE, "down")
			},
		}

		_, err := lslog.NewLoggingBackend(inner, logger).Lookup(context.Background(), &lectio.Version{Command: "nwt"}, lectio.ChapterRange(lectio.Psalms, 23))

		assert.Equal(t, lectio.EUNAVAILABLE, lectio.ErrorCode(err))
		assert.Contains(t, buf.String(), "err=")
	})
}

func TestLoggingBackend_Search(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.Backend{
		SearchFn: func(ctx context.Context, v *lectio.Version, terms []string, opts lectio.SearchOptions) (*lectio.SearchResults, error) {
			return &lectio.SearchResults{Total: 3}, nil
		},
	}

	res, err := lslog.NewLoggingBackend(inner, logger).Search(context.Background(), &lectio.Version{Command: "nwt"}, []string{"love"}, lectio.SearchOptions{Limit: 20})

	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)
	assert.Contains(t, buf.String(), "total=3")
}

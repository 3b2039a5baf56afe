package mock_test

import (
	"context"
	"testing"

	"github.com/fwojciec/novelgrab"
	"github.com/fwojciec/novelgrab/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookSink_ImplementsInterfaces(t *testing.T) {
	t.Parallel()

	var _ novelgrab.Sink = &mock.BookSink{}
	var _ novelgrab.BookSink = &mock.BookSink{}
}

func TestBookSink_OnChapter(t *testing.T) {
	t.Parallel()

	t.Run("delegates to the embedded sink", func(t *testing.T) {
		t.Parallel()

		var calledWith *novelgrab.Chapter
		s := &mock.BookSink{
			Sink: mock.Sink{
				OnChapterFn: func(_ context.Context, ch *novelgrab.Chapter) error {
					calledWith = ch
					return nil
				},
			},
		}

		ch := &novelgrab.Chapter{Index: 1, Title: "第一章", Body: "正文"}

		err := s.OnChapter(context.Background(), ch)

		require.NoError(t, err)
		assert.Equal(t, ch, calledWith)
	})
}

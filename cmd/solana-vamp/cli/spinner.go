package cli

import (
	"context"
	"io"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// spinner shows progress while a transaction is being confirmed.
type spinner struct {
	progress *mpb.Progress
	bar      *mpb.Bar
}

func startSpinner(ctx context.Context, w io.Writer, message string) *spinner {
	p := mpb.NewWithContext(ctx, mpb.WithOutput(w), mpb.WithWidth(1))
	bar := p.AddSpinner(0,
		mpb.PrependDecorators(decor.OnComplete(decor.Name(message+" "), message+" done")),
		mpb.AppendDecorators(decor.OnComplete(decor.Elapsed(decor.ET_STYLE_GO), "")),
	)
	return &spinner{progress: p, bar: bar}
}

func (s *spinner) stop(ok bool) {
	if ok {
		s.bar.SetTotal(-1, true)
	} else {
		s.bar.Abort(true)
	}
	s.progress.Wait()
}

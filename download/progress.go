package download

import (
	"github.com/vbauerster/mpb/v4"
	"github.com/vbauerster/mpb/v4/decor"
)

// BarProgress adapts an mpb bar to a ProgressFunc for CLI runs. The bar's
// total is learned from the first progress report since the content length
// is not known until the response arrives.
func BarProgress(p *mpb.Progress, name string) ProgressFunc {
	bar := p.AddBar(0,
		mpb.PrependDecorators(
			decor.Name(name, decor.WC{W: len(name) + 1, C: decor.DidentRight}),
			decor.CountersKibiByte("% .1f / % .1f"),
		),
		mpb.AppendDecorators(decor.Percentage()),
		mpb.BarRemoveOnComplete(),
	)

	var prev int64
	return func(downloaded, total int64) {
		if total > 0 {
			bar.SetTotal(total, false)
		}
		bar.IncrInt64(downloaded - prev)
		prev = downloaded
	}
}

package utils

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

// DescGenerating labels the batch progress bar
const DescGenerating = "Generating"

// NewProgressBarTo creates a consistently styled progress bar on w.
// A negative total switches to spinner mode.
//
// Example:
//
//	bar := utils.NewProgressBarTo(os.Stderr, len(job.Targets), utils.DescGenerating)
//	defer bar.Finish()
func NewProgressBarTo(w io.Writer, total int, description string) *progressbar.ProgressBar {
	opts := []progressbar.Option{
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
	}

	if total < 0 {
		opts = append(opts,
			progressbar.OptionSpinnerType(14),
			progressbar.OptionSetRenderBlankState(true),
		)
	} else {
		opts = append(opts,
			progressbar.OptionShowIts(),
		)
	}

	return progressbar.NewOptions(total, opts...)
}

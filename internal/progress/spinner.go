package progress

import (
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Spinner is an indeterminate indicator shown while a question is in flight.
type Spinner struct {
	bar  *progressbar.ProgressBar
	stop chan struct{}
	done chan struct{}
}

// StartSpinner draws a spinner labelled message to w until Stop is called.
func StartSpinner(w io.Writer, message string) *Spinner {
	s := &Spinner{
		bar: progressbar.NewOptions(-1,
			progressbar.OptionSetWriter(w),
			progressbar.OptionSetDescription(message),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionClearOnFinish(),
		),
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *Spinner) run() {
	defer close(s.done)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			_ = s.bar.Finish()
			return
		case <-ticker.C:
			_ = s.bar.Add(1)
		}
	}
}

// Stop clears the spinner. It is safe to call more than once.
func (s *Spinner) Stop() {
	select {
	case <-s.stop:
	default:
		close(s.stop)
	}
	<-s.done
}

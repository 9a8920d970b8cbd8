package cmd

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// progressPrinter redraws a one-line probe counter on w until Stop is called.
type progressPrinter struct {
	w        io.Writer
	host     string
	total    int
	mu       sync.Mutex
	answered int
	silent   int
	duration time.Duration
	updates  chan struct{}
	done     chan struct{}
	exited   chan struct{}
	stopOnce sync.Once
}

func newProgressPrinter(w io.Writer, host string, total int) *progressPrinter {
	if total <= 0 {
		total = 1
	}
	return &progressPrinter{
		w:       w,
		host:    host,
		total:   total,
		updates: make(chan struct{}, 1),
		done:    make(chan struct{}),
		exited:  make(chan struct{}),
	}
}

func (p *progressPrinter) Start() {
	go p.loop()
}

// Record counts one finished probe. answered is false when the host sent nothing back.
func (p *progressPrinter) Record(answered bool, d time.Duration) {
	p.mu.Lock()
	if answered {
		p.answered++
	} else {
		p.silent++
	}
	p.duration += d
	p.mu.Unlock()

	select {
	case p.updates <- struct{}{}:
	default:
	}
}

// Stop ends the redraw loop, clears the line and prints the final counter.
func (p *progressPrinter) Stop() {
	p.stopOnce.Do(func() {
		close(p.done)
		<-p.exited
		fmt.Fprintf(p.w, "\r%s\r", strings.Repeat(" ", 80))
		p.print()
		fmt.Fprintln(p.w)
	})
}

func (p *progressPrinter) loop() {
	defer close(p.exited)

	ticker := time.NewTicker(300 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-p.updates:
			p.print()
		case <-ticker.C:
			p.print()
		case <-p.done:
			return
		}
	}
}

func (p *progressPrinter) print() {
	p.mu.Lock()
	answered := p.answered
	silent := p.silent
	dur := p.duration
	p.mu.Unlock()

	completed := answered + silent
	if completed > p.total {
		p.total = completed
	}

	percent := (float64(completed) / float64(p.total)) * 100
	avg := 0.0
	if completed > 0 {
		avg = dur.Seconds() / float64(completed)
	}

	fmt.Fprintf(p.w, "\r[%s] Probes: %d/%d (%.1f%%) Answered:%d NoResponse:%d Avg:%.2fs",
		p.host, completed, p.total, percent, answered, silent, avg)
}

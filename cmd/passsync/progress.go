package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/cheggaaa/pb/v3"

	"github.com/MKhiriev/go-pass-sync/models"
)

const progressTemplate = `{{string . "provider"}} {{counters . }} {{bar . }} {{percent . }} {{string . "op"}}`

// progressObserver draws one progress bar per running session.
type progressObserver struct {
	mu   sync.Mutex
	w    io.Writer
	bars map[int64]*pb.ProgressBar
}

func newProgressObserver(w io.Writer) *progressObserver {
	return &progressObserver{w: w, bars: make(map[int64]*pb.ProgressBar)}
}

func (p *progressObserver) OnProgress(providerID int64, done, total int, description string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	bar, ok := p.bars[providerID]
	if !ok {
		bar = pb.New(total)
		bar.SetWriter(p.w)
		bar.SetTemplateString(progressTemplate)
		bar.Set("provider", fmt.Sprintf("provider %d", providerID))
		bar.Start()
		p.bars[providerID] = bar
	}

	bar.SetTotal(int64(total))
	bar.SetCurrent(int64(done))
	bar.Set("op", description)
}

func (p *progressObserver) OnSessionFinished(rec *models.SyncLogRecord, _ models.SyncResults) {
	p.mu.Lock()
	defer p.mu.Unlock()

	bar, ok := p.bars[rec.ProviderID]
	if !ok {
		return
	}
	delete(p.bars, rec.ProviderID)

	bar.SetCurrent(bar.Total())
	bar.Set("op", "done")
	bar.Finish()
}

func (p *progressObserver) OnRepeatedFailures(provider models.Provider, failures int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.w, "warning: %s %s failed to sync %d times in a row\n", provider.Type, provider.Name(), failures)
}

package extraction

import (
	"github.com/gamejiaminenergia/observatorio-regulatorio-test-ia-local/core"
)

// Monitor provides hooks to observe a pipeline run.
// Implement this interface to track intermediate steps and progress.
type Monitor interface {
	Start(url string)
	AfterLoad(runeCount int)
	AfterChunking(chunks []core.Chunk)
	ChunkDone(completed, total int)
	AfterExtraction(results []core.PartialResult)
	AfterConsolidation(result *core.ConsolidatedResult)
	Finish(run *core.ExtractionRun)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                                 {}
func (n *noopMonitor) AfterLoad(_ int)                                {}
func (n *noopMonitor) AfterChunking(_ []core.Chunk)                   {}
func (n *noopMonitor) ChunkDone(_, _ int)                             {}
func (n *noopMonitor) AfterExtraction(_ []core.PartialResult)         {}
func (n *noopMonitor) AfterConsolidation(_ *core.ConsolidatedResult)  {}
func (n *noopMonitor) Finish(_ *core.ExtractionRun)                   {}

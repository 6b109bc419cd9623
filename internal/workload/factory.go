package workload

import "strings"

// Strategy names accepted by the --runner flag.
const (
	StrategySequential = "sequential"
	StrategyConcurrent = "concurrent"
	StrategyPooled     = "pooled"
	StrategyAll        = "all"
)

// RunnerFactory provides the available runner strategies by name.
// It decouples strategy selection (config, CLI completion) from the
// concrete runner implementations.
type RunnerFactory interface {
	// Get returns the runner for the given strategy name, if known.
	Get(name string) (Runner, bool)
	// GetAll returns every runner in comparison order: slowest strategy first.
	GetAll() []Runner
	// List returns the accepted strategy names, including "all".
	List() []string
}

type defaultFactory struct {
	sequential *SequentialRunner
	concurrent *ConcurrentRunner
	pooled     *PooledRunner
}

// NewFactory creates the default runner factory. The workers argument
// configures the pooled runner's in-flight bound.
func NewFactory(workers int) RunnerFactory {
	return &defaultFactory{
		sequential: NewSequentialRunner(),
		concurrent: NewConcurrentRunner(),
		pooled:     NewPooledRunner(workers),
	}
}

func (f *defaultFactory) Get(name string) (Runner, bool) {
	switch strings.ToLower(name) {
	case StrategySequential:
		return f.sequential, true
	case StrategyConcurrent:
		return f.concurrent, true
	case StrategyPooled:
		return f.pooled, true
	}
	return nil, false
}

func (f *defaultFactory) GetAll() []Runner {
	return []Runner{f.sequential, f.pooled, f.concurrent}
}

func (f *defaultFactory) List() []string {
	return []string{StrategySequential, StrategyConcurrent, StrategyPooled, StrategyAll}
}

package metrics

// NoopProvider returns no-op instruments. It is the default provider: a
// bridge without WithMetrics records into it.
type NoopProvider struct{}

// NewNoopProvider constructs a Provider that discards all measurements.
func NewNoopProvider() NoopProvider { return NoopProvider{} }

func (NoopProvider) Counter(string, ...InstrumentOption) Counter { return noopInstrument{} }

func (NoopProvider) UpDownCounter(string, ...InstrumentOption) UpDownCounter { return noopInstrument{} }

func (NoopProvider) Histogram(string, ...InstrumentOption) Histogram { return noopInstrument{} }

type noopInstrument struct{}

func (noopInstrument) Add(int64)      {}
func (noopInstrument) Record(float64) {}

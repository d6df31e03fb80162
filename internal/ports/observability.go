package ports

// Field is a key/value pair attached to a log line.
type Field struct {
	Key   string
	Value any
}

// Observability is the runtime's logging and metrics backend.
type Observability interface {
	LogInfo(msg string, fields ...Field)
	LogWarn(msg string, fields ...Field)
	LogError(msg string, err error, fields ...Field)

	IncCounter(name string, v float64)
	SetGauge(name string, v float64)
	ObserveLatency(name string, seconds float64)
}

package logging

import (
	"time"
)

// Common field constructors
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Cascade field helpers
func Component(name string) Field {
	return String("component", name)
}

func Scenario(name string) Field {
	return String("scenario", name)
}

func RunID(id string) Field {
	return String("run_id", id)
}

func Layer(name string) Field {
	return String("layer", name)
}

func Iterations(n int) Field {
	return Int("iterations", n)
}

func NodeCount(n int) Field {
	return Int("num_nodes", n)
}

func Survivors(n int) Field {
	return Int("survivors", n)
}

func MInfty(v float64) Field {
	return Float64("m_infty", v)
}

func Latency(d time.Duration) Field {
	return Duration("latency", d)
}

func Count(n int) Field {
	return Int("count", n)
}

func Path(p string) Field {
	return String("path", p)
}

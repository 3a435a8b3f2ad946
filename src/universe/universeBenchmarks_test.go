package universe

import (
	"testing"
	"time"
)

const benchPattern = "Acorn"

func universeStep(u Universe, b *testing.B) {
	stateCh := u.StateCh()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		if err := u.Reset(benchPattern); err != nil {
			b.Fatal(err)
		}
		<-stateCh //wait for the reset
		b.StartTimer()
		u.Step()
		<-stateCh
	}
	u.Close()
}

func universeRun(u Universe, b *testing.B) {
	stateCh := u.StateCh()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		if err := u.Reset(benchPattern); err != nil {
			b.Fatal(err)
		}
		<-stateCh //wait for the reset
		b.StartTimer()
		u.Run()
		for {
			st := <-stateCh
			if st.RunningMode == RunningStateFinished {
				break
			}
		}
	}
	u.Close()
}

func newStateCh() chan Status {
	return make(chan Status, 10)
}

func newUniverseOptions() *Options {
	o := DefaultUniverseOptions
	o.Interval = time.Microsecond
	o.MaxSteps = 200
	o.StopWhenStagnant = false
	return &o
}

func Benchmark_Step(b *testing.B) {
	u := NewColonyUniverse(newUniverseOptions(), nil, newStateCh())
	universeStep(u, b)
}

func Benchmark_Universe(b *testing.B) {
	u := NewColonyUniverse(newUniverseOptions(), nil, newStateCh())
	universeRun(u, b)
}

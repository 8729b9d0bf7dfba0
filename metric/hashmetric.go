/*
 * Copyright 2019 The CovenantSQL Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package metric

import (
	"fmt"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

// Function names tracked by HashCollector.
const (
	FuncSHA3      = "sha3"
	FuncSHA3Query = "sha3_query"
)

// hashStatsMetrics provide description, value, and value type for hash metrics.
type hashStatsMetrics []struct {
	desc    *prometheus.Desc
	eval    func(*HashCollector) float64
	valType prometheus.ValueType
	labels  []string
}

// HashCollector counts hashing activity. All methods are safe for concurrent use.
type HashCollector struct {
	sha3Calls       uint64
	sha3QueryCalls  uint64
	sha3Errors      uint64
	sha3QueryErrors uint64
	hashedBytes     uint64
	statements      uint64
	rows            uint64

	// metrics to describe and collect
	metrics hashStatsMetrics
}

func hashStatNamespace(s string) string {
	return fmt.Sprintf("shathree_%s", s)
}

// NewHashCollector returns a new HashCollector.
func NewHashCollector() *HashCollector {
	callsDesc := prometheus.NewDesc(
		hashStatNamespace("function_calls_total"),
		"Number of SQL hash function calls",
		[]string{"function"},
		nil,
	)
	errorsDesc := prometheus.NewDesc(
		hashStatNamespace("function_errors_total"),
		"Number of SQL hash function calls ending with an error",
		[]string{"function"},
		nil,
	)
	hc := &HashCollector{}
	hc.metrics = hashStatsMetrics{
		{
			desc:    callsDesc,
			eval:    func(c *HashCollector) float64 { return load(&c.sha3Calls) },
			valType: prometheus.CounterValue,
			labels:  []string{FuncSHA3},
		},
		{
			desc:    callsDesc,
			eval:    func(c *HashCollector) float64 { return load(&c.sha3QueryCalls) },
			valType: prometheus.CounterValue,
			labels:  []string{FuncSHA3Query},
		},
		{
			desc:    errorsDesc,
			eval:    func(c *HashCollector) float64 { return load(&c.sha3Errors) },
			valType: prometheus.CounterValue,
			labels:  []string{FuncSHA3},
		},
		{
			desc:    errorsDesc,
			eval:    func(c *HashCollector) float64 { return load(&c.sha3QueryErrors) },
			valType: prometheus.CounterValue,
			labels:  []string{FuncSHA3Query},
		},
		{
			desc: prometheus.NewDesc(
				hashStatNamespace("hashed_bytes_total"),
				"Number of bytes absorbed by SHA3 hashers",
				nil,
				nil,
			),
			eval:    func(c *HashCollector) float64 { return load(&c.hashedBytes) },
			valType: prometheus.CounterValue,
		},
		{
			desc: prometheus.NewDesc(
				hashStatNamespace("hashed_statements_total"),
				"Number of SQL statements whose results were hashed",
				nil,
				nil,
			),
			eval:    func(c *HashCollector) float64 { return load(&c.statements) },
			valType: prometheus.CounterValue,
		},
		{
			desc: prometheus.NewDesc(
				hashStatNamespace("hashed_rows_total"),
				"Number of result rows hashed",
				nil,
				nil,
			),
			eval:    func(c *HashCollector) float64 { return load(&c.rows) },
			valType: prometheus.CounterValue,
		},
	}
	return hc
}

func load(v *uint64) float64 {
	return float64(atomic.LoadUint64(v))
}

// ObserveHash records a sha3 call absorbing n bytes.
func (hc *HashCollector) ObserveHash(n int) {
	atomic.AddUint64(&hc.sha3Calls, 1)
	atomic.AddUint64(&hc.hashedBytes, uint64(n))
}

// ObserveQuery records a sha3_query call.
func (hc *HashCollector) ObserveQuery(statements, rows int, bytes int64) {
	atomic.AddUint64(&hc.sha3QueryCalls, 1)
	atomic.AddUint64(&hc.statements, uint64(statements))
	atomic.AddUint64(&hc.rows, uint64(rows))
	atomic.AddUint64(&hc.hashedBytes, uint64(bytes))
}

// ObserveError records a failed call of the named function.
func (hc *HashCollector) ObserveError(function string) {
	switch function {
	case FuncSHA3:
		atomic.AddUint64(&hc.sha3Calls, 1)
		atomic.AddUint64(&hc.sha3Errors, 1)
	case FuncSHA3Query:
		atomic.AddUint64(&hc.sha3QueryCalls, 1)
		atomic.AddUint64(&hc.sha3QueryErrors, 1)
	}
}

// Describe returns all descriptions of the collector.
func (hc *HashCollector) Describe(ch chan<- *prometheus.Desc) {
	seen := make(map[*prometheus.Desc]bool, len(hc.metrics))
	for _, i := range hc.metrics {
		if !seen[i.desc] {
			seen[i.desc] = true
			ch <- i.desc
		}
	}
}

// Collect returns the current state of all metrics of the collector.
func (hc *HashCollector) Collect(ch chan<- prometheus.Metric) {
	for _, i := range hc.metrics {
		ch <- prometheus.MustNewConstMetric(i.desc, i.valType, i.eval(hc), i.labels...)
	}
}

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
	"io"
	"sort"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"github.com/prometheus/common/version"

	"github.com/CovenantSQL/shathree/utils/log"
)

// Default is the collector the sqlite functions record into.
var Default = NewHashCollector()

// NewRegistry returns a registry holding the build info and hash collectors.
func NewRegistry(collectors ...prometheus.Collector) (registry *prometheus.Registry, err error) {
	registry = prometheus.NewRegistry()
	if err = registry.Register(version.NewCollector("shathree")); err != nil {
		err = errors.Wrap(err, "register version collector failed")
		return nil, err
	}
	for _, c := range collectors {
		if err = registry.Register(c); err != nil {
			err = errors.Wrap(err, "register collector failed")
			return nil, err
		}
	}
	return
}

// SimpleMetricMap is map from metric name to MetricFamily.
type SimpleMetricMap map[string]*dto.MetricFamily

// Gather collects the registry into a SimpleMetricMap.
func Gather(g prometheus.Gatherer) (mm SimpleMetricMap, err error) {
	mfs, err := g.Gather()
	if err != nil {
		err = errors.Wrap(err, "gathering metrics failed")
		return
	}
	mm = make(SimpleMetricMap, len(mfs))
	for _, mf := range mfs {
		mm[mf.GetName()] = mf
		log.Debugf("gathered metric: %v", mf.GetName())
	}
	return
}

// Value returns the value of the counter or gauge named name whose labels
// include all given label pairs. Labels are passed as name, value, ...
func (mm SimpleMetricMap) Value(name string, labels ...string) (val float64, ok bool) {
	mf, exists := mm[name]
	if !exists {
		return
	}
	for _, m := range mf.GetMetric() {
		if !matchLabels(m, labels) {
			continue
		}
		switch mf.GetType() {
		case dto.MetricType_GAUGE:
			return m.GetGauge().GetValue(), true
		case dto.MetricType_COUNTER:
			return m.GetCounter().GetValue(), true
		case dto.MetricType_UNTYPED:
			return m.GetUntyped().GetValue(), true
		}
	}
	return
}

func matchLabels(m *dto.Metric, labels []string) bool {
	for i := 0; i+1 < len(labels); i += 2 {
		found := false
		for _, lp := range m.GetLabel() {
			if lp.GetName() == labels[i] && lp.GetValue() == labels[i+1] {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// WriteText writes every metric family of g in the text exposition format,
// sorted by name.
func WriteText(w io.Writer, g prometheus.Gatherer) (err error) {
	mm, err := Gather(g)
	if err != nil {
		return
	}
	names := make([]string, 0, len(mm))
	for n := range mm {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		if _, err = expfmt.MetricFamilyToText(w, mm[n]); err != nil {
			err = errors.Wrapf(err, "write metric %s failed", n)
			return
		}
	}
	return
}

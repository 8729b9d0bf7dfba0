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

package utils

import (
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/pkg/errors"

	"github.com/CovenantSQL/shathree/utils/log"
)

var prof struct {
	cpu *os.File
	mem *os.File
}

// StartProfile initializes the CPU and memory profile, if specified.
func StartProfile(cpuprofile, memprofile string) (err error) {
	if cpuprofile != "" {
		var f *os.File
		if f, err = os.Create(cpuprofile); err != nil {
			log.WithField("file", cpuprofile).WithError(err).Error("failed to create CPU profile file")
			return errors.Wrap(err, "create CPU profile failed")
		}
		if err = pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return errors.Wrap(err, "start CPU profile failed")
		}
		log.WithField("file", cpuprofile).Info("writing CPU profiling to file")
		prof.cpu = f
	}

	if memprofile != "" {
		var f *os.File
		if f, err = os.Create(memprofile); err != nil {
			log.WithField("file", memprofile).WithError(err).Error("failed to create memory profile file")
			StopProfile()
			return errors.Wrap(err, "create memory profile failed")
		}
		log.WithField("file", memprofile).Info("writing memory profiling to file")
		prof.mem = f
		runtime.MemProfileRate = 4096
	}
	return
}

// StopProfile closes the CPU and memory profiles if they are running.
func StopProfile() {
	if prof.cpu != nil {
		pprof.StopCPUProfile()
		_ = prof.cpu.Close()
		prof.cpu = nil
		log.Info("CPU profiling stopped")
	}
	if prof.mem != nil {
		if err := pprof.WriteHeapProfile(prof.mem); err != nil {
			log.WithError(err).Error("write memory profile failed")
		}
		_ = prof.mem.Close()
		prof.mem = nil
		log.Info("memory profiling stopped")
	}
}

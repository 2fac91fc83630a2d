// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package snapshotter

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/NVIDIA/gpu-metrics-agent/pkg/collector"
	"github.com/NVIDIA/gpu-metrics-agent/pkg/measurement"
)

// NodeSnapshotter assembles a node Snapshot from the GPU, system and
// container collectors. It keeps no state between calls apart from the
// collectors themselves; every Measure returns a fresh document.
type NodeSnapshotter struct {
	// Factory is the collector factory to use. If nil, the default factory is used.
	Factory collector.Factory

	// Concurrent runs the collectors in parallel instead of one after another.
	Concurrent bool

	// Now returns the capture instant. If nil, time.Now is used.
	Now func() time.Time

	once      sync.Once
	gpu       collector.GPUCollector
	system    collector.SystemCollector
	container collector.ContainerCollector
}

func (n *NodeSnapshotter) init() {
	n.once.Do(func() {
		if n.Factory == nil {
			n.Factory = collector.NewDefaultFactory()
		}
		if n.Now == nil {
			n.Now = time.Now
		}
		n.gpu = n.Factory.CreateGPUCollector()
		n.system = n.Factory.CreateSystemCollector()
		n.container = n.Factory.CreateContainerCollector()
	})
}

// Measure collects all fragments and returns the snapshot. Only a system
// collector failure produces an error; GPU and container problems are
// absorbed by their collectors.
func (n *NodeSnapshotter) Measure(ctx context.Context) (*measurement.Snapshot, error) {
	n.init()

	slog.Debug("starting node snapshot", "concurrent", n.Concurrent)

	start := time.Now()
	defer func() {
		snapshotCollectionDuration.Observe(time.Since(start).Seconds())
	}()

	snap := &measurement.Snapshot{
		Timestamp: measurement.NewTimestamp(n.Now()),
	}

	var err error
	if n.Concurrent {
		err = n.measureConcurrent(ctx, snap)
	} else {
		err = n.measureSequential(ctx, snap)
	}
	if err != nil {
		snapshotCollectionTotal.WithLabelValues("error").Inc()
		slog.Error("failed to collect snapshot", slog.String("error", err.Error()))
		return nil, err
	}

	snapshotCollectionTotal.WithLabelValues("success").Inc()
	snapshotGPUCount.Set(float64(len(snap.GPUs)))

	slog.Debug("snapshot collection complete",
		slog.Int("gpus", len(snap.GPUs)),
		slog.Int("containers", snap.Containers.Running))

	return snap, nil
}

func (n *NodeSnapshotter) measureSequential(ctx context.Context, snap *measurement.Snapshot) error {
	sys, err := n.collectSystem(ctx)
	if err != nil {
		return err
	}
	snap.System = sys
	snap.GPUs = n.collectGPU(ctx)
	snap.Containers = n.collectContainers(ctx)
	return nil
}

// measureConcurrent runs each collector in its own goroutine. Each one
// writes a distinct field of snap, so no lock is needed.
func (n *NodeSnapshotter) measureConcurrent(ctx context.Context, snap *measurement.Snapshot) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		sys, err := n.collectSystem(gctx)
		if err != nil {
			return err
		}
		snap.System = sys
		return nil
	})

	g.Go(func() error {
		snap.GPUs = n.collectGPU(gctx)
		return nil
	})

	g.Go(func() error {
		snap.Containers = n.collectContainers(gctx)
		return nil
	})

	return g.Wait()
}

func (n *NodeSnapshotter) collectSystem(ctx context.Context) (measurement.SystemMetrics, error) {
	defer observeCollector("system", time.Now())
	sys, err := n.system.Collect(ctx)
	if err != nil {
		return measurement.SystemMetrics{}, fmt.Errorf("failed to collect system metrics: %w", err)
	}
	return sys, nil
}

func (n *NodeSnapshotter) collectGPU(ctx context.Context) []measurement.GPUMetric {
	defer observeCollector("gpu", time.Now())
	return n.gpu.Collect(ctx)
}

func (n *NodeSnapshotter) collectContainers(ctx context.Context) measurement.ContainerMetrics {
	defer observeCollector("container", time.Now())
	return n.container.Collect(ctx)
}

func observeCollector(name string, start time.Time) {
	snapshotCollectorDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
}

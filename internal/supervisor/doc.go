// Bookwise - Semantic Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

/*
Package supervisor runs the long-lived parts of Bookwise under suture v4.

# Overview

	RootSupervisor ("bookwise")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── CacheGCService (when embedding.cache_dir is set)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

The catalog and its embedding matrix are built before the tree starts and
are immutable afterwards, so nothing in the tree owns request state. A
crashed HTTP listener is restarted with backoff; a failing cache collection
never touches the API layer.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.Timeout))
	errCh := tree.ServeBackground(ctx)

# Configuration

TreeConfig zero values fall back to suture's defaults:
  - FailureThreshold: 5 failures
  - FailureDecay: 30 seconds
  - FailureBackoff: 15 seconds
  - ShutdownTimeout: 10 seconds

# Logging

Supervisor events go through sutureslog. The slog.Logger handed to
NewSupervisorTree is normally logging.NewSlogLogger, which writes into the
same zerolog stream as the rest of the process.

# Debugging Shutdown

UnstoppedServiceReport lists services that ignored cancellation for longer
than ShutdownTimeout.
*/
package supervisor

// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

/*
Package supervisor runs Foodgram's long-lived goroutines under a suture v4
supervision tree.

# Tree Layout

	foodgram (root)
	├── maintenance-layer
	│   ├── token-janitor        (purges expired and revoked auth tokens)
	│   ├── login-rate-limiter   (drops idle per-IP limiters)
	│   ├── cache:catalog        (sweeps expired tag and ingredient entries)
	│   └── cache:authz          (sweeps expired RBAC decisions)
	└── api-layer
	    └── http-server

Each layer is its own supervisor, so repeated failures of a housekeeping
service trip backoff for that layer only.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
	    ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
	    return err
	}
	tree.AddMaintenanceService(services.NewTokenJanitor(db, time.Hour))
	tree.AddMaintenanceService(loginLimiter)
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}

Supervisor events (restarts, backoff, stop timeouts) are logged through
sutureslog, which the logging package bridges onto zerolog.
*/
package supervisor

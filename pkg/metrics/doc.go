// Package metrics exports view engine activity as Prometheus metrics.
//
// Register an Observer with an engine to count lifecycle callbacks and list
// reconciliations:
//
//	reg := prometheus.NewRegistry()
//	obs := metrics.New(metrics.WithRegistry(reg), metrics.WithNamespace("app"))
//	engine := view.New(view.WithObserver(obs))
//
// Metrics collected:
//   - viewtree_lifecycle_calls_total: Counter of callbacks by hook and view type
//   - viewtree_reconciles_total: Counter of list reconciliation passes
//   - viewtree_reconcile_duration_seconds: Histogram of reconciliation time
//   - viewtree_list_size: Histogram of list sizes after reconciliation
//   - viewtree_views_created_total: Counter of item views created by lists
//   - viewtree_views_removed_total: Counter of item views destroyed by lists
package metrics

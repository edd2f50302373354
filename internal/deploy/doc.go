// Package deploy implements the deployment orchestration core: prerequisite
// checking, idempotent namespace reconciliation, dependency-ordered resource
// application, readiness-gated rollout waiting and reverse-order uninstall.
//
// The package never talks to a concrete cluster itself; all mutations go
// through the Cluster interface, implemented by internal/k8s and faked in
// tests. Each run is stateless with respect to prior runs; the cluster is
// the only source of truth.
package deploy

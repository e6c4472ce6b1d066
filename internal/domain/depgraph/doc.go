// Package depgraph detects circular dependencies among the tasks of a single
// request. It builds a directed graph from task IDs to the IDs they depend on
// and reports one concrete cycle when any exists.
//
// Nodes are visited in input order, so the reported cycle is stable for a
// given input. When several cycles exist no guarantee is made about which
// one is returned.
package depgraph

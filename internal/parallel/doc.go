// Package parallel provides the bounded worker pools used for fan-out/fan-in
// computation, a scoped acquire/release helper, and an order-preserving Map.
//
// A Pool is owned by exactly one call: it is created by WithPool, used to run
// one batch, and shut down before WithPool returns.
package parallel

// Package rtutil collects small cross-cutting helpers consumed by the
// runtime core: stack-trace capture for panic/abort paths and a generic
// lazy-singleton.
package rtutil

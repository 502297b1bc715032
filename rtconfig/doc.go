// Package rtconfig is a process-wide configuration registry: named,
// typed variables with a default value, loadable in bulk from YAML, with
// change listeners invoked whenever a load (or an explicit Set) alters a
// variable's value. It is grounded on the original config.cpp/config.h's
// ConfigVarBase/ConfigVar<T>/Config::LoadFromYaml, generalized from C++
// templates to a Go generic Var[T] plus a type-erased registry.
package rtconfig

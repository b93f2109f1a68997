package state

import "fmt"

// Key construction is deterministic by design: render, validate, and
// serialize never hand values to each other — they only agree on the same
// derivation from (namespace, instance id, field suffix[, index]). The
// separator is reserved; namespaces and instance ids must not contain it.
const keySep = "__"

// NsKey builds the store key for a plain field inside a namespace.
func NsKey(ns, fieldID string) string {
	return ns + keySep + fieldID
}

// InstKey builds the store key for a component-owned field. The fixed-arity
// join keeps distinct (instanceID, suffix) pairs from colliding within one
// namespace.
func InstKey(ns, instanceID, suffix string) string {
	return NsKey(ns, instanceID+keySep+suffix)
}

// RepeatKey builds the store key for the i-th record of a repeater field.
// Index is the dense zero-based position local to one instance id.
func RepeatKey(ns, instanceID, suffix string, i int) string {
	return InstKey(ns, instanceID, fmt.Sprintf("%s_%d", suffix, i))
}

// NamespacePrefix returns the prefix shared by every key of a namespace,
// suitable for ClearPrefix.
func NamespacePrefix(ns string) string {
	return ns + keySep
}

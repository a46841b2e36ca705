package engine

// RootID is the synthetic id used for the top level of the tree in cache
// keys, fetch timestamps, and error state. Node IDs never collide with it
// because providers own their id space and the controller namespaces cache
// keys with a prefix.
const RootID = "root"

// itemsKeyPrefix namespaces children-list entries in the cache.
const itemsKeyPrefix = "items-"

// ItemsKey derives the deterministic cache key for a parent's children list.
// An empty parentID maps to the synthetic root key.
func ItemsKey(parentID string) string {
	if parentID == "" {
		return itemsKeyPrefix + RootID
	}
	return itemsKeyPrefix + parentID
}

// stateKey maps a parentID to the key used in fetch timestamps and error
// state, substituting RootID for the empty root id.
func stateKey(parentID string) string {
	if parentID == "" {
		return RootID
	}
	return parentID
}

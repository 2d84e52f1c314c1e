// Package layout produces the storage-layout report for a compiled
// contract: for every declared state variable, its storage slot, byte
// offset within the slot, canonical type name and storage size, serialized
// as a JSON array.
//
// The generator is a plain traversal over already-compiled declaration
// metadata. It performs no filesystem access and does not interact with
// the resolution service.
package layout

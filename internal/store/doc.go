// Package store maintains the client-side product collection and keeps it
// synchronized with the inventory backend.
//
// The Store holds three pieces of state: the product collection, a separate
// "current detail" slot for edit flows, and the statistics that accompany a
// list response. Statistics are adopted from the server, which is
// authoritative for aggregates; they are never recomputed from local
// mutations.
//
// # Update policy
//
// Every mutation is confirm-then-apply: create prepends, update replaces in
// place and delete removes — but only after the server acknowledged the
// operation. A failed call leaves the collection exactly as it was. This
// trades a little latency for the guarantee that local state never diverges
// from the server on failure.
//
// # Preconditions
//
// All operations require an authenticated session handle issued by the
// session manager; a nil handle is rejected before anything else happens.
package store

// Package codec converts documents and values to and from plain records.
//
// A node is a record with a kind discriminator:
//
//	{"kind":"document","key":"d","data":{},"children":[...]}
//	{"kind":"element","key":"p","type":"paragraph","inline":false,"void":false,"data":{},"children":[...]}
//	{"kind":"text","key":"t","text":"Hello","marks":[{"key":"bold","properties":{}}]}
//
// A point is {"key","offset"}; its path is a cache and is never written.
// A range is {"anchor","focus"} plus "marks" when the range carries a
// mark override. A value is {"document","selection","annotations"}, with
// a null selection when unset.
//
// JSON is the native format. YAML is accepted and produced by bridging
// through the same records.
package codec

// Package io provides JSON import and export for dependency graphs.
//
// # JSON Format
//
// A graph document lists every package with its dependencies in
// declaration order:
//
//	{
//	  "nodes": [
//	    {"id": "app", "deps": ["lib-a", "lib-b"]},
//	    {"id": "lib-a", "deps": ["lib-b"]},
//	    {"id": "lib-b"}
//	  ]
//	}
//
// An optional "edges" array of {"from", "to"} objects is also accepted and
// appended to the dependency list of "from". Edge lists produced by other
// graph tools can therefore be loaded unchanged.
//
// Node order in the document becomes the graph's node order, so a document
// written with [WriteJSON] and read back with [ReadJSON] yields the same
// traversal and load order.
package io

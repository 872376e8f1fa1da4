// Package highlight tracks which nodes and edges of a radial layout are
// emphasized and derives their visual decoration.
//
// A [Tracker] is a three-state machine:
//
//	Idle ──Click(primary)──▶ SingleSelected
//	  ▲                           │
//	  │        DoubleClick(any)   ▼
//	  └──Clear()── ConnectedSubgraph (edge filter on)
//
// Every interaction replaces the highlight [Set] wholesale; sets are never
// merged. Decoration is a pure function of the set and the filter flag, see
// [DecorateEdge] and [DecorateNode], so renderers never have to snapshot or
// restore styles.
package highlight

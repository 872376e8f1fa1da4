// Package geom provides the planar geometry used to route edges between
// rectangular nodes.
//
// Coordinates follow screen conventions: the origin is the top-left corner
// and y grows downwards. Nodes are axis-aligned rectangles described by their
// top-left corner and size ([Rect]).
//
// # Angles and Sides
//
// [Angle] returns the compass angle of the vector between two points,
// normalized to [0, 360). [Classify] maps such an angle to one of four
// [Side] values using half-open 90° intervals:
//
//	[45, 135)  → SideTop
//	[135, 225) → SideLeft
//	[225, 315) → SideBottom
//	otherwise  → SideRight
//
// # Boundary Intersection
//
// [Intersection] computes where the line between two node centers leaves the
// first node. It uses a diamond/ellipse blend (an L1 re-projection of the
// direction normalized by the node's half-extents) rather than exact
// rectangle clipping; callers rely on the approximation being reproducible,
// not exact. [ResolveSide] then infers which side of the node a boundary
// point lies on, with a one pixel tolerance and a Left, Right, Top, Bottom
// tie-break order.
//
// Points are gonum r2 vectors so callers can use the r2 arithmetic helpers
// directly.
package geom

// Package route turns derived edges into drawable paths that start and end on
// node boundaries instead of node centers.
//
// A [Router] picks the attachment side of each endpoint with one of three
// modes and then draws the connection with one of three shapes:
//
//   - [ModeFloating] intersects each box with the line toward the other
//     box's center and classifies the hit with [geom.ResolveSide].
//   - [ModeAngle] classifies the center-to-center angle with [geom.Classify]
//     and uses the opposite direction for the target.
//   - [ModeDominant] compares |dx| and |dy| and attaches to the facing sides.
//
// Endpoints that are not present in the [Lookup] are not an error: Route
// returns false and the caller skips that edge.
package route

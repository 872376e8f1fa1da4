// Package radial places entities on concentric elliptical rings.
//
// The input is an ordered list of [Record] values, each naming a primary
// entity and the entities it references. [NewMembership] inverts that list
// into a referrer index, which drives tier classification:
//
//   - primary entities are always [TierPrimary] (the middle ring),
//   - a referenced entity shared by more than one primary is [TierCore]
//     (the outer ring),
//   - a referenced entity used by exactly one primary is [TierSecondary]
//     (the optional inner ring).
//
// # Slots
//
// Within a tier of n entities, entity i sits at angle -90° + i·360°/n on the
// tier's ellipse, so the first entity is at the top and the rest follow
// clockwise in screen space. Radii are fractions of the outer radius: core
// 1.0, primary 0.7, and secondary 0.4 when shown. While the secondary tier is
// hidden its radius matches the primary tier so toggling it does not move
// anything else.
//
// # Edges
//
// One [Edge] is derived for every (primary, reference) pair whose target is
// placed in the layout: core references always, secondary references only
// while the secondary tier is shown. Edge IDs are "<primary>-<reference>".
//
// # Recomputation
//
// A [Layout] is immutable. [Engine] owns the inputs and rebuilds the whole
// layout on [Engine.Resize] and [Engine.SetSecondary]; nothing is adjusted
// incrementally, and identical inputs always produce identical positions.
package radial

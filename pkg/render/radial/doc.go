// Package radial draws radial scenes as SVG or PNG.
//
// Both sinks consume a [scene.Scene] and draw it the same way: a dotted
// grid background, dashed edges in scene order (core edges last, so they
// sit on top) and rounded node boxes with centred labels. Highlighted nodes
// get a border and a soft glow.
//
//	s := scene.Build(layout, tracker, route.DefaultRouter())
//	svg := radial.RenderSVG(s, radial.WithInteraction())
//	png, err := radial.RenderPNG(s, radial.WithScale(2))
//
// SVG output is produced with [github.com/ajstarks/svgo]; PNG output is
// rasterised in-process with [git.sr.ht/~sbinet/gg] and a bitmap font from
// golang.org/x/image, so neither sink needs external tools.
package radial

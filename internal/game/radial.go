package game

// radialShaderSrc fills a radial gradient between Radii.x and Radii.y
// around Center. Colours are premultiplied. When Clip.z > 0 pixels outside
// the circle (Clip.x, Clip.y, Clip.z) are discarded.
const radialShaderSrc = `//kage:unit pixels

package main

var Center vec2
var Radii vec2
var Inner vec4
var Outer vec4
var Clip vec3

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	if Clip.z > 0 && distance(dstPos.xy, Clip.xy) > Clip.z {
		discard()
	}
	d := distance(dstPos.xy, Center)
	t := clamp((d-Radii.x)/max(Radii.y-Radii.x, 0.0001), 0, 1)
	return mix(Inner, Outer, t)
}
`

package shade

import "orrery/engine/linear"

// The material functions below compose the shared noise primitives
// into stylized planetary surfaces. Each one shifts its sampling
// domain by a material-specific multiple of the seed offset, so no two
// seeds produce the same face for the same fragment.

func dotv(p, v linear.Vec3) float32 { return p.Dot(v) }

// lambert returns the clamped diffuse term for the context light.
func lambert(n linear.Vec3, ctx *Context) float32 {
	return maxf(0, n.Dot(ctx.LightDir))
}

// rim returns a silhouette term against the view axis (+Z).
func rim(n linear.Vec3, sharp float32) float32 {
	return powf(clamp01(1-n.Z), sharp)
}

// shadeGaseous renders banded clouds: a latitude coordinate warped by
// three skewed sine fields, two band palettes and a slow alternation
// between them.
func shadeGaseous(f Fragment, ctx *Context) Color {
	n := f.Normal.Norm()
	p := f.Pos.Add(ctx.offset.Scale(7.7))

	band := n.Y * 14
	band += sinf(dotv(p, nv1)*0.9)*0.55 +
		sinf(dotv(p, nv2)*1.6)*0.35 +
		sinf(dotv(p, nv3)*2.3)*0.18
	bandVal := powf(sinf(band)*0.5+0.5, 1.2)

	streak := absf(sinf(dotv(p, nv2)*6))*0.25 + absf(sinf(dotv(p, nv3)*8.5))*0.15

	cream := Color{0.92, 0.88, 0.80}
	tan := Color{0.78, 0.66, 0.50}
	ochre := Color{0.76, 0.58, 0.30}
	blueGray := Color{0.65, 0.72, 0.80}

	familyA := cream.Mix(tan, bandVal)
	familyB := ochre.Mix(blueGray, bandVal)
	alt := clamp01(sinf(dotv(p, nv1)*0.25+n.Y*0.6)*0.5 + 0.5)
	mix := clamp01(alt*0.6 + 0.2)

	c := familyA.Mix(familyB, mix)
	c = c.Scale(1 + 0.18*streak)

	turb := absf(sinf(dotv(p, nv1)*3.1))*0.12 + absf(sinf(dotv(p, nv2)*4.7))*0.08
	c = c.Scale(1 + turb)

	l := lambert(n, ctx)
	spec := powf(l, 8) * 0.05
	c = c.Scale((0.35 + 0.7*l + spec) * ctx.LightIntensity)

	return c.Add(Color{0.12, 0.18, 0.24}.Scale(rim(n, 2.2) * 0.18))
}

// shadeGiant is the outer gas giant: fewer, wider bands with a storm
// eye carved out of an fbm field and a colder palette.
func shadeGiant(f Fragment, ctx *Context) Color {
	n := f.Normal.Norm()
	p := f.Pos.Add(ctx.offset.Scale(9.4))

	band := n.Y * 8
	band += sinf(dotv(p, nv2)*0.7)*0.6 + sinf(dotv(p, nv3)*1.3)*0.3
	bandVal := powf(sinf(band)*0.5+0.5, 1.4)

	slate := Color{0.45, 0.52, 0.66}
	sand := Color{0.82, 0.74, 0.58}
	c := slate.Mix(sand, bandVal)

	storm := fbm(p.Scale(0.35), 3)
	eye := smoothstepRange(storm, 0.62, 0.78)
	c = c.Mix(Color{0.95, 0.62, 0.40}, eye*0.6)

	swirl := absf(sinf(dotv(p, nv1)*2.4 + storm*5))
	c = c.Scale(1 - 0.12*powf(swirl, 3))

	l := lambert(n, ctx)
	c = c.Scale((0.3 + 0.75*l) * ctx.LightIntensity)
	return c.Add(Color{0.15, 0.17, 0.25}.Scale(rim(n, 2.5) * 0.2))
}

// shadeRocky layers strata, a crack network, dust accumulation and
// sparse craters over a basalt/regolith/iron palette.
func shadeRocky(f Fragment, ctx *Context) Color {
	n := f.Normal.Norm()
	seed := ctx.offset
	p := f.Pos.Add(seed.Scale(12.3))

	f1 := sinf(dotv(p, nv1) * 0.25)
	f2 := sinf(dotv(p, nv2) * 0.55)
	f3 := sinf(dotv(p, nv3) * 1.10)
	noiseBase := (0.55*f1+0.3*f2+0.15*f3)*0.5 + 0.5

	f4 := absf(sinf(dotv(p, nv1) * 2.0))
	f5 := absf(sinf(dotv(p, nv2) * 3.3))
	f6 := absf(sinf(dotv(p, nv3) * 5.1))
	height := clamp01(0.5*noiseBase + 0.3*f4 + 0.2*(0.5*f5+0.5*f6))

	sdir := nv1.Add(nv2.Scale(0.3)).Add(nv3.Scale(0.2)).Add(seed.Scale(0.2)).Norm()
	strata := powf(absf(sinf(dotv(p, sdir)*0.6)), 3)

	crackA := absf(sinf(dotv(p, nv1)*6.5) * sinf(dotv(p, nv2)*6.2))
	crackB := absf(sinf(dotv(p, nv2)*7.1) * sinf(dotv(p, nv3)*7.4))
	cracks := clamp01(powf(minf(crackA, crackB), 12))

	basalt := Color{0.12, 0.10, 0.09}
	regolith := Color{0.38, 0.31, 0.22}
	ironOxide := Color{0.55, 0.32, 0.15}

	up := f.Pos.Norm()
	if up == (linear.Vec3{}) {
		up = linear.V3(0, 1, 0)
	}
	slope := clamp01(1 - n.Dot(up))
	dust := clamp01(height*0.7 + strata*0.5 + (1-slope)*0.6)
	iron := clamp01((noiseBase - 0.6) / 0.25)

	c := basalt.Mix(regolith, dust).Mix(ironOxide, iron)
	c = c.Scale(1 - cracks*0.6)

	micro := absf(sinf(dotv(p, nv1)*9)*cosf(dotv(p, nv2)*11)) * 0.2
	c = c.Scale(0.85 + micro)
	c = c.Scale(1 - 0.35*clamp01(1-height))

	c = applyCrater(c, f.Pos, p, n, seed)

	l := lambert(n, ctx)
	spec := powf(l, 12) * 0.15
	return c.Scale((0.22 + 0.95*l + spec) * ctx.LightIntensity)
}

// applyCrater darkens a bowl and brightens a rim where the sparse
// crater cell hash places one near the fragment.
func applyCrater(c Color, pos, p, n linear.Vec3, seed linear.Vec3) Color {
	const cscale = 0.06
	cell := linear.V3(
		floorf(p.X*cscale),
		floorf(p.Y*cscale),
		floorf(p.Z*cscale),
	)
	h1 := hash3(cell.X+seed.X*97, cell.Y, cell.Z)
	if h1 <= 0.88 {
		return c
	}
	h2 := hash3(cell.X, cell.Y+seed.Y*73, cell.Z)
	h3 := hash3(cell.X, cell.Y, cell.Z+seed.Z*59)

	off := linear.V3(h1-0.5, h2-0.5, h3-0.5).Scale(1 / cscale)
	center := cell.Scale(1 / cscale).Add(off)
	pn := pos.Norm()
	cn := center.Norm()
	if pn == (linear.Vec3{}) || cn == (linear.Vec3{}) {
		pn, cn = n, n
	}
	ang := acosf(clampf(pn.Dot(cn), -1, 1))
	w := 0.045 + h2*0.02
	t := clamp01(1 - ang/w)
	bowl := t * t
	rimT := powf(1-clamp01(absf(ang-w*0.85)/(w*0.25)), 4)
	c = c.Scale(1 - bowl*0.22)
	return c.Add(Color{0.25, 0.22, 0.18}.Scale(rimT * 0.08))
}

// shadeStellar is the emissive sun: warm base, isotropic turbulence,
// granulation, sunspots and a rim glow. It ignores the scene light
// (the sun lights itself).
func shadeStellar(f Fragment, ctx *Context) Color {
	n := f.Normal.Norm()
	p := f.Pos.Add(ctx.offset.Scale(8.1))

	base := Color{1.0, 0.65, 0.18}
	c := base.Scale(0.85)

	turb := clamp01(absf(sinf(dotv(p, nv1)*0.9))*0.5 +
		absf(sinf(dotv(p, nv2)*1.6))*0.3 +
		absf(sinf(dotv(p, nv3)*2.3))*0.2)
	c = c.Add(Color{1.0, 0.8, 0.45}.Scale(turb * 0.25))

	flicker := maxf(0, sinf(p.X*0.12)*cosf(p.Y*0.13)*sinf(p.Z*0.11)*0.10+0.10)
	c = c.Add(base.Scale(flicker))

	g1 := absf(sinf(dotv(p, nv1) * 0.8))
	g2 := absf(sinf(dotv(p, nv2) * 1.2))
	g3 := absf(sinf(dotv(p, nv3) * 1.6))
	gran := clamp01(0.5*g1 + 0.3*g2 + 0.2*g3)
	const granAmp = 0.25
	c = c.Scale((1 - granAmp*0.6) + granAmp*gran)

	nLow := (sinf(p.X*0.08)*cosf(p.Y*0.075)*sinf(p.Z*0.065) + 1) * 0.5
	spots := powf(smoothstepRange(0.50-nLow, 0, 0.15), 2.2)
	att := maxf(0.55, 1-(spots*0.18+powf(spots, 1.6)*0.18))
	c = c.Scale(att)

	return c.Add(Color{1.0, 0.6, 0.25}.Scale(rim(n, 3) * 0.2))
}

// shadeCheese: creamy base, porous holes with bright rims, marbling
// veins, equator cracks and aged rind spots.
func shadeCheese(f Fragment, ctx *Context) Color {
	n := f.Normal.Norm()
	p := f.Pos.Add(ctx.offset.Scale(5.3))

	core := Color{1.0, 0.92, 0.55}
	rind := Color{0.95, 0.78, 0.38}
	vertical := clamp01(n.Y*0.5 + 0.5)
	c := core.Scale(1 - vertical*0.4).Add(rind.Scale(vertical * 0.4))

	holeNoise := absf(sinf(p.X*3.4) * cosf(p.Y*4.1) * sinf(p.Z*3.8))
	hole := powf(clamp01((holeNoise-0.35)/0.25), 2.5)
	cavity := Color{0.32, 0.24, 0.14}
	c = c.Scale(1 - hole*0.45).Add(cavity.Scale(hole * 0.8))
	holeRim := clamp01(hole*1.4) - powf(hole, 1.4)
	c = c.Add(Color{1.05, 0.95, 0.68}.Scale(holeRim * 0.35))

	vein := powf(absf(sinf(p.X*1.7+p.Y*0.9)*cosf(p.Z*1.3))*0.8, 3.5)
	c = c.Scale(1 - vein*0.25).Add(Color{1.05, 0.95, 0.65}.Scale(vein * 0.25))

	equator := powf(absf(sinf(f.Pos.Y*4.5)), 6)
	crackNoise := powf(absf(sinf(p.X*5.2)*sinf(p.Z*5.9)), 3)
	crack := equator * crackNoise * 0.5
	c = c.Add(Color{-crack * 0.3, -crack * 0.22, -crack * 0.18})

	spot := absf(sinf(p.X*2.3)+cosf(p.Z*2.1)) * 0.5
	spotMask := powf(clamp01((spot-0.55)/0.25), 2)
	c = c.Scale(1 - spotMask*0.15).Add(Color{0.6, 0.45, 0.25}.Scale(spotMask * 0.15))

	bubble := powf(sinf(p.X*1.6+p.Y*0.9)*0.5+0.5, 6)
	c = c.Add(Color{0.08, 0.07, 0.03}.Scale(bubble))

	speckle := (absf(sinf(p.X*7)) + absf(cosf(p.Z*6))) * 0.12
	amt := speckle * vertical * 0.25
	c = c.Add(Color{-amt, -amt, -amt * 0.7})

	l := lambert(n, ctx)
	spec := powf(l, 20) * 0.18
	c = c.Scale((0.35 + 0.9*l) * ctx.LightIntensity)
	return c.Add(Color{0.45, 0.38, 0.25}.Scale(spec))
}

// shadeCat: fur gradient belly-to-back, longitude stripes, whisker
// arcs and darkened ear tips at the poles.
func shadeCat(f Fragment, ctx *Context) Color {
	n := f.Normal.Norm()
	p := f.Pos.Add(ctx.offset.Scale(4.7))

	belly := Color{0.98, 0.92, 0.85}
	back := Color{0.55, 0.38, 0.25}
	vertical := clamp01(n.Y*0.5 + 0.5)
	c := back.Scale(vertical).Add(belly.Scale(1 - vertical))

	stripe := clamp01(powf(absf(sinf(p.Z*2.6+sinf(p.X*0.4))), 6))
	c = c.Mix(Color{0.3, 0.18, 0.12}, stripe*0.6)

	fur := (sinf(p.X*5.1)*cosf(p.Y*6.3)*sinf(p.Z*5.6) + 1) * 0.5
	fv := (fur - 0.5) * 0.2
	c = c.Add(Color{fv * 0.7, fv * 0.5, fv * 0.4})

	faceLat := sinf(f.Pos.Y * 3)
	whisker := powf(absf(sinf(f.Pos.X*1.4+faceLat*0.8)*cosf(f.Pos.Z*0.3)), 12)
	c = c.Mix(Color{1.0, 0.95, 0.88}, whisker*0.25)

	pole := powf(absf(n.Y), 3)
	c = c.Mix(Color{0.25, 0.16, 0.12}, pole*0.5)

	l := lambert(n, ctx)
	spec := powf(l, 25) * 0.12
	c = c.Scale((0.3 + 0.9*l) * ctx.LightIntensity)
	return c.Add(Color{1.0, 0.95, 0.9}.Scale(spec))
}

// shadeBubblegum: magenta-to-cyan gradient, polar swirl bands, bubble
// speckles and an iridescent view-dependent sheen.
func shadeBubblegum(f Fragment, ctx *Context) Color {
	n := f.Normal.Norm()
	p := f.Pos.Add(ctx.offset.Scale(3.1))

	top := Color{0.8, 0.2, 0.85}
	bottom := Color{0.1, 0.8, 0.9}
	vertical := clamp01(n.Y*0.5 + 0.5)
	c := top.Scale(vertical).Add(bottom.Scale(1 - vertical))

	swirl := sinf(p.Y*1.4 + atan2f(p.X, p.Z)*3)
	swirlMask := powf(swirl*0.5+0.5, 2)
	c = c.Mix(Color{1.1, 0.45, 0.95}, swirlMask*0.35)

	bubbleNoise := absf(sinf(p.X*5) * cosf(p.Y*6.3) * sinf(p.Z*7.1))
	bubbles := powf(clamp01((bubbleNoise-0.6)/0.25), 3.2)
	c = c.Scale(1 - bubbles*0.4).Add(Color{1.25, 1.18, 0.95}.Scale(bubbles * 0.6))

	c = c.Add(Color{0.35, 0.25, 0.65}.Scale(rim(n, 2.5) * 0.5))

	l := lambert(n, ctx)
	spec := powf(l, 40) * 0.4
	c = c.Scale((0.25 + 0.95*l) * ctx.LightIntensity)
	return c.Add(Color{1.0, 0.9, 0.95}.Scale(spec))
}

// shadeIcy: glacier gradient, frozen plates, crevasses, frost sparkles
// and a cold rim glow.
func shadeIcy(f Fragment, ctx *Context) Color {
	n := f.Normal.Norm()
	p := f.Pos.Add(ctx.offset.Scale(6.2))

	pole := absf(n.Y)
	shallow := Color{0.76, 0.92, 1.0}
	deep := Color{0.25, 0.6, 0.85}
	c := shallow.Scale(pole).Add(deep.Scale(1 - pole))

	plate := absf(sinf(p.X*1.3) * cosf(p.Z*1.6))
	plateMask := powf(plate*0.8, 2.5)
	c = c.Scale(1 - plateMask*0.4).Add(Color{0.9, 0.98, 1.08}.Scale(plateMask * 0.4))

	crackNoise := absf(sinf(p.X*4.2) * cosf(p.Y*3.6))
	crack := powf(clamp01((crackNoise-0.55)/0.2), 3)
	c = c.Add(Color{-crack * 0.25, -crack * 0.3, -crack * 0.35})

	sparkle := powf(absf(sinf(p.X*8.5)*cosf(p.Y*9.1)*sinf(p.Z*7.9)), 12)
	c = c.Add(Color{0.4, 0.5, 0.6}.Scale(sparkle * 0.4))

	l := lambert(n, ctx)
	spec := powf(l, 50) * 0.35
	c = c.Scale((0.28 + 0.95*l) * ctx.LightIntensity)
	c = c.Add(Color{0.8, 0.9, 1.0}.Scale(spec))
	return c.Add(Color{0.3, 0.55, 0.85}.Scale(rim(n, 2.8) * 0.3))
}

// shadeHull is the flat ship/HUD material. Deliberately seed-invariant
// and mostly emissive so the overlay stays readable.
func shadeHull(f Fragment, ctx *Context) Color {
	n := f.Normal.Norm()
	base := Color{0.78, 0.80, 0.86}
	l := lambert(n, ctx)
	c := base.Scale(0.45 + 0.65*l*ctx.LightIntensity)
	return c.Add(Color{0.2, 0.5, 0.8}.Scale(rim(n, 2) * 0.35))
}

// shadeFlash is the warp-charge material: an emissive cyan swirl that
// breathes with the context clock.
func shadeFlash(f Fragment, ctx *Context) Color {
	n := f.Normal.Norm()
	p := f.Pos.Add(ctx.offset.Scale(2.2))
	pulse := sinf(ctx.Time*9)*0.5 + 0.5
	swirl := absf(sinf(dotv(p, nv1)*3 + ctx.Time*4))
	c := Color{0.25, 0.7, 0.95}.Scale(0.6 + 0.4*pulse)
	c = c.Add(Color{0.9, 0.95, 1.0}.Scale(powf(swirl, 5) * 0.6))
	return c.Add(Color{0.3, 0.8, 1.0}.Scale(rim(n, 1.8) * 0.5))
}

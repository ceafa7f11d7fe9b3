// Package chime is a layer compositing and animation scheduling core for
// watch-style apps: a small fixed framebuffer, a handful of buttons, and a
// single-threaded main loop.
//
// Chime provides the layer tree, dirty tracking, software compositor,
// animation engine, click routing, and window stack that every non-trivial
// watch app needs. Rendering is pure software into a [GBitmap]; presenting
// the framebuffer on an actual display is the job of a driver (see the
// display subpackage for an [Ebitengine] one).
//
// # Quick start
//
// Create an [App], push a [Window], and drive [App.Tick] from your loop:
//
//	app, _ := chime.New(chime.AppConfig{})
//	win := chime.NewWindow()
//	win.RootLayer().SetRenderFunc(func(l *chime.Layer, g *chime.GContext) {
//		g.SetFillColor(chime.GColorBlack)
//		g.FillCircle(l.Bounds().Center(), 20)
//	})
//	app.WindowStack().Push(win)
//	for !app.Exited() {
//		app.Tick(time.Now())
//	}
//
// # Layer tree
//
// Every visual element is a [Layer]. Layers form a tree rooted at each
// window's [Window.RootLayer]. A layer's frame places it in its parent's
// coordinate space; its bounds define its own. Painting a layer marks it
// dirty with [Layer.MarkDirty], and the compositor repaints on the next
// tick.
//
// # Animations
//
// An [Animation] drives an [AnimationImplementation] from a normalized
// progress value through an easing curve, with optional delay, play count,
// and reversal. [NewSequence] and [NewSpawn] compose animations serially
// and in parallel. Property helpers such as [NewGRectPropertyAnimation]
// and [NewLayerFrameAnimation] cover the common cases. Curves beyond the
// built-ins come from [gween]'s ease functions via [CurveFromEase].
//
// # Input
//
// Windows subscribe to button clicks through a [ClickConfigProvider]:
// single, repeating, multi, long, and raw click patterns per button. The
// back button pops the window stack unless the window overrides it.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package chime

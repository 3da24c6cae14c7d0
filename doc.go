// Package mazewalk is a small maze micro-game meant to be embedded in a page
// or a terminal: the player walks from the bottom-left corner to the center
// of a procedurally generated maze, and solving it navigates somewhere else.
//
// The package holds the frontend-independent engine. Rendering and input
// live in the [github.com/phanxgames/mazewalk/canvas] (Ebitengine) and
// [github.com/phanxgames/mazewalk/term] (tcell) packages.
//
// # Quick start
//
//	eng := mazewalk.NewEngine(mazewalk.Options{
//		Navigator: mazewalk.NavigatorFunc(func(dest string) { fmt.Println("go", dest) }),
//	})
//	eng.Resize(960, 640, 1) // generates the first maze
//	eng.Move(mazewalk.DirUp)
//	eng.Tick()              // once per frame
//	v, ok := eng.View()     // read-only frame snapshot
//
// # Mazes
//
// [Generate] builds a perfect maze with a randomized depth-first backtracker
// driven by an injected [Rand]. [ClearCenter] then opens the 3x3 pocket
// around the goal, which may add cycles but never disconnects the maze.
//
// # Sessions
//
// A [Session] is one maze plus the player, trail, goal, destination and
// solved flag. Sessions are never resized; [Engine.Resize] throws the old one
// away and builds a new one fitted to the viewport with [LayoutConfig.Fit].
//
// # Moves
//
// Keys, swipes and scripted input all call [Engine.Move]. A rejected move
// changes nothing and reports a [Reject] reason. The move that reaches the
// goal marks the session solved, starts the flash, and schedules the
// navigation [DefaultTransitionDelay] later. [Engine.Close] cancels it.
//
// # Configuration
//
// [LoadConfig] reads optional .env files and MAZEWALK_* variables into a
// [Config]; [Config.Options] turns it into engine options.
package mazewalk

// Package engine is the boundary to the rigid-body physics engine.
//
// Everything above this package sees opaque handles:
//
//   - [Runtime]: the loaded engine; worlds can only be created from one
//   - [World]: gravity, stepping and body/collider construction
//   - [Body]: a dynamic, kinematic or static rigid body
//   - [Collider]: a shape attached to a body, with its collision group
//
// Engine state is owned by github.com/jakecoffman/cp/v2. Handles are never
// copied or serialized; callers only query them.
//
// # Thread Safety
//
// Worlds are NOT thread-safe. They are driven from a single frame loop.
package engine

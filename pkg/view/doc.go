// Package view is the composition core of viewtree.
//
// A View is any value that exposes a host tree node through El. Views may wrap
// other views; Resolve follows the chain down to the Node. Views opt into
// lifecycle notifications by implementing Mounter, Remounter or Unmounter.
//
// # Mounting
//
// Mount attaches a view's node under a parent and fires lifecycle callbacks on
// every affected view exactly once:
//
//	view.Mount(doc.Body(), app)          // onmount on app and its subtree
//	view.Mount(doc.Body(), app)          // same parent again: onremount
//	view.Unmount(doc.Body(), app)        // onunmount, top-down
//
// The Engine keeps a side table of per-node hook interest counters so that
// subtrees without any lifecycle callbacks are never walked. Detached nodes
// without callbacks below them are forgotten on Unmount; views that will not
// come back are dropped with Release.
//
// # Lists
//
// List keeps a node's children in sync with a data slice. Item views are
// created lazily by a Factory and, when a key function is given, reused by key
// across updates regardless of position:
//
//	items := view.NewList(ul, NewItem, view.PropKey[Todo]("ID"), nil)
//	err := items.Update(ctx, todos)
//
// # Children
//
// SetChildren reconciles a parent's children against an arbitrary, possibly
// nested, collection of views with minimal node moves.
package view

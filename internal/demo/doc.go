// Package demo contains runnable scenarios exercising the view engine, used
// by the viewtree CLI for the demo, render and serve commands.
package demo

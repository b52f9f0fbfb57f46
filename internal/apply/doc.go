// Package apply is the platform capability that makes the active icon
// visible: it publishes the selected record's renders to a directory and
// clears them when the default sentinel is selected. The store drives it
// through the icons.Applier interface.
package apply

// Package ui holds the presentational pieces the demo components render
// into: buttons, cards, fields, modals, spinners, avatars, badges and the
// page layout. Nothing here holds state; every function maps its inputs
// to a templ.Component.
package ui

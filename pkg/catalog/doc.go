// Package catalog holds the products that can be dropped onto a planogram.
//
// A [Catalog] is an immutable, validated list of [Product] values indexed by
// ID. [Builtin] returns the default assortment; [Load] and [Parse] read a
// catalog from TOML:
//
//	[[product]]
//	id = "p1"
//	name = "Degreasing dish soap"
//	category = "cleaning"
//	width = 10
//	height = 25
//	color = "#f97316"
//
//	[[product]]
//	id = "h1"
//	name = "Hook - stainless spatula"
//	category = "hanging"
//	width = 8
//	height = 30
//	display = "hanging"
//
// Width and height are in the same units as the planogram, centimetres in the
// built-in assortment.
package catalog
